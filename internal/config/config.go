package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	// DatabaseURL is either a postgres URL or a sqlite file path.
	DatabaseURL string `mapstructure:"database_url"`
	// RedisAddr enables the queued bulk indexer when set; empty means
	// records are indexed synchronously.
	RedisAddr string `mapstructure:"redis_addr"`
	// LogDir is where the named diagnostic channels write their files.
	LogDir string `mapstructure:"log_dir"`
	// DefaultLocationPID is injected into internal locations and loan
	// transactions.
	DefaultLocationPID string `mapstructure:"default_location_pid"`
	// Strict upgrades the provisional skip policies to hard failures.
	Strict bool `mapstructure:"strict"`
}

// LoadConfig reads .env, then ilsmigrate.yml, then ILSMIGRATE_* environment
// variables, later sources winning.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	viper.SetConfigName("ilsmigrate")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./.config")

	viper.SetEnvPrefix("ilsmigrate")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("database_url", ".data/ilsmigrate.db")
	viper.SetDefault("redis_addr", "")
	viper.SetDefault("log_dir", ".logs")
	viper.SetDefault("default_location_pid", "loc1")
	viper.SetDefault("strict", false)

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debugf("no config file loaded: %v", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		logrus.Errorf("error unmarshalling config: %v", err)
	}

	return cfg
}

// GetDb opens the target store database described by the config.
func GetDb(cfg *Config) *gorm.DB {
	var dialector gorm.Dialector
	if strings.HasPrefix(cfg.DatabaseURL, "postgres://") || strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}

	return db
}
