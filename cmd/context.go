package cmd

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bibkit/ilsmigrate/internal/config"
	"github.com/bibkit/ilsmigrate/internal/indexer"
	"github.com/bibkit/ilsmigrate/internal/migrator"
	"github.com/bibkit/ilsmigrate/internal/pid"
	"github.com/bibkit/ilsmigrate/internal/search"
	"github.com/bibkit/ilsmigrate/internal/store"
)

// appContext wires the migration components for one command invocation.
type appContext struct {
	cfg     *config.Config
	store   store.Store
	index   *search.GormIndex
	indexer indexer.Indexer
	mig     *migrator.Migrator
}

func newAppContext() *appContext {
	cfg := config.LoadConfig()
	if strictFlag {
		cfg.Strict = true
	}

	if err := migrator.ConfigureLogs(cfg.LogDir); err != nil {
		logrus.Fatalf("failed to configure migration logs: %v", err)
	}

	db := config.GetDb(cfg)
	st := store.NewGormStore(db)
	index := search.NewGormIndex(db)

	var ix indexer.Indexer
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ix = indexer.NewBulkIndexer(client, st, index)
	} else {
		ix = indexer.NewDirect(st, index)
	}

	opts := []migrator.Option{
		migrator.WithDefaultLocationPID(cfg.DefaultLocationPID),
	}
	if cfg.Strict {
		opts = append(opts, migrator.WithPolicy(migrator.StrictPolicy()))
	}

	return &appContext{
		cfg:     cfg,
		store:   st,
		index:   index,
		indexer: ix,
		mig:     migrator.New(st, index, ix, pid.NewRegistry(db), opts...),
	}
}
