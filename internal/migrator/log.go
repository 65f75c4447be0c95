package migrator

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Named diagnostic channels. Migrated gets one line per successfully loaded
// document; the per-entity loggers collect record-scoped failures for the
// operator to review after the run.
var (
	Migrated        = logrus.New()
	DocumentsLogger = logrus.New()
	ItemsLogger     = logrus.New()
	UsersLogger     = logrus.New()
	LoansLogger     = logrus.New()
)

var channels = map[string]*logrus.Logger{
	"migrated_documents": Migrated,
	"documents":          DocumentsLogger,
	"items":              ItemsLogger,
	"users":              UsersLogger,
	"loans":              LoansLogger,
}

// ConfigureLogs points every channel at a file under dir. Without it the
// channels write to stderr like any other logger.
func ConfigureLogs(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	for name, logger := range channels {
		file, err := os.OpenFile(
			filepath.Join(dir, name+".log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			0o644,
		)
		if err != nil {
			return err
		}
		logger.SetOutput(io.Writer(file))
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	return nil
}
