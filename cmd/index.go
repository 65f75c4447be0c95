package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bibkit/ilsmigrate/internal/indexer"
	"github.com/bibkit/ilsmigrate/internal/model"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "search index maintenance",
}

func init() {
	indexCmd.AddCommand(IndexRun())
	indexCmd.AddCommand(IndexReindex())
}

// IndexRun starts the queue worker. Only meaningful with a redis queue
// configured; the direct indexer has nothing to drain.
func IndexRun() *cobra.Command {
	command := &cobra.Command{
		Use:   "run",
		Short: "Run the index queue worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newAppContext()
			if app.cfg.RedisAddr == "" {
				return errors.New("no redis address configured, nothing to drain")
			}

			worker := indexer.NewWorker(app.indexer)
			worker.Run()
			defer worker.Stop()

			logrus.Info("index worker started")
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop
			return nil
		},
	}

	return command
}

func IndexReindex() *cobra.Command {
	var rectype string

	command := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the index for a record type from the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := model.RecType(rectype)
			if !rt.Valid() {
				return errors.New("unknown --rectype")
			}
			app := newAppContext()
			return app.indexer.Reindex(cmd.Context(), rt)
		},
	}
	command.Flags().StringVar(&rectype, "rectype", "", "record type to reindex")
	_ = command.MarkFlagRequired("rectype")

	return command
}
