package indexer

import (
	"context"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

// Worker drains the index queue on a fixed schedule. Used by the standalone
// `index run` command when a bulk queue is in play.
type Worker struct {
	cron    *cron.Cron
	indexer Indexer
	running mapset.Set[string]
	mu      sync.Mutex
}

func NewWorker(indexer Indexer) *Worker {
	return &Worker{
		cron:    cron.New(),
		indexer: indexer,
		running: mapset.NewSet[string](),
	}
}

func (w *Worker) Run() {
	err := w.cron.AddFunc("@every 5s", func() {
		w.mu.Lock()
		if w.running.Contains(indexQueue) {
			w.mu.Unlock()
			logrus.Warn("index queue is already being processed")
			return
		}
		w.running.Add(indexQueue)
		w.mu.Unlock()

		defer func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			w.running.Remove(indexQueue)
		}()

		if err := w.indexer.ProcessQueue(context.Background()); err != nil {
			logrus.Errorf("failed to process index queue: %v", err)
		}
	})
	if err != nil {
		logrus.Errorf("failed to schedule index worker: %v", err)
		panic(err)
	}

	w.cron.Start()
}

func (w *Worker) Stop() {
	logrus.Infof("stopping index worker")
	w.cron.Stop()
}
