// Package indexer feeds the search index. The bulk path queues (rectype,
// pid) pairs on redis and indexes them when the queue is processed; the
// direct path indexes immediately and is enough for small migrations and
// tests.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
	"github.com/bibkit/ilsmigrate/internal/search"
	"github.com/bibkit/ilsmigrate/internal/store"
)

const indexQueue = "ilsmigrate:index:queue"

type Indexer interface {
	// Index indexes a single record immediately.
	Index(ctx context.Context, rectype model.RecType, rec record.Record) error
	// BulkIndex enqueues records for indexing.
	BulkIndex(ctx context.Context, rectype model.RecType, pids []string) error
	// ProcessQueue drains the queue, indexing every queued record.
	ProcessQueue(ctx context.Context) error
	// Reindex rebuilds the index for a whole rectype from the store.
	Reindex(ctx context.Context, rectype model.RecType) error
}

func NewBulkIndexer(client *redis.Client, st store.Store, index *search.GormIndex) *BulkIndexer {
	return &BulkIndexer{
		client: client,
		store:  st,
		index:  index,
	}
}

var _ Indexer = (*BulkIndexer)(nil)

type BulkIndexer struct {
	client *redis.Client
	store  store.Store
	index  *search.GormIndex
}

func (b *BulkIndexer) Index(ctx context.Context, rectype model.RecType, rec record.Record) error {
	return b.index.IndexRecord(ctx, rectype, rec)
}

func (b *BulkIndexer) BulkIndex(ctx context.Context, rectype model.RecType, pids []string) error {
	for _, pidValue := range pids {
		entry := string(rectype) + ":" + pidValue
		if err := b.client.RPush(ctx, indexQueue, entry).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (b *BulkIndexer) ProcessQueue(ctx context.Context) error {
	for {
		entry, err := b.client.LPop(ctx, indexQueue).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}

		rectype, pidValue, ok := strings.Cut(entry, ":")
		if !ok {
			logrus.Errorf("malformed index queue entry %q", entry)
			continue
		}

		if err := indexFromStore(ctx, b.store, b.index, model.RecType(rectype), pidValue); err != nil {
			return err
		}
	}
}

func (b *BulkIndexer) Reindex(ctx context.Context, rectype model.RecType) error {
	return reindexRecType(ctx, b.store, b.index, rectype)
}

func indexFromStore(ctx context.Context, st store.Store, index *search.GormIndex, rectype model.RecType, pidValue string) error {
	rec, err := st.GetByPID(ctx, rectype, pidValue)
	if err != nil {
		return fmt.Errorf("index %s %s: %w", rectype, pidValue, err)
	}
	return index.IndexRecord(ctx, rectype, rec)
}

func reindexRecType(ctx context.Context, st store.Store, index *search.GormIndex, rectype model.RecType) error {
	pids, err := st.PIDs(ctx, rectype)
	if err != nil {
		return err
	}

	logrus.Infof("reindexing %d %s records", len(pids), rectype)
	for _, pidValue := range pids {
		if err := indexFromStore(ctx, st, index, rectype, pidValue); err != nil {
			return err
		}
	}
	return nil
}
