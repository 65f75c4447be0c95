package indexer

import (
	"context"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
	"github.com/bibkit/ilsmigrate/internal/search"
	"github.com/bibkit/ilsmigrate/internal/store"
)

func NewDirect(st store.Store, index *search.GormIndex) *Direct {
	return &Direct{
		store: st,
		index: index,
	}
}

var _ Indexer = (*Direct)(nil)

// Direct indexes records synchronously, without a queue. BulkIndex indexes
// on the spot and ProcessQueue is a no-op.
type Direct struct {
	store store.Store
	index *search.GormIndex
}

func (d *Direct) Index(ctx context.Context, rectype model.RecType, rec record.Record) error {
	return d.index.IndexRecord(ctx, rectype, rec)
}

func (d *Direct) BulkIndex(ctx context.Context, rectype model.RecType, pids []string) error {
	for _, pidValue := range pids {
		if err := indexFromStore(ctx, d.store, d.index, rectype, pidValue); err != nil {
			return err
		}
	}
	return nil
}

func (d *Direct) ProcessQueue(ctx context.Context) error {
	return nil
}

func (d *Direct) Reindex(ctx context.Context, rectype model.RecType) error {
	return reindexRecType(ctx, d.store, d.index, rectype)
}
