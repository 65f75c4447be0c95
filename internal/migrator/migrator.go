// Package migrator is the relationship-resolution and idempotent-linking
// engine of the migration: it loads legacy dump records into the target
// store, reconstructs parent/child hierarchies and foreign keys from legacy
// identifiers, and validates the finished graph.
package migrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bibkit/ilsmigrate/internal/indexer"
	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/pid"
	"github.com/bibkit/ilsmigrate/internal/record"
	"github.com/bibkit/ilsmigrate/internal/search"
	"github.com/bibkit/ilsmigrate/internal/store"
)

// SystemAgentPID is the well-known patron acting for loans whose borrower
// never made it into the user directory.
const SystemAgentPID = "patsysagent"

type Migrator struct {
	store              store.Store
	index              search.Index
	indexer            indexer.Indexer
	providers          *pid.Registry
	policy             Policy
	defaultLocationPID string
}

type Option func(*Migrator)

func WithPolicy(policy Policy) Option {
	return func(m *Migrator) {
		m.policy = policy
	}
}

func WithDefaultLocationPID(pidValue string) Option {
	return func(m *Migrator) {
		m.defaultLocationPID = pidValue
	}
}

func New(st store.Store, index search.Index, ix indexer.Indexer, providers *pid.Registry, opts ...Option) *Migrator {
	m := &Migrator{
		store:              st,
		index:              index,
		indexer:            ix,
		providers:          providers,
		policy:             DefaultPolicy(),
		defaultLocationPID: "loc1",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ImportRecord persists a raw dump record under the rectype with a freshly
// minted pid. legacyKeyField names the natural key to preserve as a string;
// the importer never deduplicates, callers pre-filter where required.
func (m *Migrator) ImportRecord(ctx context.Context, rec record.Record, rectype model.RecType, legacyKeyField string) (record.Record, error) {
	return m.importRecord(ctx, m.store, rec, rectype, legacyKeyField)
}

func (m *Migrator) importRecord(ctx context.Context, st store.Store, rec record.Record, rectype model.RecType, legacyKeyField string) (record.Record, error) {
	if legacyKeyField != "" && rec.Has(legacyKeyField) {
		rec.Set(legacyKeyField, rec.GetString(legacyKeyField))
	}

	recordUUID := uuid.New()
	provider, err := m.providers.Create(ctx, rectype, recordUUID)
	if err != nil {
		return nil, err
	}
	rec.Set("pid", provider.PID)

	return st.Create(ctx, rectype, rec, recordUUID)
}

// bulkIndexRecords pushes freshly created records into the index and drains
// the queue so later passes can resolve them.
func (m *Migrator) bulkIndexRecords(ctx context.Context, rectype model.RecType, records []record.Record) error {
	fmt.Printf("Bulk indexing %d records...\n", len(records))

	pids := make([]string, 0, len(records))
	for _, rec := range records {
		pids = append(pids, rec.PID())
	}
	if err := m.indexer.BulkIndex(ctx, rectype, pids); err != nil {
		return err
	}
	if err := m.indexer.ProcessQueue(ctx); err != nil {
		return err
	}

	fmt.Println("Indexing completed!")
	return nil
}
