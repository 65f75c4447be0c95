package migrator

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibkit/ilsmigrate/internal/indexer"
	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/pid"
	"github.com/bibkit/ilsmigrate/internal/record"
	"github.com/bibkit/ilsmigrate/internal/search"
	"github.com/bibkit/ilsmigrate/internal/store"
	"github.com/bibkit/ilsmigrate/internal/tester"
)

func newTestMigrator(t *testing.T, opts ...Option) *Migrator {
	t.Helper()
	tester.RemoveDBFile()
	tester.Setup()

	db := tester.TestDB()
	st := store.NewGormStore(db)
	index := search.NewGormIndex(db)

	return New(st, index, indexer.NewDirect(st, index), pid.NewRegistry(db), opts...)
}

// seedRecord imports and indexes a record so the resolvers can find it.
func seedRecord(t *testing.T, m *Migrator, rectype model.RecType, rec record.Record) record.Record {
	t.Helper()
	ctx := context.TODO()

	imported, err := m.ImportRecord(ctx, rec, rectype, "")
	assert.NoError(t, err)
	assert.NoError(t, m.indexer.Index(ctx, rectype, imported))
	return imported
}

// writeListDump writes records as a flat list dump file.
func writeListDump(t *testing.T, records []record.Record) string {
	t.Helper()

	data, err := json.Marshal(records)
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dump.json")
	assert.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// writeParentDump writes records as a key -> record parent dump file.
func writeParentDump(t *testing.T, parents map[string]record.Record) string {
	t.Helper()

	data, err := json.Marshal(parents)
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "parents.json")
	assert.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestMigrator_ImportRecord(t *testing.T) {
	m := newTestMigrator(t)
	ctx := context.TODO()

	rec := record.Record{"legacy_recid": float64(262146), "title": "Yellow Reports"}
	imported, err := m.ImportRecord(ctx, rec, model.RecTypeDocument, "legacy_recid")
	assert.NoError(t, err)
	assert.Equal(t, "doc1", imported.PID())

	// the natural key is stringified on the way in
	assert.Equal(t, "262146", imported.Get("legacy_recid"))

	stored, err := m.store.GetByPID(ctx, model.RecTypeDocument, "doc1")
	assert.NoError(t, err)
	assert.Equal(t, "Yellow Reports", stored.GetString("title"))
}
