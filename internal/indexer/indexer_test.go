package indexer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
	"github.com/bibkit/ilsmigrate/internal/search"
	"github.com/bibkit/ilsmigrate/internal/store"
	"github.com/bibkit/ilsmigrate/internal/tester"
)

func TestDirect_BulkIndex(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	st := store.NewGormStore(tester.TestDB())
	index := search.NewGormIndex(tester.TestDB())
	direct := NewDirect(st, index)
	ctx := context.TODO()

	_, err := st.Create(ctx, model.RecTypeDocument,
		record.Record{"pid": "doc1", "legacy_recid": "262146"}, uuid.New())
	assert.NoError(t, err)

	assert.NoError(t, direct.BulkIndex(ctx, model.RecTypeDocument, []string{"doc1"}))
	// nothing queued, nothing to drain
	assert.NoError(t, direct.ProcessQueue(ctx))

	result, err := index.Query(ctx, model.RecTypeDocument, search.Term("legacy_recid", "262146"))
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)

	// indexing an unknown pid fails loudly
	assert.Error(t, direct.BulkIndex(ctx, model.RecTypeDocument, []string{"doc9"}))
}

func TestDirect_Reindex(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	st := store.NewGormStore(tester.TestDB())
	index := search.NewGormIndex(tester.TestDB())
	direct := NewDirect(st, index)
	ctx := context.TODO()

	for _, pid := range []string{"doc1", "doc2"} {
		_, err := st.Create(ctx, model.RecTypeDocument,
			record.Record{"pid": pid, "title": "t"}, uuid.New())
		assert.NoError(t, err)
	}

	assert.NoError(t, direct.Reindex(ctx, model.RecTypeDocument))

	result, err := index.Query(ctx, model.RecTypeDocument, search.Term("title", "t"))
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Total)

	// a second rebuild replaces, never duplicates
	assert.NoError(t, direct.Reindex(ctx, model.RecTypeDocument))

	result, err = index.Query(ctx, model.RecTypeDocument, search.Term("title", "t"))
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Total)
}
