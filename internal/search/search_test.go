package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
	"github.com/bibkit/ilsmigrate/internal/tester"
)

func TestFlatten(t *testing.T) {
	rec, err := record.FromJSON([]byte(`{
		"pid": "ser1",
		"legacy_recid": 262146,
		"issn": null,
		"_migration": {
			"has_serial": true,
			"children": [262147, 262148],
			"serials": [{"title": "Yellow Reports"}]
		}
	}`))
	assert.NoError(t, err)

	terms := Flatten(rec)
	assert.Contains(t, terms, Filter{Field: "pid", Value: "ser1"})
	assert.Contains(t, terms, Filter{Field: "legacy_recid", Value: "262146"})
	assert.Contains(t, terms, Filter{Field: "_migration.has_serial", Value: "true"})
	assert.Contains(t, terms, Filter{Field: "_migration.children", Value: "262147"})
	assert.Contains(t, terms, Filter{Field: "_migration.children", Value: "262148"})
	assert.Contains(t, terms, Filter{Field: "_migration.serials.title", Value: "Yellow Reports"})
	assert.NotContains(t, terms, Filter{Field: "issn", Value: ""})
}

func TestTerm(t *testing.T) {
	assert.Equal(t, Filter{Field: "legacy_recid", Value: "262146"}, Term("legacy_recid", float64(262146)))
	assert.Equal(t, Filter{Field: "legacy_recid", Value: "262146"}, Term("legacy_recid", "262146"))
}

func TestGormIndex_Query(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	index := NewGormIndex(tester.TestDB())
	ctx := context.TODO()

	docs := []record.Record{
		{"pid": "doc1", "legacy_recid": "262146", "_migration": map[string]any{"is_multipart": true}},
		{"pid": "doc2", "legacy_recid": "262147"},
		{"pid": "doc3", "legacy_recid": "262147"},
	}
	for _, doc := range docs {
		assert.NoError(t, index.IndexRecord(ctx, model.RecTypeDocument, doc))
	}

	result, err := index.Query(ctx, model.RecTypeDocument, Term("legacy_recid", "262146"))
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "doc1", result.Hits[0].PID)
	assert.Equal(t, "262146", result.Hits[0].Source.GetString("legacy_recid"))

	// duplicated natural key yields both hits
	result, err = index.Query(ctx, model.RecTypeDocument, Term("legacy_recid", "262147"))
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Total)

	result, err = index.Query(ctx, model.RecTypeDocument, Term("legacy_recid", "999"))
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Total)

	// filters combine conjunctively
	result, err = index.Query(ctx, model.RecTypeDocument,
		Term("legacy_recid", "262146"),
		Term("_migration.is_multipart", true),
	)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)

	// rectype bounds the search
	result, err = index.Query(ctx, model.RecTypeSeries, Term("legacy_recid", "262146"))
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Total)
}

func TestGormIndex_QueryChildren(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	index := NewGormIndex(tester.TestDB())
	ctx := context.TODO()

	serial := record.Record{
		"pid":              "ser1",
		"mode_of_issuance": model.ModeSerial,
		"_migration":       map[string]any{"children": []any{float64(262147), float64(262148)}},
	}
	assert.NoError(t, index.IndexRecord(ctx, model.RecTypeSeries, serial))

	// any element of a multi-valued field matches, with either rendering
	for _, value := range []any{"262148", float64(262148)} {
		result, err := index.Query(ctx, model.RecTypeSeries, Term("_migration.children", value))
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Total)
	}
}

func TestGormIndex_Reindex(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	index := NewGormIndex(tester.TestDB())
	ctx := context.TODO()

	doc := record.Record{"pid": "doc1", "legacy_recid": "262146"}
	assert.NoError(t, index.IndexRecord(ctx, model.RecTypeDocument, doc))

	// reindexing replaces the terms instead of stacking them
	doc.Delete("legacy_recid")
	doc.Set("title", "v1")
	assert.NoError(t, index.IndexRecord(ctx, model.RecTypeDocument, doc))

	result, err := index.Query(ctx, model.RecTypeDocument, Term("legacy_recid", "262146"))
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Total)

	result, err = index.Query(ctx, model.RecTypeDocument, Term("title", "v1"))
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.False(t, result.Hits[0].Source.Has("legacy_recid"))
}
