package migrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
)

func seedItemDependencies(t *testing.T, m *Migrator) {
	t.Helper()
	seedRecord(t, m, model.RecTypeInternalLocation, record.Record{"legacy_id": "3"})
	seedRecord(t, m, model.RecTypeDocument, record.Record{"legacy_recid": "262146"})
}

func TestImportItems(t *testing.T) {
	m := newTestMigrator(t)
	ctx := context.TODO()
	seedItemDependencies(t, m)

	path := writeListDump(t, []record.Record{
		{
			"barcode":       "b00123",
			"status":        "on shelf",
			"id_crcLIBRARY": "3",
			"id_bibrec":     "262146",
			"id":            float64(1),
		},
	})

	assert.NoError(t, m.ImportItems(ctx, path, nil))

	item, err := m.ItemByBarcode(ctx, "B00123")
	assert.NoError(t, err)
	assert.Equal(t, "iloc1", item.GetString("internal_location_pid"))
	assert.Equal(t, "doc1", item.GetString("document_pid"))
	assert.Equal(t, "CAN_CIRCULATE", item.GetString("status"))
	assert.False(t, item.Has("id_crcLIBRARY"))
	assert.False(t, item.Has("id_bibrec"))
}

func TestImportItems_SkipsUnresolvedDependencies(t *testing.T) {
	m := newTestMigrator(t)
	ctx := context.TODO()
	seedItemDependencies(t, m)

	path := writeListDump(t, []record.Record{
		// unknown library
		{"barcode": "B1", "status": "on shelf", "id_crcLIBRARY": "9", "id_bibrec": "262146"},
		// unknown document
		{"barcode": "B2", "status": "on shelf", "id_crcLIBRARY": "3", "id_bibrec": "999"},
		// unmapped status
		{"barcode": "B3", "status": "vaporized", "id_crcLIBRARY": "3", "id_bibrec": "262146"},
		// survives
		{"barcode": "B4", "status": "on shelf", "id_crcLIBRARY": "3", "id_bibrec": "262146"},
	})

	assert.NoError(t, m.ImportItems(ctx, path, nil))

	pids, err := m.store.PIDs(ctx, model.RecTypeItem)
	assert.NoError(t, err)
	assert.Len(t, pids, 1)

	item, err := m.store.GetByPID(ctx, model.RecTypeItem, pids[0])
	assert.NoError(t, err)
	assert.Equal(t, "B4", item.GetString("barcode"))
}

func TestImportItems_DuplicateBarcode(t *testing.T) {
	m := newTestMigrator(t)
	ctx := context.TODO()
	seedItemDependencies(t, m)

	path := writeListDump(t, []record.Record{
		{"barcode": "B00123", "status": "on shelf", "id_crcLIBRARY": "3", "id_bibrec": "262146"},
	})

	assert.NoError(t, m.ImportItems(ctx, path, nil))
	// importing the same dump again must not duplicate the item
	assert.NoError(t, m.ImportItems(ctx, path, nil))

	pids, err := m.store.PIDs(ctx, model.RecTypeItem)
	assert.NoError(t, err)
	assert.Len(t, pids, 1)
}
