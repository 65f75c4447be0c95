package migrator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibkit/ilsmigrate/internal/record"
)

func TestCleanItemRecord(t *testing.T) {
	rec := record.Record{
		"barcode":           " b00123 ",
		"status":            "On Shelf",
		"id":                float64(7),
		"id_bibrec":         "262146",
		"id_crcLIBRARY":     "3",
		"creation_date":     "2001-01-01",
		"modification_date": "2002-02-02",
	}

	assert.NoError(t, CleanItemRecord(rec))

	assert.Equal(t, "B00123", rec.GetString("barcode"))
	assert.Equal(t, "CAN_CIRCULATE", rec.GetString("status"))
	assert.Equal(t, "PAPER", rec.GetString("medium"))
	assert.Equal(t, "NO_RESTRICTION", rec.GetString("circulation_restriction"))

	for _, field := range []string{"id", "id_bibrec", "id_crcLIBRARY", "creation_date", "modification_date"} {
		assert.False(t, rec.Has(field), field)
	}
}

func TestCleanItemRecord_StatusMapping(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{status: "on shelf", want: "CAN_CIRCULATE"},
		{status: "on loan", want: "CAN_CIRCULATE"},
		{status: "missing", want: "MISSING"},
		{status: "for reference", want: "FOR_REFERENCE_ONLY"},
		{status: "in binding", want: "IN_BINDING"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			rec := record.Record{"barcode": "B1", "status": tt.status}
			assert.NoError(t, CleanItemRecord(rec))
			assert.Equal(t, tt.want, rec.GetString("status"))
		})
	}
}

func TestCleanItemRecord_UnknownStatus(t *testing.T) {
	rec := record.Record{"barcode": "B1", "status": "vaporized"}
	err := CleanItemRecord(rec)
	assert.ErrorIs(t, err, ErrItemMigration)
}

func TestCleanItemRecord_KeepsExplicitFields(t *testing.T) {
	rec := record.Record{
		"barcode":                 "B1",
		"status":                  "on shelf",
		"medium":                  "DVD",
		"circulation_restriction": "FOR_REFERENCE_ONLY",
	}
	assert.NoError(t, CleanItemRecord(rec))
	assert.Equal(t, "DVD", rec.GetString("medium"))
	assert.Equal(t, "FOR_REFERENCE_ONLY", rec.GetString("circulation_restriction"))
}
