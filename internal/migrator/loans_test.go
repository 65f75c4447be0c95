package migrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
)

func seedLoanDependencies(t *testing.T, m *Migrator) {
	t.Helper()
	seedRecord(t, m, model.RecTypePatron, record.Record{"legacy_id": "419"})
	seedRecord(t, m, model.RecTypeDocument, record.Record{"legacy_recid": "262146"})
	seedRecord(t, m, model.RecTypeItem, record.Record{"barcode": "B00123", "document_pid": "doc1"})
}

func getOnlyLoan(t *testing.T, m *Migrator) record.Record {
	t.Helper()
	ctx := context.TODO()

	pids, err := m.store.PIDs(ctx, model.RecTypeLoan)
	assert.NoError(t, err)
	assert.Len(t, pids, 1)

	loan, err := m.store.GetByPID(ctx, model.RecTypeLoan, pids[0])
	assert.NoError(t, err)
	return loan
}

func TestImportLoans_Returned(t *testing.T) {
	m := newTestMigrator(t)
	ctx := context.TODO()
	seedLoanDependencies(t, m)

	path := writeListDump(t, []record.Record{{
		"legacy_id":          "1",
		"id_crcBORROWER":     "419",
		"item_barcode":       "B00123",
		"legacy_document_id": "262146",
		"status":             "returned",
		"start_date":         "2001-03-01",
		"end_date":           "2001-04-01",
		"returned_on":        "2001-03-20",
	}})

	assert.NoError(t, m.ImportLoans(ctx, path))

	loan := getOnlyLoan(t, m)
	assert.Equal(t, "pat1", loan.GetString("patron_pid"))
	assert.Equal(t, "doc1", loan.GetString("document_pid"))
	assert.Equal(t, "itm1", loan.GetString("item_pid"))
	assert.Equal(t, "ITEM_RETURNED", loan.GetString("state"))
	assert.Equal(t, "2001-03-01", loan.GetString("start_date"))
	assert.Equal(t, "2001-03-20", loan.GetString("end_date"))
	assert.Equal(t, "2001-03-20", loan.GetString("transaction_date"))
	assert.Equal(t, "loc1", loan.GetString("transaction_location_pid"))
	assert.Equal(t, SystemAgentPID, loan.GetString("transaction_user_pid"))
}

func TestImportLoans_OnLoan(t *testing.T) {
	m := newTestMigrator(t)
	ctx := context.TODO()
	seedLoanDependencies(t, m)

	path := writeListDump(t, []record.Record{{
		"legacy_id":          "1",
		"id_crcBORROWER":     "419",
		"item_barcode":       "B00123",
		"legacy_document_id": "262146",
		"status":             "on loan",
		"start_date":         "2001-03-01",
		"end_date":           "2001-04-01",
	}})

	assert.NoError(t, m.ImportLoans(ctx, path))

	loan := getOnlyLoan(t, m)
	assert.Equal(t, "ITEM_ON_LOAN", loan.GetString("state"))
	assert.Equal(t, "2001-04-01", loan.GetString("end_date"))
	assert.Equal(t, "2001-03-01", loan.GetString("transaction_date"))
}

func TestImportLoans_DocumentMismatch(t *testing.T) {
	m := newTestMigrator(t)
	ctx := context.TODO()
	seedLoanDependencies(t, m)
	seedRecord(t, m, model.RecTypeDocument, record.Record{"legacy_recid": "262147"})

	// the loan claims another document than the one its item is attached to
	path := writeListDump(t, []record.Record{{
		"legacy_id":          "1",
		"id_crcBORROWER":     "419",
		"item_barcode":       "B00123",
		"legacy_document_id": "262147",
		"status":             "returned",
		"start_date":         "2001-03-01",
		"returned_on":        "2001-03-20",
	}})

	assert.NoError(t, m.ImportLoans(ctx, path))

	// the item's document wins over the loan's claim
	loan := getOnlyLoan(t, m)
	assert.Equal(t, "doc1", loan.GetString("document_pid"))
}

func TestImportLoans_StaleDocumentClaim(t *testing.T) {
	m := newTestMigrator(t)
	ctx := context.TODO()
	seedLoanDependencies(t, m)

	// the claimed recid no longer resolves at all; the loan still imports
	// against the item's document
	path := writeListDump(t, []record.Record{{
		"legacy_id":          "1",
		"id_crcBORROWER":     "419",
		"item_barcode":       "B00123",
		"legacy_document_id": "999",
		"status":             "returned",
		"start_date":         "2001-03-01",
		"returned_on":        "2001-03-20",
	}})

	assert.NoError(t, m.ImportLoans(ctx, path))

	loan := getOnlyLoan(t, m)
	assert.Equal(t, "doc1", loan.GetString("document_pid"))
}

func TestImportLoans_UnknownBorrower(t *testing.T) {
	m := newTestMigrator(t)
	ctx := context.TODO()
	seedLoanDependencies(t, m)

	path := writeListDump(t, []record.Record{{
		"legacy_id":          "1",
		"id_crcBORROWER":     "777",
		"item_barcode":       "B00123",
		"legacy_document_id": "262146",
		"status":             "returned",
		"start_date":         "2001-03-01",
		"returned_on":        "2001-03-20",
	}})

	assert.NoError(t, m.ImportLoans(ctx, path))

	// the loan survives on the system agent
	loan := getOnlyLoan(t, m)
	assert.Equal(t, SystemAgentPID, loan.GetString("patron_pid"))
}

func TestImportLoans_MissingItem(t *testing.T) {
	m := newTestMigrator(t)
	ctx := context.TODO()
	seedLoanDependencies(t, m)

	path := writeListDump(t, []record.Record{{
		"legacy_id":          "1",
		"id_crcBORROWER":     "419",
		"item_barcode":       "B00999",
		"legacy_document_id": "262146",
		"status":             "returned",
		"start_date":         "2001-03-01",
		"returned_on":        "2001-03-20",
	}})

	assert.NoError(t, m.ImportLoans(ctx, path))

	pids, err := m.store.PIDs(ctx, model.RecTypeLoan)
	assert.NoError(t, err)
	assert.Empty(t, pids)
}

func TestImportLoans_MissingItemStrict(t *testing.T) {
	m := newTestMigrator(t, WithPolicy(StrictPolicy()))
	ctx := context.TODO()
	seedLoanDependencies(t, m)

	path := writeListDump(t, []record.Record{{
		"legacy_id":          "1",
		"id_crcBORROWER":     "419",
		"item_barcode":       "B00999",
		"legacy_document_id": "262146",
		"status":             "returned",
	}})

	err := m.ImportLoans(ctx, path)
	assert.ErrorIs(t, err, ErrLoanMigration)
}

func TestImportLoans_FatalRecords(t *testing.T) {
	m := newTestMigrator(t)
	ctx := context.TODO()
	seedLoanDependencies(t, m)

	// no document id at all
	path := writeListDump(t, []record.Record{{
		"legacy_id":      "1",
		"id_crcBORROWER": "419",
		"item_barcode":   "B00123",
		"status":         "returned",
	}})
	assert.ErrorIs(t, m.ImportLoans(ctx, path), ErrLoanMigration)

	// unmodeled status
	path = writeListDump(t, []record.Record{{
		"legacy_id":          "1",
		"id_crcBORROWER":     "419",
		"item_barcode":       "B00123",
		"legacy_document_id": "262146",
		"status":             "lost in transit",
	}})
	assert.ErrorIs(t, m.ImportLoans(ctx, path), ErrLoanMigration)
}
