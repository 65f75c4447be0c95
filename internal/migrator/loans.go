package migrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/bibkit/ilsmigrate/internal/dump"
	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
	"github.com/bibkit/ilsmigrate/internal/store"
)

// ImportLoans migrates legacy circulation transactions. Loans depend on
// everything else: the borrower, the item and the document must already be
// migrated and indexed. A vanished borrower falls back to the system agent
// patron so the loan history survives; a vanished item is governed by the
// LoanMissingItem policy.
func (m *Migrator) ImportLoans(ctx context.Context, path string) error {
	reader, err := dump.Open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	loans, err := dump.ReadList(reader)
	if err != nil {
		return err
	}

	migrated := make([]record.Record, 0, len(loans))
	for _, rec := range loans {
		legacyID := rec.GetString("legacy_id")
		fmt.Printf("Importing loan %s...\n", legacyID)

		loan, err := m.buildLoan(ctx, rec)
		if err != nil {
			if errors.Is(err, errLoanItemMissing) && m.policy.LoanMissingItem == ActionSkip {
				LoansLogger.Warnf("loan %s skipped: %v", legacyID, err)
				continue
			}
			return err
		}

		err = m.store.Transaction(ctx, func(tx store.Store) error {
			created, err := m.importRecord(ctx, tx, loan, model.RecTypeLoan, "legacy_id")
			if err != nil {
				return err
			}
			loan = created
			return nil
		})
		if err != nil {
			fmt.Println("Rolling back changes...")
			return err
		}
		migrated = append(migrated, loan)
	}

	return m.bulkIndexRecords(ctx, model.RecTypeLoan, migrated)
}

// errLoanItemMissing marks the one loan failure mode the policy may waive.
var errLoanItemMissing = errors.New("loan item missing")

func (m *Migrator) buildLoan(ctx context.Context, rec record.Record) (record.Record, error) {
	legacyID := rec.GetString("legacy_id")

	patronPID := SystemAgentPID
	patron, err := m.PatronByLegacyID(ctx, rec.GetString("id_crcBORROWER"))
	if err != nil {
		return nil, err
	}
	if patron == nil {
		color.Red("borrower %s of loan %s not found, using the system agent",
			rec.GetString("id_crcBORROWER"), legacyID)
	} else {
		patronPID = patron.PID()
	}

	item, err := m.ItemByBarcode(ctx, rec.GetString("item_barcode"))
	if err != nil {
		if errors.Is(err, ErrItemMigration) && !errors.Is(err, ErrAmbiguousKey) {
			return nil, fmt.Errorf("loan %s: %w: %w: %w", legacyID, err, errLoanItemMissing, ErrLoanMigration)
		}
		return nil, err
	}

	if !rec.Has("legacy_document_id") || rec.Get("legacy_document_id") == nil {
		return nil, fmt.Errorf("no document id for loan %s: %w", legacyID, ErrLoanMigration)
	}

	// The item's document wins over the loan's own claim; the legacy id on
	// the loan is only compared to flag the inconsistency.
	document, err := m.store.GetByPID(ctx, model.RecTypeDocument, item.GetString("document_pid"))
	if err != nil {
		return nil, err
	}
	if document.GetString("legacy_recid") != rec.GetString("legacy_document_id") {
		color.Blue("inconsistent document dependencies for loan %s", legacyID)
	}

	loan := record.Record{
		"legacy_id":                legacyID,
		"patron_pid":               patronPID,
		"document_pid":             document.PID(),
		"item_pid":                 item.PID(),
		"transaction_location_pid": m.defaultLocationPID,
		"transaction_user_pid":     SystemAgentPID,
	}

	switch status := rec.GetString("status"); status {
	case "on loan":
		loan.Set("state", "ITEM_ON_LOAN")
		loan.Set("start_date", rec.GetString("start_date"))
		loan.Set("end_date", rec.GetString("end_date"))
		loan.Set("transaction_date", rec.GetString("start_date"))
	case "returned":
		loan.Set("state", "ITEM_RETURNED")
		loan.Set("start_date", rec.GetString("start_date"))
		loan.Set("end_date", rec.GetString("returned_on"))
		loan.Set("transaction_date", rec.GetString("returned_on"))
	default:
		return nil, fmt.Errorf("unknown loan status %q for loan %s: %w", status, legacyID, ErrLoanMigration)
	}

	return loan, nil
}
