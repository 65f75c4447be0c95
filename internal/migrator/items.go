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

// ImportItems loads physical items from a flat dump. An item whose internal
// location or document cannot be resolved is skipped, never created; each
// surviving item commits on its own so a crash mid-file loses at most one
// record.
func (m *Migrator) ImportItems(ctx context.Context, path string, include dump.Include) error {
	reader, err := dump.Open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	items, err := dump.ReadList(reader)
	if err != nil {
		return err
	}

	var records []record.Record
	for _, rec := range items {
		barcode := rec.GetString("barcode")
		fmt.Printf("Importing item %q(item)...\n", barcode)
		if !include.Match(barcode) {
			continue
		}

		location, err := m.InternalLocationByLegacyID(ctx, rec.GetString("id_crcLIBRARY"))
		if err != nil {
			if errors.Is(err, ErrItemMigration) && !errors.Is(err, ErrAmbiguousKey) {
				ItemsLogger.Warnf("item %s skipped: %v", barcode, err)
				continue
			}
			return err
		}
		rec.Set("internal_location_pid", location.PID())

		document, err := m.DocumentByLegacyRecid(ctx, rec.GetString("id_bibrec"))
		if err != nil {
			if errors.Is(err, ErrDocumentMigration) && !errors.Is(err, ErrAmbiguousKey) {
				ItemsLogger.Warnf("item %s skipped: %v", barcode, err)
				continue
			}
			return err
		}
		rec.Set("document_pid", document.PID())

		if err := CleanItemRecord(rec); err != nil {
			if errors.Is(err, ErrItemMigration) {
				color.Red("%v", err)
				ItemsLogger.Warnf("item %s skipped: %v", barcode, err)
				continue
			}
			return err
		}

		existing, err := m.ItemByBarcode(ctx, rec.GetString("barcode"))
		if err == nil {
			color.Blue("Item %s) already exists with pid: %s", barcode, existing.PID())
			continue
		}
		if !errors.Is(err, ErrItemMigration) || errors.Is(err, ErrAmbiguousKey) {
			return err
		}

		err = m.store.Transaction(ctx, func(tx store.Store) error {
			imported, err := m.importRecord(ctx, tx, rec, model.RecTypeItem, "barcode")
			if err != nil {
				return err
			}
			rec = imported
			return nil
		})
		if err != nil {
			fmt.Println("Rolling back changes...")
			ItemsLogger.Errorf("item %s failed: %v", barcode, err)
			continue
		}

		records = append(records, rec)
	}

	return m.bulkIndexRecords(ctx, model.RecTypeItem, records)
}
