package migrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/bibkit/ilsmigrate/internal/dump"
	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
	"github.com/bibkit/ilsmigrate/internal/store"
)

// ImportDocumentsFromRecordFile loads documents from migration-kit record
// files: parent-shaped dumps of already massaged document records. A record
// failing to import aborts the file; these dumps are expected to be clean.
func (m *Migrator) ImportDocumentsFromRecordFile(ctx context.Context, paths []string, include dump.Include) error {
	for idx, path := range paths {
		fmt.Printf("(%d/%d) Migrating documents in %s...\n", idx+1, len(paths), path)

		reader, err := dump.Open(path)
		if err != nil {
			return err
		}
		entries, err := dump.ReadParents(reader)
		reader.Close()
		if err != nil {
			return err
		}

		var records []record.Record
		for _, entry := range entries {
			fmt.Printf("Importing document %q...\n", entry.Record.GetString("legacy_recid"))
			if !include.Match(entry.Key) {
				continue
			}

			imported, err := m.ImportRecord(ctx, entry.Record, model.RecTypeDocument, "legacy_recid")
			if err != nil {
				return err
			}
			records = append(records, imported)
		}

		if err := m.bulkIndexRecords(ctx, model.RecTypeDocument, records); err != nil {
			return err
		}
	}

	return nil
}

// ImportDocumentsFromDump loads documents from raw legacy dumps: flat lists
// keyed by "recid". Failures are record-scoped and land in the documents
// diagnostic channel, the batch keeps going.
func (m *Migrator) ImportDocumentsFromDump(ctx context.Context, paths []string, include dump.Include) error {
	for idx, path := range paths {
		fmt.Printf("(%d/%d) Migrating documents in %s...\n", idx+1, len(paths), path)

		reader, err := dump.Open(path)
		if err != nil {
			return err
		}
		items, err := dump.ReadList(reader)
		reader.Close()
		if err != nil {
			return err
		}

		var records []record.Record
		for _, item := range items {
			recid := item.GetString("recid")
			fmt.Printf("Processing document %q...\n", recid)
			if !include.Match(recid) {
				continue
			}

			item.Set("legacy_recid", recid)
			item.Delete("recid")

			imported, err := m.ImportRecord(ctx, item, model.RecTypeDocument, "legacy_recid")
			if err != nil {
				if errors.Is(err, store.ErrValidation) {
					DocumentsLogger.Errorf("@RECID: %s FATAL: %v", recid, err)
				} else {
					DocumentsLogger.Errorf("@RECID: %s ERROR: %v", recid, err)
				}
				continue
			}

			Migrated.Warnf("#RECID %s: OK", recid)
			records = append(records, imported)
		}

		if err := m.bulkIndexRecords(ctx, model.RecTypeDocument, records); err != nil {
			return err
		}
	}

	return nil
}
