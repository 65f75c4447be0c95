package migrator

import (
	"context"
	"fmt"

	"github.com/bibkit/ilsmigrate/internal/dump"
	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
)

// ParentKind selects which flavor of series a parent dump holds.
type ParentKind string

const (
	ParentSerial    ParentKind = "serial"
	ParentMultipart ParentKind = "multipart"
)

func (k ParentKind) modeOfIssuance() string {
	if k == ParentMultipart {
		return model.ModeMultipartMonograph
	}
	return model.ModeSerial
}

// ImportParentsFromFile loads serial or multipart parent records from a
// parent dump. A parent with no recorded children (serial) or volumes
// (multipart) is dump noise and is skipped, never imported.
func (m *Migrator) ImportParentsFromFile(ctx context.Context, path string, kind ParentKind, include dump.Include) error {
	reader, err := dump.Open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	entries, err := dump.ReadParents(reader)
	if err != nil {
		return err
	}

	var records []record.Record
	for _, entry := range entries {
		parent := entry.Record
		if parent.Has("legacy_recid") {
			fmt.Printf("Importing parent %q(%s)...\n", parent.GetString("legacy_recid"), kind)
		} else {
			fmt.Printf("Importing parent %q(%s)...\n", parent.GetString("title"), kind)
		}
		if !include.Match(entry.Key) {
			continue
		}

		migration := parent.Migration()
		switch kind {
		case ParentSerial:
			if len(migration.Children) == 0 {
				continue
			}
		case ParentMultipart:
			if len(migration.Volumes) == 0 {
				continue
			}
		default:
			return fmt.Errorf("unknown parent kind %q: %w", kind, ErrSeriesMigration)
		}

		if !parent.Has("mode_of_issuance") {
			parent.Set("mode_of_issuance", kind.modeOfIssuance())
		}

		imported, err := m.ImportRecord(ctx, parent, model.RecTypeSeries, "legacy_recid")
		if err != nil {
			return err
		}
		records = append(records, imported)
	}

	return m.bulkIndexRecords(ctx, model.RecTypeSeries, records)
}
