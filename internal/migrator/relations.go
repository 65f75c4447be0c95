package migrator

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
	"github.com/bibkit/ilsmigrate/internal/search"
)

// createParentChildRelation creates one typed parent->child edge in the
// relation graph. Both endpoints must already be persisted.
func (m *Migrator) createParentChildRelation(ctx context.Context, parentType model.RecType, parent record.Record, childType model.RecType, child record.Record, relationType, volume string) error {
	fmt.Printf("Creating relations: %s - %s\n", parent.PID(), child.PID())
	return m.store.AddRelation(ctx, parentType, parent, childType, child, relationType, volume)
}

// LinkMultipartVolumes runs the multipart linking pass: for every document
// flagged as a multipart container, split its volumes and link each produced
// document to the owning multipart series.
func (m *Migrator) LinkMultipartVolumes(ctx context.Context) error {
	fmt.Println("Creating document volumes and multipart relations...")

	hits, err := m.index.Scan(ctx, model.RecTypeDocument, search.Term("_migration.is_multipart", true))
	if err != nil {
		return err
	}

	for _, hit := range hits {
		// synthesized volumes carry no legacy recid and are never containers
		if !hit.Source.Has("legacy_recid") {
			continue
		}
		recid := hit.Source.GetString("legacy_recid")
		color.Green("Linking multipart %s...", recid)

		multipart, err := m.MultipartByLegacyRecid(ctx, recid)
		if err != nil {
			return err
		}

		// volumes are materialized even for an orphaned container; only the
		// relation needs the owning series
		documents, err := m.SplitVolumes(ctx, hit.PID, recid, hit.Source.Migration().Volumes)
		if err != nil {
			return err
		}
		if multipart == nil {
			continue
		}

		for _, document := range documents {
			err := m.createParentChildRelation(ctx,
				model.RecTypeSeries, multipart,
				model.RecTypeDocument, document,
				model.MultipartMonographRelation, document.GetString("volume"),
			)
			if err != nil {
				// a structurally invalid pair aborts that pair only
				logrus.Errorf("failed to relate multipart %s to %s: %v",
					multipart.PID(), document.PID(), err)
			}
		}
	}

	return nil
}

// LinkSerials runs the serial linking pass over documents and multipart
// series flagged as serial children.
func (m *Migrator) LinkSerials(ctx context.Context) error {
	fmt.Println("Creating serial relations...")

	documentHits, err := m.index.Scan(ctx, model.RecTypeDocument, search.Term("_migration.has_serial", true))
	if err != nil {
		return err
	}
	if err := m.linkRecordsAndSerial(ctx, model.RecTypeDocument, documentHits); err != nil {
		return err
	}

	multipartHits, err := m.index.Scan(ctx, model.RecTypeSeries,
		search.Term("mode_of_issuance", model.ModeMultipartMonograph),
		search.Term("_migration.has_serial", true),
	)
	if err != nil {
		return err
	}
	return m.linkRecordsAndSerial(ctx, model.RecTypeSeries, multipartHits)
}

func (m *Migrator) linkRecordsAndSerial(ctx context.Context, rectype model.RecType, hits []search.Hit) error {
	for _, hit := range hits {
		// a hit without a legacy recid is a synthesized multipart volume,
		// linked transitively through its multipart parent
		if !hit.Source.Has("legacy_recid") {
			continue
		}

		rec, err := m.store.GetByPID(ctx, rectype, hit.PID)
		if err != nil {
			return err
		}

		serials, err := m.serialsByChildRecid(ctx, hit.Source.GetString("legacy_recid"))
		if err != nil {
			return err
		}

		for _, serial := range serials {
			volume, err := migratedVolumeBySerialTitle(rec, serial.GetString("title"))
			if err != nil {
				return err
			}

			err = m.createParentChildRelation(ctx,
				model.RecTypeSeries, serial,
				rectype, rec,
				model.SerialRelation, volume,
			)
			if err != nil {
				logrus.Errorf("failed to relate serial %s to %s: %v",
					serial.PID(), rec.PID(), err)
			}
		}
	}

	return nil
}

// serialsByChildRecid finds every serial series listing the recid among its
// migration children.
func (m *Migrator) serialsByChildRecid(ctx context.Context, recid string) ([]record.Record, error) {
	hits, err := m.index.Scan(ctx, model.RecTypeSeries,
		search.Term("mode_of_issuance", model.ModeSerial),
		search.Term("_migration.children", recid),
	)
	if err != nil {
		return nil, err
	}

	serials := make([]record.Record, 0, len(hits))
	for _, hit := range hits {
		serial, err := m.store.GetByPID(ctx, model.RecTypeSeries, hit.PID)
		if err != nil {
			return nil, err
		}
		serials = append(serials, serial)
	}
	return serials, nil
}

// migratedVolumeBySerialTitle determines the child's volume ordinal within a
// serial by matching the serial's title against the child's own serial list.
// No match means the migration data is inconsistent.
func migratedVolumeBySerialTitle(rec record.Record, title string) (string, error) {
	for _, serial := range rec.Migration().Serials {
		if serial.Title == title {
			return serial.Volume, nil
		}
	}
	return "", fmt.Errorf("unable to find volume number in record %s by title %q: %w",
		rec.PID(), title, ErrDocumentMigration)
}
