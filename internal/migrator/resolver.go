package migrator

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
	"github.com/bibkit/ilsmigrate/internal/search"
)

// The resolvers map a legacy natural key to exactly one live record via the
// search index. Zero matches is an entity-specific not-found error (except
// patron lookups, where absence is an expected outcome); more than one match
// is always a hard error, duplicate natural keys must never survive a
// migration.

// DocumentByLegacyRecid resolves a document by its legacy recid.
func (m *Migrator) DocumentByLegacyRecid(ctx context.Context, recid string) (record.Record, error) {
	result, err := m.index.Query(ctx, model.RecTypeDocument, search.Term("legacy_recid", recid))
	if err != nil {
		return nil, err
	}

	switch {
	case result.Total < 1:
		color.Red("no document found with legacy recid %s", recid)
		return nil, fmt.Errorf("no document found with legacy recid %s: %w", recid, ErrDocumentMigration)
	case result.Total > 1:
		color.Red("found more than one document with legacy recid %s", recid)
		return nil, fmt.Errorf("found more than one document with recid %s: %w: %w", recid, ErrDocumentMigration, ErrAmbiguousKey)
	default:
		color.Green("! document found with legacy recid %s", recid)
		return m.store.GetByPID(ctx, model.RecTypeDocument, result.Hits[0].PID)
	}
}

// ItemByBarcode resolves an item by its barcode.
func (m *Migrator) ItemByBarcode(ctx context.Context, barcode string) (record.Record, error) {
	result, err := m.index.Query(ctx, model.RecTypeItem, search.Term("barcode", barcode))
	if err != nil {
		return nil, err
	}

	switch {
	case result.Total < 1:
		color.Red("no item found with barcode %s", barcode)
		return nil, fmt.Errorf("no item found with barcode %s: %w", barcode, ErrItemMigration)
	case result.Total > 1:
		return nil, fmt.Errorf("found more than one item with barcode %s: %w: %w", barcode, ErrItemMigration, ErrAmbiguousKey)
	default:
		return m.store.GetByPID(ctx, model.RecTypeItem, result.Hits[0].PID)
	}
}

// InternalLocationByLegacyID resolves an internal location by the legacy
// library id. Failures surface as item migration errors; the lookup only
// ever happens on behalf of an item.
func (m *Migrator) InternalLocationByLegacyID(ctx context.Context, legacyID string) (record.Record, error) {
	result, err := m.index.Query(ctx, model.RecTypeInternalLocation, search.Term("legacy_id", legacyID))
	if err != nil {
		return nil, err
	}

	switch {
	case result.Total < 1:
		color.Red("no internal location found with legacy id %s", legacyID)
		return nil, fmt.Errorf("no internal location found with legacy id %s: %w", legacyID, ErrItemMigration)
	case result.Total > 1:
		return nil, fmt.Errorf("found more than one internal location with legacy id %s: %w: %w", legacyID, ErrItemMigration, ErrAmbiguousKey)
	default:
		return m.store.GetByPID(ctx, model.RecTypeInternalLocation, result.Hits[0].PID)
	}
}

// MultipartByLegacyRecid resolves a multipart monograph series by its legacy
// recid. Zero matches is governed by the MultipartNotFound policy: the
// lenient outcome is (nil, nil) and the caller skips linking.
func (m *Migrator) MultipartByLegacyRecid(ctx context.Context, recid string) (record.Record, error) {
	result, err := m.index.Query(ctx, model.RecTypeSeries,
		search.Term("mode_of_issuance", model.ModeMultipartMonograph),
		search.Term("legacy_recid", recid),
	)
	if err != nil {
		return nil, err
	}

	switch {
	case result.Total < 1:
		color.Red("no multipart found with legacy recid %s", recid)
		if m.policy.MultipartNotFound == ActionFail {
			return nil, fmt.Errorf("no multipart found with legacy recid %s: %w", recid, ErrMultipartMigration)
		}
		return nil, nil
	case result.Total > 1:
		return nil, fmt.Errorf("found more than one multipart with recid %s: %w: %w", recid, ErrMultipartMigration, ErrAmbiguousKey)
	default:
		return m.store.GetByPID(ctx, model.RecTypeSeries, result.Hits[0].PID)
	}
}

// PatronByPersonID resolves a patron by the external directory person id.
// Absence is a normal outcome, not every legacy user is synced.
func (m *Migrator) PatronByPersonID(ctx context.Context, personID string) (record.Record, error) {
	return m.patronBy(ctx, "person_id", personID)
}

// PatronByLegacyID resolves a patron by the legacy borrower id stamped during
// user migration.
func (m *Migrator) PatronByLegacyID(ctx context.Context, legacyID string) (record.Record, error) {
	return m.patronBy(ctx, "legacy_id", legacyID)
}

func (m *Migrator) patronBy(ctx context.Context, field, value string) (record.Record, error) {
	result, err := m.index.Query(ctx, model.RecTypePatron, search.Term(field, value))
	if err != nil {
		return nil, err
	}

	switch {
	case result.Total < 1:
		color.Red("no user found with %s %s", field, value)
		return nil, nil
	case result.Total > 1:
		return nil, fmt.Errorf("found more than one user with %s %s: %w: %w", field, value, ErrUserMigration, ErrAmbiguousKey)
	default:
		return m.store.GetByPID(ctx, model.RecTypePatron, result.Hits[0].PID)
	}
}
