package migrator

import (
	"context"
	"fmt"

	"github.com/bibkit/ilsmigrate/internal/dump"
	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
)

// ImportInternalLocations loads holding locations from a flat dump. The
// "type" discriminator decides the target model: "external" becomes a
// library, anything else an internal location under the default physical
// location. The discriminator itself is not part of either schema and is
// popped before import.
func (m *Migrator) ImportInternalLocations(ctx context.Context, path string, include dump.Include) error {
	reader, err := dump.Open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	items, err := dump.ReadList(reader)
	if err != nil {
		return err
	}

	var locations []record.Record
	var libraries []record.Record
	for _, rec := range items {
		legacyID := rec.GetString("legacy_id")
		fmt.Printf("Importing internal location %q(internal_location)...\n", legacyID)
		if !include.Match(legacyID) {
			continue
		}

		libraryType := rec.GetString("type")
		rec.Delete("type")
		rec.Set("legacy_id", legacyID)

		if libraryType == "external" {
			imported, err := m.ImportRecord(ctx, rec, model.RecTypeLibrary, "legacy_id")
			if err != nil {
				return err
			}
			libraries = append(libraries, imported)
		} else {
			rec.Set("location_pid", m.defaultLocationPID)
			imported, err := m.ImportRecord(ctx, rec, model.RecTypeInternalLocation, "legacy_id")
			if err != nil {
				return err
			}
			locations = append(locations, imported)
		}
	}

	if err := m.bulkIndexRecords(ctx, model.RecTypeInternalLocation, locations); err != nil {
		return err
	}
	return m.bulkIndexRecords(ctx, model.RecTypeLibrary, libraries)
}
