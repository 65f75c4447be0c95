package migrator

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
)

// SplitVolumes materializes one document per distinct volume ordinal of a
// multipart monograph, in ascending ordinal order.
//
// The first volume is not a new record: the parent-container document
// identified by pidValue is mutated in place into volume one. The two share
// a pid on purpose, and the parent's legacy_recid is stripped because volume
// one is not itself a legacy record. Relation linking depends on this
// aliasing, do not "fix" it.
func (m *Migrator) SplitVolumes(ctx context.Context, pidValue, multipartLegacyRecid string, fragments []record.Record) ([]record.Record, error) {
	fmt.Printf("Creating volume for %s...\n", multipartLegacyRecid)

	volumes, err := mergeFragments(multipartLegacyRecid, fragments)
	if err != nil {
		return nil, err
	}
	ordinals := sortedOrdinals(volumes)
	if len(ordinals) == 0 {
		return nil, fmt.Errorf("multipart %s has no volumes: %w", multipartLegacyRecid, ErrMultipartMigration)
	}

	first, err := m.store.GetByPID(ctx, model.RecTypeDocument, pidValue)
	if err != nil {
		return nil, err
	}

	firstOrdinal := ordinals[0]
	if title, ok := volumes[firstOrdinal]["title"]; ok {
		first.Set("title", title)
		first.Set("volume", firstOrdinal)
	}
	first.SetMigrationField("multipart_legacy_recid", multipartLegacyRecid)
	first.Delete("legacy_recid")

	if err := m.store.Update(ctx, model.RecTypeDocument, first); err != nil {
		return nil, err
	}
	if err := m.indexer.Index(ctx, model.RecTypeDocument, first); err != nil {
		return nil, err
	}

	records := []record.Record{first}

	for _, ordinal := range ordinals[1:] {
		title, ok := volumes[ordinal]["title"]
		if !ok {
			return nil, fmt.Errorf("volume %s of multipart %s has no title: %w",
				ordinal, multipartLegacyRecid, ErrMultipartMigration)
		}

		temp := first.Copy()
		temp.Set("title", title)
		temp.Set("volume", ordinal)

		recordUUID := uuid.New()
		provider, err := m.providers.Create(ctx, model.RecTypeDocument, recordUUID)
		if err != nil {
			return nil, err
		}
		temp.Set("pid", provider.PID)

		created, err := m.store.Create(ctx, model.RecTypeDocument, temp, recordUUID)
		if err != nil {
			return nil, err
		}
		if err := m.indexer.Index(ctx, model.RecTypeDocument, created); err != nil {
			return nil, err
		}
		records = append(records, created)
	}

	return records, nil
}

// mergeFragments groups raw volume fragments by ordinal and merges their
// fields. The same field arriving twice for one ordinal means the dump is
// corrupted, which no amount of merging can repair.
func mergeFragments(multipartLegacyRecid string, fragments []record.Record) (map[string]map[string]any, error) {
	volumes := map[string]map[string]any{}
	for _, fragment := range fragments {
		if !fragment.Has("volume") {
			return nil, fmt.Errorf("volume fragment of multipart %s has no ordinal: %w",
				multipartLegacyRecid, ErrMultipartMigration)
		}
		ordinal := fragment.GetString("volume")

		volume, ok := volumes[ordinal]
		if !ok {
			volume = map[string]any{}
			volumes[ordinal] = volume
		}

		for key, value := range fragment {
			if key == "volume" {
				continue
			}
			if _, exists := volume[key]; exists {
				return nil, fmt.Errorf("duplicate key %q for multipart %s: %w",
					key, multipartLegacyRecid, ErrDuplicateVolumeKey)
			}
			volume[key] = value
		}
	}
	return volumes, nil
}

func sortedOrdinals(volumes map[string]map[string]any) []string {
	ordinals := make([]string, 0, len(volumes))
	for ordinal := range volumes {
		ordinals = append(ordinals, ordinal)
	}
	sort.Slice(ordinals, func(i, j int) bool {
		a, errA := strconv.Atoi(ordinals[i])
		b, errB := strconv.Atoi(ordinals[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return ordinals[i] < ordinals[j]
	})
	return ordinals
}
