package search

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
)

func NewGormIndex(db *gorm.DB) *GormIndex {
	return &GormIndex{
		db: db,
	}
}

var _ Index = (*GormIndex)(nil)

// GormIndex keeps the index in two tables: an inverted term table for
// filtering and a source table for hydrating hits.
type GormIndex struct {
	db *gorm.DB
}

func (g *GormIndex) Query(ctx context.Context, rectype model.RecType, filters ...Filter) (Result, error) {
	hits, err := g.Scan(ctx, rectype, filters...)
	if err != nil {
		return Result{}, err
	}
	return Result{Total: len(hits), Hits: hits}, nil
}

func (g *GormIndex) Scan(ctx context.Context, rectype model.RecType, filters ...Filter) ([]Hit, error) {
	query := g.db.WithContext(ctx).
		Model(&model.IndexDoc{}).
		Where("index_docs.rec_type = ?", string(rectype))

	for _, filter := range filters {
		query = query.Where(
			"EXISTS (SELECT 1 FROM index_entries e WHERE e.rec_type = index_docs.rec_type"+
				" AND e.pid = index_docs.pid AND e.field = ? AND e.value = ?)",
			filter.Field, filter.Value,
		)
	}

	var docs []model.IndexDoc
	if err := query.Order("index_docs.id asc").Find(&docs).Error; err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(docs))
	for _, doc := range docs {
		source, err := record.FromJSON([]byte(doc.Source))
		if err != nil {
			logrus.Errorf("indexed %s %s is corrupted: %v", doc.RecType, doc.PID, err)
			return nil, err
		}
		hits = append(hits, Hit{PID: doc.PID, Source: source})
	}

	return hits, nil
}

// IndexRecord replaces the indexed terms and source of a record. Used by the
// bulk indexer; re-indexing an unchanged record is idempotent.
func (g *GormIndex) IndexRecord(ctx context.Context, rectype model.RecType, rec record.Record) error {
	pidValue := rec.PID()
	source, err := rec.JSON()
	if err != nil {
		return err
	}

	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("rec_type = ? AND pid = ?", string(rectype), pidValue).
			Delete(&model.IndexEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("rec_type = ? AND pid = ?", string(rectype), pidValue).
			Delete(&model.IndexDoc{}).Error; err != nil {
			return err
		}

		for _, term := range Flatten(rec) {
			entry := model.IndexEntry{
				RecType: string(rectype),
				PID:     pidValue,
				Field:   term.Field,
				Value:   term.Value,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		doc := model.IndexDoc{
			RecType: string(rectype),
			PID:     pidValue,
			Source:  string(source),
		}
		return tx.Create(&doc).Error
	})
}
