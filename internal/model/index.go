package model

import "gorm.io/gorm"

// IndexEntry is one term of the search index: a flattened (field, value)
// pair of an indexed record. Multi-valued fields produce one row per value.
type IndexEntry struct {
	gorm.Model
	RecType string `gorm:"not null;index:idx_index_entries_term,priority:1"`
	PID     string `gorm:"column:pid;not null;index:idx_index_entries_pid"`
	Field   string `gorm:"not null;index:idx_index_entries_term,priority:2"`
	Value   string `gorm:"not null;index:idx_index_entries_term,priority:3"`
}

func (e *IndexEntry) TableName() string {
	return "index_entries"
}

// IndexDoc holds the record source as it looked when indexed, so search hits
// can expose fields without a store round trip.
type IndexDoc struct {
	gorm.Model
	RecType string `gorm:"not null;uniqueIndex:idx_index_docs_pid,priority:1"`
	PID     string `gorm:"column:pid;not null;uniqueIndex:idx_index_docs_pid,priority:2"`
	Source  string `gorm:"not null"`
}

func (d *IndexDoc) TableName() string {
	return "index_docs"
}
