package model

import (
	"gorm.io/gorm"
)

// RecType identifies the entity model a stored record belongs to.
type RecType string

const (
	RecTypeDocument         RecType = "document"
	RecTypeSeries           RecType = "series"
	RecTypeInternalLocation RecType = "internal_location"
	RecTypeLibrary          RecType = "library"
	RecTypeItem             RecType = "item"
	RecTypeLoan             RecType = "loan"
	RecTypePatron           RecType = "patron"
)

// Valid reports whether rt names a known record type.
func (rt RecType) Valid() bool {
	switch rt {
	case RecTypeDocument, RecTypeSeries, RecTypeInternalLocation,
		RecTypeLibrary, RecTypeItem, RecTypeLoan, RecTypePatron:
		return true
	}
	return false
}

// Mode of issuance values distinguishing the two Series kinds.
const (
	ModeSerial             = "SERIAL"
	ModeMultipartMonograph = "MULTIPART_MONOGRAPH"
)

// RecordRow is the persisted form of a record: one row per record, all
// rectypes in a single table. Data holds the full record JSON; the natural
// keys used for resolution live in the search index, not here.
type RecordRow struct {
	gorm.Model
	RecType    string `gorm:"not null;index:idx_records_rectype;uniqueIndex:idx_records_rectype_pid,priority:1"`
	PID        string `gorm:"column:pid;not null;uniqueIndex:idx_records_rectype_pid,priority:2"`
	RecordUUID string `gorm:"uuid;not null;uniqueIndex"`
	Data       string `gorm:"not null"`
}

func (r *RecordRow) TableName() string {
	return "records"
}
