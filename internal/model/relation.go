package model

import "gorm.io/gorm"

// Relation type names as stored on relation edges.
const (
	SerialRelation             = "serial"
	MultipartMonographRelation = "multipart_monograph"
)

// Relation is a directed parent->child edge in the record graph, owned by
// the parent. Volume is the child's ordinal within the parent, "" when the
// relation carries none.
type Relation struct {
	gorm.Model
	ParentPID    string `gorm:"column:parent_pid;not null;index:idx_relations_parent"`
	ParentType   string `gorm:"not null"`
	ChildPID     string `gorm:"column:child_pid;not null;index:idx_relations_child"`
	ChildType    string `gorm:"not null"`
	RelationType string `gorm:"not null"`
	Volume       string
}

func (r *Relation) TableName() string {
	return "relations"
}
