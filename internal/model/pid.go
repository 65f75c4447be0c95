package model

// PidSequence backs the per-rectype identifier providers. Next is the next
// ordinal to mint for the rectype.
type PidSequence struct {
	RecType string `gorm:"primaryKey"`
	Next    int64  `gorm:"not null;default:1"`
}

func (p *PidSequence) TableName() string {
	return "pid_sequences"
}
