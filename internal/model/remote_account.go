package model

import "gorm.io/gorm"

// RemoteAccount carries per-patron metadata from the external user
// directory. The migration stamps the legacy borrower id into ExtraData.
type RemoteAccount struct {
	gorm.Model
	PatronPID string `gorm:"column:patron_pid;not null;uniqueIndex"`
	ExtraData string `gorm:"not null;default:'{}'"`
}

func (a *RemoteAccount) TableName() string {
	return "remote_accounts"
}
