package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&RecordRow{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Relation{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&PidSequence{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&IndexEntry{}, &IndexDoc{}); err != nil {
		return err
	}

	return db.AutoMigrate(&RemoteAccount{})
}
