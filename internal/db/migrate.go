package db

import (
	"adboard/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.GoogleBot{},
		&models.GoogleAd{},
		&models.GoogleTag{},
		&models.GoogleAdTag{},
		&models.TwitterBot{},
		&models.TwitterAd{},
		&models.TwitterAdSighting{},
		&models.TwitterTag{},
		&models.TwitterAdTag{},
	)
}
