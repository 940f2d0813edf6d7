package config

import (
	"github.com/bellapacxx/bingo-engine/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// SetupDatabase connects to postgres and runs migrations. The engine itself
// never touches the database; this backs the user/transaction adapters and
// finished-game snapshots.
func SetupDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Card{},
		&models.Transaction{},
	); err != nil {
		return nil, err
	}

	DB = db
	return db, nil
}
