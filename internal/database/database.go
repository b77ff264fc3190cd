package database

import (
	"log"

	"storage-control-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open opens a SQLite database and runs migrations
// Using glebarez/sqlite which is a pure Go implementation (no CGO required)
func Open(path string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer; one connection also keeps ":memory:" databases shared
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables the service needs
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Item{},
	)
}

// InitDB initializes the global database connection
func InitDB(path string, level logger.LogLevel) {
	var err error
	DB, err = Open(path, level)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}

	log.Printf("Database %s connected and migrated", path)
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
