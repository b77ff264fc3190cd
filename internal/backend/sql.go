package backend

import (
	"errors"

	"storage-control-api/internal/models"
	"storage-control-api/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQL is a storage.Backend persisting entries in the storage_items table.
type SQL struct {
	db *gorm.DB
}

// NewSQL wraps an open, migrated database.
func NewSQL(db *gorm.DB) *SQL {
	return &SQL{db: db}
}

// GetItem implements storage.Backend.
func (s *SQL) GetItem(key string) (string, bool, error) {
	var item models.Item
	err := s.db.Where(&models.Item{Key: key}).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return item.Value, true, nil
}

// SetItem implements storage.Backend. The row is replaced as a whole.
func (s *SQL) SetItem(key, value string) error {
	item := models.Item{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&item).Error
}

// RemoveItem implements storage.Backend.
func (s *SQL) RemoveItem(key string) error {
	return s.db.Where(&models.Item{Key: key}).Delete(&models.Item{}).Error
}

// Len returns the number of stored rows, expired records included.
func (s *SQL) Len() (int64, error) {
	var n int64
	err := s.db.Model(&models.Item{}).Count(&n).Error
	return n, err
}

// Ensure SQL implements storage.Backend at compile time.
var _ storage.Backend = (*SQL)(nil)
