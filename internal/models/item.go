package models

import "time"

// Item is one backend entry: an opaque string stored under a composite key.
// Expiry lives inside Value; the table itself knows nothing about it.
type Item struct {
	Key       string    `json:"key" gorm:"primaryKey;size:512"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Item Model
func (Item) TableName() string {
	return "storage_items"
}
