package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account allowed to use the storage API
type User struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"unique;not null"`
	PasswordHash string         `json:"-" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
