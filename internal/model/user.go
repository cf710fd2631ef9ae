package model

import (
	"time"

	"gorm.io/gorm"
)

// User mirrors an identity-provider account. ID is the provider uid.
type User struct {
	ID          string         `gorm:"primaryKey;type:varchar(128)" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	DisplayName string         `json:"display_name"`
	Email       string         `gorm:"not null" json:"email"`
}
