package model

import (
	"time"
)

type Video struct {
	ID                string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time `json:"-"`
	Title             string    `gorm:"not null" json:"title"`
	Description       string    `json:"description"`
	Category          Category  `gorm:"type:varchar(32);not null;index" json:"category"`
	VideoURL          string    `gorm:"not null" json:"video_url"`
	ThumbnailURL      *string   `json:"thumbnail_url,omitempty"`
	TripCount         int       `gorm:"not null;default:0" json:"trip_count"`
	ViewCount         int       `gorm:"not null;default:0" json:"view_count"`
	IsContestEligible bool      `gorm:"not null" json:"is_contest_eligible"`
	UserID            string    `gorm:"type:varchar(128);not null;index" json:"user_id"`
	UserName          string    `json:"user_name"`
}
