package model

import "time"

// Trip is one user's vote on a video. The (VideoID, UserID) pair is unique and VideoID must reference a video.
type Trip struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	VideoID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_trip_video_user" json:"video_id"`
	UserID    string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_trip_video_user;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Video *Video `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
