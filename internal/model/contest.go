package model

import "time"

type Contest struct {
	ID            string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	WeekNumber    int        `gorm:"not null;uniqueIndex:idx_contest_week_year" json:"week_number"`
	Year          int        `gorm:"not null;uniqueIndex:idx_contest_week_year" json:"year"`
	WinnerVideoID *string    `gorm:"type:varchar(36)" json:"winner_video_id"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}
