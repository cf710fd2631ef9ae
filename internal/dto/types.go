package dto

import (
	"time"

	"github.com/dsp4life2020-woodz/trippintv/internal/contest"
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
)

// TripState is the outcome of a toggle as seen by the voter.
type TripState struct {
	VideoID   string `json:"video_id"`
	Tripped   bool   `json:"tripped"`
	TripCount int    `json:"trip_count"`
}

// TripEvent is fanned out to live subscribers after every successful toggle.
type TripEvent struct {
	VideoID   string    `json:"video_id"`
	UserID    string    `json:"user_id"`
	Tripped   bool      `json:"tripped"`
	TripCount int       `json:"trip_count"`
	At        time.Time `json:"at"`
}

type CategoryResponse struct {
	Value       model.Category `json:"value"`
	Label       string         `json:"label"`
	Description string         `json:"description"`
}

type TrippedVideosResponse struct {
	VideoIDs []string `json:"video_ids"`
}

type UploadVideoRequest struct {
	Title       string
	Description string
	Category    model.Category
	FileName    string
	ContentType string
	Size        int64
}

type ProfileStats struct {
	VideosUploaded int `json:"videos_uploaded"`
	TripsReceived  int `json:"trips_received"`
	VideosTripped  int `json:"videos_tripped"`
}

type ProfileResponse struct {
	User          model.User    `json:"user"`
	Videos        []model.Video `json:"videos"`
	TrippedVideos []model.Video `json:"tripped_videos"`
	Stats         ProfileStats  `json:"stats"`
}

type ContestOverview struct {
	WeekNumber    int                 `json:"week_number"`
	Year          int                 `json:"year"`
	Key           contest.Key         `json:"key"`
	StartsAt      time.Time           `json:"starts_at"`
	EndsAt        time.Time           `json:"ends_at"`
	Countdown     contest.Countdown   `json:"countdown"`
	TimeRemaining string              `json:"time_remaining"`
	Leaderboard   contest.Leaderboard `json:"leaderboard"`
}

type ContestResult struct {
	Contest model.Contest `json:"contest"`
	Winner  *model.Video  `json:"winner,omitempty"`
}

type InfoResponse struct {
	Name        string `json:"name"`
	Environment string `json:"environment"`
	Time        string `json:"time"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
