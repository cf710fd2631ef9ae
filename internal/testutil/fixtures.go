package testutil

import (
	"testing"
	"time"

	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/dsp4life2020-woodz/trippintv/internal/repository"
)

func CreateUser(t *testing.T, repos repository.Repositories, id string) model.User {
	t.Helper()
	user, err := repos.User().Create(model.User{ID: id, Email: id + "@example.com", DisplayName: id})
	if err != nil {
		t.Fatalf("create user %s: %v", id, err)
	}
	return user
}

// CreateVideo stores an eligible video owned by userID. A zero createdAt means now.
func CreateVideo(t *testing.T, repos repository.Repositories, userID string, tripCount int, createdAt time.Time) model.Video {
	t.Helper()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	video, err := repos.Video().Create(model.Video{
		Title:             "clip",
		Category:          model.CategoryRoadRage,
		VideoURL:          "https://storage.example.com/clip.mp4",
		TripCount:         tripCount,
		IsContestEligible: true,
		UserID:            userID,
		UserName:          userID,
		CreatedAt:         createdAt,
	})
	if err != nil {
		t.Fatalf("create video: %v", err)
	}
	return video
}

func CreateTrip(t *testing.T, repos repository.Repositories, videoID, userID string) model.Trip {
	t.Helper()
	trip, err := repos.Trip().Create(model.Trip{VideoID: videoID, UserID: userID})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	return trip
}
