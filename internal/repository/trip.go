package repository

import (
	"fmt"

	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TripRepository interface {
	Create(trip model.Trip) (model.Trip, error)
	Find(videoID, userID string) (model.Trip, error)
	Delete(trip model.Trip) error
	CountByVideo(videoID string) (int, error)
	ListVideoIDsByUser(userID string) ([]string, error)
}

type trip struct {
	db *gorm.DB
}

func newTripRepository(db *gorm.DB) TripRepository {
	return &trip{
		db: db,
	}
}

func (t *trip) Create(trip model.Trip) (model.Trip, error) {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	if err := t.db.Create(&trip).Error; err != nil {
		return model.Trip{}, storeError(err)
	}
	return trip, nil
}

func (t *trip) Find(videoID, userID string) (model.Trip, error) {
	var trip model.Trip
	err := t.db.Where("video_id = ? AND user_id = ?", videoID, userID).First(&trip).Error
	if err != nil {
		return model.Trip{}, storeError(err)
	}
	return trip, nil
}

// Delete returns ErrConflict when no row was removed.
func (t *trip) Delete(trip model.Trip) error {
	result := t.db.Delete(&model.Trip{}, "id = ?", trip.ID)
	if result.Error != nil {
		return storeError(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: trip %s was already removed", dto.ErrConflict, trip.ID)
	}
	return nil
}

func (t *trip) CountByVideo(videoID string) (int, error) {
	var count int64
	if err := t.db.Model(&model.Trip{}).Where("video_id = ?", videoID).Count(&count).Error; err != nil {
		return 0, storeError(err)
	}
	return int(count), nil
}

func (t *trip) ListVideoIDsByUser(userID string) ([]string, error) {
	var ids []string
	err := t.db.Model(&model.Trip{}).Where("user_id = ?", userID).
		Order("created_at DESC").Pluck("video_id", &ids).Error
	if err != nil {
		return nil, storeError(err)
	}
	return ids, nil
}
