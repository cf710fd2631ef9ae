package repository

import (
	"fmt"
	"time"

	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VideoFilter narrows Filter. Zero values match everything; a Limit of zero means no limit.
type VideoFilter struct {
	Category     model.Category
	UserID       string
	IDs          []string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	EligibleOnly bool
	Limit        int
}

// TripCountDrift is a video whose cached counter disagrees with its trips.
type TripCountDrift struct {
	VideoID   string
	TripCount int
	Actual    int
}

type VideoRepository interface {
	Create(video model.Video) (model.Video, error)
	GetByID(id string) (model.Video, error)
	Filter(filter VideoFilter) ([]model.Video, error)
	IncrementTripCount(id string) (int, error)
	// DecrementTripCount never goes below zero. floored reports a decrement that had nothing to remove.
	DecrementTripCount(id string) (count int, floored bool, err error)
	SetTripCount(id string, count int) error
	IncrementViews(id string) (int, error)
	FindDriftedTripCounts() ([]TripCountDrift, error)
}

type video struct {
	db *gorm.DB
}

func newVideoRepository(db *gorm.DB) VideoRepository {
	return &video{
		db: db,
	}
}

func (v *video) Create(video model.Video) (model.Video, error) {
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	if err := v.db.Create(&video).Error; err != nil {
		return model.Video{}, storeError(err)
	}
	return video, nil
}

func (v *video) GetByID(id string) (model.Video, error) {
	var video model.Video
	if err := v.db.First(&video, "id = ?", id).Error; err != nil {
		return model.Video{}, storeError(err)
	}
	return video, nil
}

func (v *video) Filter(filter VideoFilter) ([]model.Video, error) {
	query := v.db.Model(&model.Video{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.IDs != nil {
		if len(filter.IDs) == 0 {
			return []model.Video{}, nil
		}
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	if filter.EligibleOnly {
		query = query.Where("is_contest_eligible = ?", true)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var videos []model.Video
	if err := query.Order("created_at DESC").Order("id").Find(&videos).Error; err != nil {
		return nil, storeError(err)
	}
	return videos, nil
}

func (v *video) IncrementTripCount(id string) (int, error) {
	result := v.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("trip_count", gorm.Expr("trip_count + ?", 1))
	if result.Error != nil {
		return 0, storeError(result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, fmt.Errorf("%w: video %s", dto.ErrNotFound, id)
	}
	return v.tripCount(id)
}

func (v *video) DecrementTripCount(id string) (int, bool, error) {
	result := v.db.Model(&model.Video{}).Where("id = ? AND trip_count > 0", id).
		UpdateColumn("trip_count", gorm.Expr("trip_count - ?", 1))
	if result.Error != nil {
		return 0, false, storeError(result.Error)
	}
	count, err := v.tripCount(id)
	if err != nil {
		return 0, false, err
	}
	return count, result.RowsAffected == 0, nil
}

func (v *video) SetTripCount(id string, count int) error {
	result := v.db.Model(&model.Video{}).Where("id = ?", id).UpdateColumn("trip_count", count)
	if result.Error != nil {
		return storeError(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: video %s", dto.ErrNotFound, id)
	}
	return nil
}

func (v *video) IncrementViews(id string) (int, error) {
	result := v.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return 0, storeError(result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, fmt.Errorf("%w: video %s", dto.ErrNotFound, id)
	}

	var video model.Video
	if err := v.db.Select("view_count").First(&video, "id = ?", id).Error; err != nil {
		return 0, storeError(err)
	}
	return video.ViewCount, nil
}

func (v *video) FindDriftedTripCounts() ([]TripCountDrift, error) {
	query := `
		SELECT v.id AS video_id, v.trip_count AS trip_count, COUNT(t.id) AS actual
		FROM videos v
		LEFT JOIN trips t ON t.video_id = v.id
		GROUP BY v.id, v.trip_count
		HAVING v.trip_count <> COUNT(t.id)
	`

	var drifts []TripCountDrift
	if err := v.db.Raw(query).Scan(&drifts).Error; err != nil {
		return nil, storeError(err)
	}
	return drifts, nil
}

func (v *video) tripCount(id string) (int, error) {
	var video model.Video
	if err := v.db.Select("trip_count").First(&video, "id = ?", id).Error; err != nil {
		return 0, storeError(err)
	}
	return video.TripCount, nil
}
