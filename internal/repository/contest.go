package repository

import (
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContestRepository interface {
	FindByWeek(weekNumber, year int) (model.Contest, error)
	Create(contest model.Contest) (model.Contest, error)
}

type contest struct {
	db *gorm.DB
}

func newContestRepository(db *gorm.DB) ContestRepository {
	return &contest{
		db: db,
	}
}

func (c *contest) FindByWeek(weekNumber, year int) (model.Contest, error) {
	var contest model.Contest
	err := c.db.Where("week_number = ? AND year = ?", weekNumber, year).First(&contest).Error
	if err != nil {
		return model.Contest{}, storeError(err)
	}
	return contest, nil
}

func (c *contest) Create(contest model.Contest) (model.Contest, error) {
	if contest.ID == "" {
		contest.ID = uuid.NewString()
	}
	if err := c.db.Create(&contest).Error; err != nil {
		return model.Contest{}, storeError(err)
	}
	return contest, nil
}
