package repository

import (
	"context"

	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Repositories interface {
	User() UserRepository
	Video() VideoRepository
	Trip() TripRepository
	Contest() ContestRepository

	// Transaction runs fn against repositories bound to one database transaction.
	// An error returned by fn rolls the transaction back and is returned unchanged.
	Transaction(fn func(Repositories) error) error
	Ping(ctx context.Context) error
}

type repositories struct {
	db                *gorm.DB
	userRepository    UserRepository
	videoRepository   VideoRepository
	tripRepository    TripRepository
	contestRepository ContestRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	err := db.AutoMigrate(&model.User{}, &model.Video{}, &model.Trip{}, &model.Contest{})
	if err != nil {
		logrus.Panic(err)
	}
	return newRepositories(db)
}

func newRepositories(db *gorm.DB) Repositories {
	return &repositories{
		db:                db,
		userRepository:    newUserRepository(db),
		videoRepository:   newVideoRepository(db),
		tripRepository:    newTripRepository(db),
		contestRepository: newContestRepository(db),
	}
}

func (r repositories) User() UserRepository {
	return r.userRepository
}

func (r repositories) Video() VideoRepository {
	return r.videoRepository
}

func (r repositories) Trip() TripRepository {
	return r.tripRepository
}

func (r repositories) Contest() ContestRepository {
	return r.contestRepository
}

func (r repositories) Transaction(fn func(Repositories) error) error {
	var fnErr error
	err := r.db.Transaction(func(tx *gorm.DB) error {
		fnErr = fn(newRepositories(tx))
		return fnErr
	})
	if err != nil && fnErr == nil {
		return storeError(err)
	}
	return err
}

func (r repositories) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return storeError(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storeError(err)
	}
	return nil
}
