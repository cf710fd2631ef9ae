package testutil

import (
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/dsp4life2020-woodz/trippintv/internal/repository"
)

// TripFinder replaces TripRepository.Find.
type TripFinder func(videoID, userID string) (model.Trip, error)

// WithTripFinder wraps repos so every Trip().Find, including those inside transactions, goes through find.
// It stands in for a concurrent toggle that changed the ledger between the read and the write.
func WithTripFinder(repos repository.Repositories, find TripFinder) repository.Repositories {
	return tripFinderRepositories{Repositories: repos, find: find}
}

type tripFinderRepositories struct {
	repository.Repositories
	find TripFinder
}

func (r tripFinderRepositories) Trip() repository.TripRepository {
	return tripFinderRepository{TripRepository: r.Repositories.Trip(), find: r.find}
}

func (r tripFinderRepositories) Transaction(fn func(repository.Repositories) error) error {
	return r.Repositories.Transaction(func(tx repository.Repositories) error {
		return fn(tripFinderRepositories{Repositories: tx, find: r.find})
	})
}

type tripFinderRepository struct {
	repository.TripRepository
	find TripFinder
}

func (r tripFinderRepository) Find(videoID, userID string) (model.Trip, error) {
	return r.find(videoID, userID)
}
