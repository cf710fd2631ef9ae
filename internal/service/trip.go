package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dsp4life2020-woodz/trippintv/internal/contest"
	appctx "github.com/dsp4life2020-woodz/trippintv/internal/context"
	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/dsp4life2020-woodz/trippintv/internal/repository"
	"github.com/sirupsen/logrus"
)

// TripService owns the trip ledger and the trip_count counter derived from it.
type TripService interface {
	// ToggleTrip adds the session user's trip on a video, or removes it when present.
	ToggleTrip(ctx context.Context, videoID string) (dto.TripState, error)
	VerifyTripCount(ctx context.Context, videoID string) error
	// ReconcileTripCount rewrites trip_count from the ledger and returns the new value.
	ReconcileTripCount(ctx context.Context, videoID string) (int, error)
	// ReconcileAll fixes every drifted video and returns how many were rewritten.
	ReconcileAll(ctx context.Context) (int, error)
	ListTrippedVideoIDs(ctx context.Context) ([]string, error)
}

type tripService struct {
	repositories repository.Repositories
	broker       TripBroker
	leaderboards *leaderboardCache
	clock        Clock
}

func newTripService(repositories repository.Repositories, broker TripBroker, leaderboards *leaderboardCache, clock Clock) TripService {
	return &tripService{
		repositories: repositories,
		broker:       broker,
		leaderboards: leaderboards,
		clock:        clock,
	}
}

func (t *tripService) ToggleTrip(ctx context.Context, videoID string) (dto.TripState, error) {
	user, ok := appctx.GetUserFromContext(ctx)
	if !ok {
		return dto.TripState{}, fmt.Errorf("%w: sign in to trip a video", dto.ErrUnauthenticated)
	}

	var (
		state dto.TripState
		video model.Video
	)
	err := t.repositories.Transaction(func(tx repository.Repositories) error {
		var err error
		video, err = tx.Video().GetByID(videoID)
		if err != nil {
			return err
		}

		existing, err := tx.Trip().Find(videoID, user.ID)
		switch {
		case err == nil:
			if err := tx.Trip().Delete(existing); err != nil {
				return err
			}
			count, floored, err := tx.Video().DecrementTripCount(videoID)
			if err != nil {
				return err
			}
			if floored {
				logrus.Warnf("trip_count of video %s was already 0 when user %s removed a trip", videoID, user.ID)
			}
			state = dto.TripState{VideoID: videoID, Tripped: false, TripCount: count}
		case errors.Is(err, dto.ErrNotFound):
			if _, err := tx.Trip().Create(model.Trip{VideoID: videoID, UserID: user.ID}); err != nil {
				return err
			}
			count, err := tx.Video().IncrementTripCount(videoID)
			if err != nil {
				return err
			}
			state = dto.TripState{VideoID: videoID, Tripped: true, TripCount: count}
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return dto.TripState{}, err
	}

	logrus.Infof("User %s set trip on video %s to %v (trip_count=%d)", user.ID, videoID, state.Tripped, state.TripCount)

	t.leaderboards.invalidate(ctx, contest.Resolve(video.CreatedAt.In(t.clock().Location())))
	t.broker.Publish(ctx, dto.TripEvent{
		VideoID:   videoID,
		UserID:    user.ID,
		Tripped:   state.Tripped,
		TripCount: state.TripCount,
		At:        t.clock(),
	})

	return state, nil
}

func (t *tripService) VerifyTripCount(_ context.Context, videoID string) error {
	video, err := t.repositories.Video().GetByID(videoID)
	if err != nil {
		return err
	}
	count, err := t.repositories.Trip().CountByVideo(videoID)
	if err != nil {
		return err
	}
	if video.TripCount != count {
		return fmt.Errorf("%w: video %s has trip_count %d but %d trips", dto.ErrInconsistentCounter, videoID, video.TripCount, count)
	}
	return nil
}

func (t *tripService) ReconcileTripCount(ctx context.Context, videoID string) (int, error) {
	var (
		count int
		video model.Video
	)
	err := t.repositories.Transaction(func(tx repository.Repositories) error {
		var err error
		video, err = tx.Video().GetByID(videoID)
		if err != nil {
			return err
		}
		count, err = tx.Trip().CountByVideo(videoID)
		if err != nil {
			return err
		}
		if count == video.TripCount {
			return nil
		}
		return tx.Video().SetTripCount(videoID, count)
	})
	if err != nil {
		return 0, err
	}

	if count != video.TripCount {
		logrus.Warnf("Reconciled trip_count of video %s from %d to %d", videoID, video.TripCount, count)
		t.leaderboards.invalidate(ctx, contest.Resolve(video.CreatedAt.In(t.clock().Location())))
	}
	return count, nil
}

func (t *tripService) ReconcileAll(ctx context.Context) (int, error) {
	drifts, err := t.repositories.Video().FindDriftedTripCounts()
	if err != nil {
		return 0, err
	}

	var (
		fixed int
		errs  []error
	)
	for _, drift := range drifts {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := t.ReconcileTripCount(ctx, drift.VideoID); err != nil {
			errs = append(errs, fmt.Errorf("video %s: %w", drift.VideoID, err))
			continue
		}
		fixed++
	}

	if fixed > 0 {
		logrus.Infof("Reconciled %d of %d drifted trip counters", fixed, len(drifts))
	}
	return fixed, errors.Join(errs...)
}

func (t *tripService) ListTrippedVideoIDs(ctx context.Context) ([]string, error) {
	user, ok := appctx.GetUserFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: no session", dto.ErrUnauthenticated)
	}
	return t.repositories.Trip().ListVideoIDsByUser(user.ID)
}
