package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dsp4life2020-woodz/trippintv/internal/contest"
	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/dsp4life2020-woodz/trippintv/internal/repository"
	"github.com/sirupsen/logrus"
)

const leaderboardSize = 10

type ContestService interface {
	// Current returns the running week with its countdown and top entries.
	Current(ctx context.Context) (dto.ContestOverview, error)
	PreviousWinner(ctx context.Context) (dto.ContestResult, error)
	// ResolveWeek records the winner of a finished window. Resolving the same week twice returns the stored result.
	ResolveWeek(ctx context.Context, window contest.Window) (model.Contest, error)
	ResolvePreviousWeek(ctx context.Context) (model.Contest, error)
	GetByWeek(ctx context.Context, year, weekNumber int) (dto.ContestResult, error)
}

type contestService struct {
	repositories repository.Repositories
	leaderboards *leaderboardCache
	clock        Clock
}

func newContestService(repositories repository.Repositories, leaderboards *leaderboardCache, clock Clock) ContestService {
	return &contestService{
		repositories: repositories,
		leaderboards: leaderboards,
		clock:        clock,
	}
}

func (c *contestService) Current(ctx context.Context) (dto.ContestOverview, error) {
	now := c.clock()
	window := contest.Resolve(now)

	board, ok := c.leaderboards.get(ctx, window)
	if !ok {
		var err error
		board, err = c.buildLeaderboard(window, leaderboardSize)
		if err != nil {
			return dto.ContestOverview{}, err
		}
		c.leaderboards.put(ctx, window, board)
	}

	countdown := window.Remaining(now)
	return dto.ContestOverview{
		WeekNumber:    window.WeekNumber,
		Year:          window.Year,
		Key:           window.Key(),
		StartsAt:      window.Start,
		EndsAt:        window.End,
		Countdown:     countdown,
		TimeRemaining: countdown.String(),
		Leaderboard:   board,
	}, nil
}

func (c *contestService) PreviousWinner(ctx context.Context) (dto.ContestResult, error) {
	key := contest.Resolve(c.clock()).Previous().Key()
	return c.GetByWeek(ctx, key.Year, key.Week)
}

func (c *contestService) ResolveWeek(_ context.Context, window contest.Window) (model.Contest, error) {
	now := c.clock()
	key := window.Key()
	if !window.Remaining(now).Ended {
		return model.Contest{}, fmt.Errorf("%w: week %d of %d is still running", dto.ErrValidation, key.Week, key.Year)
	}

	existing, err := c.repositories.Contest().FindByWeek(key.Week, key.Year)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, dto.ErrNotFound) {
		return model.Contest{}, err
	}

	board, err := c.buildLeaderboard(window, 1)
	if err != nil {
		return model.Contest{}, err
	}

	record := model.Contest{WeekNumber: key.Week, Year: key.Year, ResolvedAt: &now}
	if winner, ok := board.Winner(); ok {
		record.WinnerVideoID = &winner.ID
	}

	created, err := c.repositories.Contest().Create(record)
	if errors.Is(err, dto.ErrConflict) {
		return c.repositories.Contest().FindByWeek(key.Week, key.Year)
	}
	if err != nil {
		return model.Contest{}, err
	}

	if created.WinnerVideoID != nil {
		logrus.Infof("Week %d of %d resolved, winner %s with %d trips", key.Week, key.Year, *created.WinnerVideoID, board.Stats.LeadingTrips)
	} else {
		logrus.Infof("Week %d of %d resolved without entries", key.Week, key.Year)
	}
	return created, nil
}

func (c *contestService) ResolvePreviousWeek(ctx context.Context) (model.Contest, error) {
	return c.ResolveWeek(ctx, contest.Resolve(c.clock()).Previous())
}

func (c *contestService) GetByWeek(_ context.Context, year, weekNumber int) (dto.ContestResult, error) {
	record, err := c.repositories.Contest().FindByWeek(weekNumber, year)
	if err != nil {
		return dto.ContestResult{}, err
	}

	result := dto.ContestResult{Contest: record}
	if record.WinnerVideoID == nil {
		return result, nil
	}

	winner, err := c.repositories.Video().GetByID(*record.WinnerVideoID)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			logrus.Warnf("Winner %s of week %d/%d no longer exists", *record.WinnerVideoID, weekNumber, year)
			return result, nil
		}
		return dto.ContestResult{}, err
	}
	result.Winner = &winner
	return result, nil
}

func (c *contestService) buildLeaderboard(window contest.Window, limit int) (contest.Leaderboard, error) {
	videos, err := c.repositories.Video().Filter(repository.VideoFilter{
		CreatedFrom:  &window.Start,
		CreatedTo:    &window.End,
		EligibleOnly: true,
	})
	if err != nil {
		return contest.Leaderboard{}, err
	}
	return contest.BuildLeaderboard(videos, window, limit), nil
}
