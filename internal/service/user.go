package service

import (
	"context"
	"fmt"

	appctx "github.com/dsp4life2020-woodz/trippintv/internal/context"
	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/dsp4life2020-woodz/trippintv/internal/repository"
)

type UserService interface {
	Me(ctx context.Context) (model.User, error)
	Profile(ctx context.Context) (dto.ProfileResponse, error)
}

type userService struct {
	repositories repository.Repositories
}

func newUserService(repositories repository.Repositories) UserService {
	return &userService{repositories: repositories}
}

func (u *userService) Me(ctx context.Context) (model.User, error) {
	user, ok := appctx.GetUserFromContext(ctx)
	if !ok {
		return model.User{}, fmt.Errorf("%w: no session", dto.ErrUnauthenticated)
	}
	return user, nil
}

func (u *userService) Profile(ctx context.Context) (dto.ProfileResponse, error) {
	user, err := u.Me(ctx)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	videos, err := u.repositories.Video().Filter(repository.VideoFilter{UserID: user.ID})
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	trippedIDs, err := u.repositories.Trip().ListVideoIDsByUser(user.ID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	tripped := []model.Video{}
	if len(trippedIDs) > 0 {
		tripped, err = u.repositories.Video().Filter(repository.VideoFilter{IDs: trippedIDs})
		if err != nil {
			return dto.ProfileResponse{}, err
		}
	}

	stats := dto.ProfileStats{
		VideosUploaded: len(videos),
		VideosTripped:  len(trippedIDs),
	}
	for _, v := range videos {
		stats.TripsReceived += v.TripCount
	}

	return dto.ProfileResponse{
		User:          user,
		Videos:        videos,
		TrippedVideos: tripped,
		Stats:         stats,
	}, nil
}
