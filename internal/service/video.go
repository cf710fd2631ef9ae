package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dsp4life2020-woodz/trippintv/internal/client"
	appctx "github.com/dsp4life2020-woodz/trippintv/internal/context"
	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/dsp4life2020-woodz/trippintv/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultFeedLimit = 50
	maxFeedLimit     = 100
	trendingSize     = 3
)

type VideoService interface {
	// Upload stores the file first and only then creates the video, so a failed upload leaves nothing behind.
	Upload(ctx context.Context, request dto.UploadVideoRequest, file io.Reader) (model.Video, error)
	Feed(ctx context.Context, category model.Category, limit int) ([]model.Video, error)
	Trending(ctx context.Context) ([]model.Video, error)
	Get(ctx context.Context, id string) (model.Video, error)
	RecordView(ctx context.Context, id string) (int, error)
}

type videoService struct {
	repositories   repository.Repositories
	storageClient  client.StorageClient
	maxUploadBytes int64
}

func newVideoService(repositories repository.Repositories, storageClient client.StorageClient, config dto.Config) VideoService {
	return &videoService{
		repositories:   repositories,
		storageClient:  storageClient,
		maxUploadBytes: config.MaxUploadBytes,
	}
}

func (v *videoService) Upload(ctx context.Context, request dto.UploadVideoRequest, file io.Reader) (model.Video, error) {
	user, ok := appctx.GetUserFromContext(ctx)
	if !ok {
		return model.Video{}, fmt.Errorf("%w: sign in to upload", dto.ErrUnauthenticated)
	}

	title := strings.TrimSpace(request.Title)
	switch {
	case title == "":
		return model.Video{}, fmt.Errorf("%w: title is required", dto.ErrValidation)
	case !request.Category.IsValid():
		return model.Video{}, fmt.Errorf("%w: unknown category %q", dto.ErrValidation, request.Category)
	case file == nil || request.Size <= 0:
		return model.Video{}, fmt.Errorf("%w: a video file is required", dto.ErrValidation)
	case request.Size > v.maxUploadBytes:
		return model.Video{}, fmt.Errorf("%w: file is larger than %d MB", dto.ErrValidation, v.maxUploadBytes/(1024*1024))
	}

	id := uuid.NewString()
	objectName := fmt.Sprintf("videos/%s/%s%s", user.ID, id, strings.ToLower(filepath.Ext(request.FileName)))
	contentType := request.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := v.storageClient.Upload(ctx, objectName, contentType, io.LimitReader(file, v.maxUploadBytes))
	if err != nil {
		return model.Video{}, err
	}

	userName := user.DisplayName
	if userName == "" {
		userName = user.Email
	}

	video, err := v.repositories.Video().Create(model.Video{
		ID:                id,
		Title:             title,
		Description:       strings.TrimSpace(request.Description),
		Category:          request.Category,
		VideoURL:          url,
		TripCount:         0,
		ViewCount:         0,
		IsContestEligible: true,
		UserID:            user.ID,
		UserName:          userName,
	})
	if err != nil {
		logrus.Errorf("Video record for uploaded object %s could not be created: %v", objectName, err)
		return model.Video{}, err
	}

	logrus.Infof("User %s uploaded video %s (%s)", user.ID, video.ID, video.Category)
	return video, nil
}

func (v *videoService) Feed(_ context.Context, category model.Category, limit int) ([]model.Video, error) {
	if category != "" && !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", dto.ErrValidation, category)
	}
	switch {
	case limit <= 0:
		limit = defaultFeedLimit
	case limit > maxFeedLimit:
		limit = maxFeedLimit
	}
	return v.repositories.Video().Filter(repository.VideoFilter{Category: category, Limit: limit})
}

func (v *videoService) Trending(ctx context.Context) ([]model.Video, error) {
	return v.Feed(ctx, "", trendingSize)
}

func (v *videoService) Get(_ context.Context, id string) (model.Video, error) {
	return v.repositories.Video().GetByID(id)
}

func (v *videoService) RecordView(_ context.Context, id string) (int, error) {
	return v.repositories.Video().IncrementViews(id)
}
