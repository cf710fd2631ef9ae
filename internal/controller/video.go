package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/dsp4life2020-woodz/trippintv/internal/service"
	"github.com/labstack/echo/v4"
)

type VideoController interface {
	List(c echo.Context) error
	Trending(c echo.Context) error
	Get(c echo.Context) error
	RecordView(c echo.Context) error
	Upload(c echo.Context) error
}

type videoController struct {
	videoService service.VideoService
}

func newVideoController(videoService service.VideoService) VideoController {
	return &videoController{videoService: videoService}
}

func (v *videoController) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, fmt.Errorf("%w: limit must be a number", dto.ErrValidation))
		}
		limit = n
	}

	videos, err := v.videoService.Feed(c.Request().Context(), model.Category(c.QueryParam("category")), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, videos)
}

func (v *videoController) Trending(c echo.Context) error {
	videos, err := v.videoService.Trending(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, videos)
}

func (v *videoController) Get(c echo.Context) error {
	video, err := v.videoService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, video)
}

func (v *videoController) RecordView(c echo.Context) error {
	views, err := v.videoService.RecordView(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"view_count": views})
}

func (v *videoController) Upload(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return respondError(c, fmt.Errorf("%w: a video file is required", dto.ErrValidation))
		}
		return respondError(c, fmt.Errorf("%w: %v", dto.ErrValidation, err))
	}

	file, err := header.Open()
	if err != nil {
		return respondError(c, fmt.Errorf("%w: %v", dto.ErrInternalFailure, err))
	}
	defer file.Close()

	video, err := v.videoService.Upload(c.Request().Context(), dto.UploadVideoRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    model.Category(c.FormValue("category")),
		FileName:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
	}, file)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, video)
}
