package controller

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/labstack/echo/v4"
)

const healthTimeout = 3 * time.Second

// HealthChecks maps a dependency name to its probe.
type HealthChecks map[string]func(ctx context.Context) error

type InfoController interface {
	Info(c echo.Context) error
	Health(c echo.Context) error
	Categories(c echo.Context) error
}

type infoController struct {
	config dto.Config
	checks HealthChecks
}

func newInfoController(config dto.Config, checks HealthChecks) InfoController {
	return &infoController{config: config, checks: checks}
}

func (i *infoController) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.InfoResponse{
		Name:        "trippin",
		Environment: i.config.Environment,
		Time:        time.Now().In(i.config.Location()).Format(time.RFC3339),
	})
}

func (i *infoController) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	names := make([]string, 0, len(i.checks))
	for name := range i.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	response := dto.HealthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
	status := http.StatusOK
	for _, name := range names {
		if err := i.checks[name](ctx); err != nil {
			response.Checks[name] = err.Error()
			response.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		response.Checks[name] = "up"
	}

	return c.JSON(status, response)
}

func (i *infoController) Categories(c echo.Context) error {
	categories := make([]dto.CategoryResponse, 0, len(model.Categories))
	for _, category := range model.Categories {
		categories = append(categories, dto.CategoryResponse{
			Value:       category,
			Label:       category.Label(),
			Description: category.Description(),
		})
	}
	return c.JSON(http.StatusOK, categories)
}
