package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/service"
	"github.com/labstack/echo/v4"
)

type ContestController interface {
	Current(c echo.Context) error
	PreviousWinner(c echo.Context) error
	ByWeek(c echo.Context) error
}

type contestController struct {
	contestService service.ContestService
}

func newContestController(contestService service.ContestService) ContestController {
	return &contestController{contestService: contestService}
}

func (cc *contestController) Current(c echo.Context) error {
	overview, err := cc.contestService.Current(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, overview)
}

func (cc *contestController) PreviousWinner(c echo.Context) error {
	result, err := cc.contestService.PreviousWinner(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (cc *contestController) ByWeek(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return respondError(c, fmt.Errorf("%w: invalid year %q", dto.ErrValidation, c.Param("year")))
	}
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		return respondError(c, fmt.Errorf("%w: invalid week %q", dto.ErrValidation, c.Param("week")))
	}

	result, err := cc.contestService.GetByWeek(c.Request().Context(), year, week)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
