package controller

import (
	"errors"
	"net/http"

	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, dto.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, dto.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, dto.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, dto.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, dto.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as JSON. Server-side failures are logged and not echoed to the client.
func respondError(c echo.Context, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logrus.Errorf("%s %s failed: %v", c.Request().Method, c.Path(), err)
		message = http.StatusText(status)
	}
	return c.JSON(status, dto.ErrorResponse{Error: message})
}
