package controller

import (
	"errors"
	"fmt"
	"strings"

	appctx "github.com/dsp4life2020-woodz/trippintv/internal/context"
	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/service"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the bearer token into a session on the request context.
func AuthMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return respondError(c, fmt.Errorf("%w: missing authorization header", dto.ErrUnauthenticated))
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader || token == "" {
				return respondError(c, fmt.Errorf("%w: invalid authorization format", dto.ErrUnauthenticated))
			}

			req := c.Request()
			user, err := authService.ValidateToken(req.Context(), token)
			if err != nil {
				if errors.Is(err, dto.ErrStoreUnavailable) {
					return respondError(c, err)
				}
				return respondError(c, fmt.Errorf("%w: invalid token", dto.ErrUnauthenticated))
			}

			c.SetRequest(req.WithContext(appctx.WithSession(req.Context(), appctx.Session{User: user})))
			return next(c)
		}
	}
}
