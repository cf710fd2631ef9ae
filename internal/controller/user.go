package controller

import (
	"net/http"

	"github.com/dsp4life2020-woodz/trippintv/internal/service"
	"github.com/labstack/echo/v4"
)

type UserController interface {
	Me(c echo.Context) error
	Profile(c echo.Context) error
}

type userController struct {
	userService service.UserService
}

func newUserController(userService service.UserService) UserController {
	return &userController{
		userService: userService,
	}
}

func (u *userController) Me(c echo.Context) error {
	user, err := u.userService.Me(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (u *userController) Profile(c echo.Context) error {
	profile, err := u.userService.Profile(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}
