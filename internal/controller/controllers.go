package controller

import (
	"fmt"

	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// uploadOverhead leaves room for the multipart envelope around the file.
const uploadOverhead = 1 << 20

type Controllers interface {
	User() UserController
	Info() InfoController
	Video() VideoController
	Trip() TripController
	Contest() ContestController

	Route(e *echo.Echo)
}

type controllers struct {
	userController    UserController
	infoController    InfoController
	videoController   VideoController
	tripController    TripController
	contestController ContestController

	authMiddleware echo.MiddlewareFunc
	uploadLimit    echo.MiddlewareFunc
}

func NewControllers(services service.Services, config dto.Config, checks HealthChecks) Controllers {
	return &controllers{
		userController:    newUserController(services.User()),
		infoController:    newInfoController(config, checks),
		videoController:   newVideoController(services.Video()),
		tripController:    newTripController(services.Trip(), services.Broker()),
		contestController: newContestController(services.Contest()),
		authMiddleware:    AuthMiddleware(services.Auth()),
		uploadLimit:       middleware.BodyLimit(fmt.Sprintf("%dK", (config.MaxUploadBytes+uploadOverhead)/1024)),
	}
}

func (c controllers) User() UserController {
	return c.userController
}

func (c controllers) Info() InfoController {
	return c.infoController
}

func (c controllers) Video() VideoController {
	return c.videoController
}

func (c controllers) Trip() TripController {
	return c.tripController
}

func (c controllers) Contest() ContestController {
	return c.contestController
}

func (c controllers) Route(e *echo.Echo) {
	e.GET("/", c.infoController.Info)
	e.GET("/health", c.infoController.Health)

	api := e.Group("/api")
	api.GET("/categories", c.infoController.Categories)

	api.GET("/videos", c.videoController.List)
	api.GET("/videos/trending", c.videoController.Trending)
	api.GET("/videos/:id", c.videoController.Get)
	api.POST("/videos/:id/views", c.videoController.RecordView)
	api.POST("/videos", c.videoController.Upload, c.authMiddleware, c.uploadLimit)

	api.POST("/videos/:id/trip", c.tripController.Toggle, c.authMiddleware)
	api.GET("/me/trips", c.tripController.Mine, c.authMiddleware)
	api.GET("/trips/stream", c.tripController.Stream)

	api.GET("/me", c.userController.Me, c.authMiddleware)
	api.GET("/me/profile", c.userController.Profile, c.authMiddleware)

	api.GET("/contest/current", c.contestController.Current)
	api.GET("/contest/previous-winner", c.contestController.PreviousWinner)
	api.GET("/contests/:year/:week", c.contestController.ByWeek)
}
