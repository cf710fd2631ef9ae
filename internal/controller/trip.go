package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const streamKeepAlive = 20 * time.Second

type TripController interface {
	Toggle(c echo.Context) error
	Mine(c echo.Context) error
	Stream(c echo.Context) error
}

type tripController struct {
	tripService service.TripService
	broker      service.TripBroker
}

func newTripController(tripService service.TripService, broker service.TripBroker) TripController {
	return &tripController{tripService: tripService, broker: broker}
}

func (t *tripController) Toggle(c echo.Context) error {
	state, err := t.tripService.ToggleTrip(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, state)
}

func (t *tripController) Mine(c echo.Context) error {
	ids, err := t.tripService.ListTrippedVideoIDs(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, dto.TrippedVideosResponse{VideoIDs: ids})
}

// Stream relays trip events as server-sent events until the client goes away.
func (t *tripController) Stream(c echo.Context) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	id := uuid.NewString()
	subscriber := t.broker.Subscribe(id)
	defer t.broker.Unsubscribe(id)
	logrus.Debugf("trip stream %s opened", id)

	fmt.Fprint(res, ": connected\n\n")
	res.Flush()

	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-c.Request().Context().Done():
			logrus.Debugf("trip stream %s closed", id)
			return nil
		case event, ok := <-subscriber.Events:
			if !ok {
				return nil
			}
			data, err := json.Marshal(event)
			if err != nil {
				logrus.Errorf("Error marshaling trip event: %v", err)
				continue
			}
			fmt.Fprintf(res, "event: trip\ndata: %s\n\n", data)
			res.Flush()
		case <-keepAlive.C:
			fmt.Fprint(res, ": keep-alive\n\n")
			res.Flush()
		}
	}
}
