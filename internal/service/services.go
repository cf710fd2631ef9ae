package service

import (
	"time"

	authV4 "firebase.google.com/go/v4/auth"
	"github.com/dsp4life2020-woodz/trippintv/internal/client"
	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/repository"
)

// Clock returns the current time in the contest location.
type Clock func() time.Time

type Services interface {
	User() UserService
	Auth() AuthService
	Video() VideoService
	Trip() TripService
	Contest() ContestService
	Broker() TripBroker
}

type services struct {
	userService    UserService
	authService    AuthService
	videoService   VideoService
	tripService    TripService
	contestService ContestService
	broker         TripBroker
}

func NewServices(repositories repository.Repositories, config dto.Config, clients client.Clients) Services {
	loc := config.Location()
	clock := func() time.Time { return time.Now().In(loc) }
	return newServices(repositories, config, clients, authV4.IsIDTokenExpired, newTripBroker(clients.RabbitMQClient()), clock)
}

func newServices(
	repositories repository.Repositories,
	config dto.Config,
	clients client.Clients,
	verifier client.TokenExpireVerifier,
	broker TripBroker,
	clock Clock,
) Services {
	leaderboards := newLeaderboardCache(clients.CacheClient())
	return &services{
		userService:    newUserService(repositories),
		authService:    newAuthService(repositories.User(), clients.AuthClient(), verifier),
		videoService:   newVideoService(repositories, clients.StorageClient(), config),
		tripService:    newTripService(repositories, broker, leaderboards, clock),
		contestService: newContestService(repositories, leaderboards, clock),
		broker:         broker,
	}
}

func (s services) User() UserService {
	return s.userService
}

func (s services) Auth() AuthService {
	return s.authService
}

func (s services) Video() VideoService {
	return s.videoService
}

func (s services) Trip() TripService {
	return s.tripService
}

func (s services) Contest() ContestService {
	return s.contestService
}

func (s services) Broker() TripBroker {
	return s.broker
}
