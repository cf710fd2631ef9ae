package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dsp4life2020-woodz/trippintv/internal/client"
	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/dsp4life2020-woodz/trippintv/internal/repository"
)

type AuthService interface {
	// ValidateToken verifies an ID token and returns the matching local user, creating it on first sight.
	ValidateToken(ctx context.Context, token string) (model.User, error)
}

type authService struct {
	userRepository      repository.UserRepository
	authClient          client.AuthClient
	tokenExpireVerifier client.TokenExpireVerifier
}

func newAuthService(userRepository repository.UserRepository, authClient client.AuthClient, verifier client.TokenExpireVerifier) AuthService {
	return &authService{userRepository: userRepository, authClient: authClient, tokenExpireVerifier: verifier}
}

func (a *authService) ValidateToken(ctx context.Context, token string) (model.User, error) {
	response, err := a.authClient.VerifyIDToken(ctx, token)
	if err != nil {
		if a.tokenExpireVerifier(err) {
			return model.User{}, fmt.Errorf("%w: token expired", dto.ErrUnauthenticated)
		}
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrUnauthenticated, err)
	}

	userEmail, ok := response.Claims["email"].(string)
	if !ok {
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, "email claim not found")
	}
	displayName, _ := response.Claims["name"].(string)

	user, err := a.userRepository.GetByID(response.UID)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			return a.userRepository.Create(model.User{
				ID:          response.UID,
				Email:       userEmail,
				DisplayName: displayName,
			})
		}
		return model.User{}, err
	}

	if user.Email != userEmail || (displayName != "" && user.DisplayName != displayName) {
		user.Email = userEmail
		if displayName != "" {
			user.DisplayName = displayName
		}
		return a.userRepository.Save(user)
	}

	return user, nil
}
