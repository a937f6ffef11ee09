package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/services"
	"github.com/fintrack-labs/expense_tracker_app/internal/platform/config"
	"github.com/fintrack-labs/expense_tracker_app/internal/utils"
)

// tokenService implements the TokenSvcFacade for handling JWT and refresh
// tokens.
type tokenService struct {
	cfg      *config.Config
	userRepo portsrepo.UserReader
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserReader) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new opaque refresh token for the given user.
// The caller is responsible for persisting its hash.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	return rawRefreshToken, expiryTime, nil
}

// ValidateAndParseRefreshToken validates a refresh token string against a
// user's stored hash and expiry.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	storedHash, expiry, err := s.userRepo.FindUserRefreshTokenDetails(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if time.Now().After(expiry) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(refreshTokenString, storedHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}
