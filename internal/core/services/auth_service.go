package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/faroukh/office_mgmt_app/internal/apperrors"
	portsrepo "github.com/faroukh/office_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/faroukh/office_mgmt_app/internal/core/ports/services"
	"github.com/faroukh/office_mgmt_app/internal/dto"
	"github.com/faroukh/office_mgmt_app/internal/middleware"
	"github.com/faroukh/office_mgmt_app/internal/platform/config"
	"github.com/faroukh/office_mgmt_app/internal/utils"
)

// authService verifies credentials and issues signed access tokens.
type authService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the credentials and issues a signed access token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Login attempt for unknown username", slog.String("username", req.Username))
			return nil, apperrors.ErrUnauthorized
		}
		logger.Error("Failed to look up user for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		logger.Warn("Login attempt for inactive user", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login attempt with wrong password", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: nowUTC().Add(s.cfg.JWTExpiryDuration),
		User:      dto.ToUserResponse(user),
	}, nil
}

// ValidateToken parses and verifies an access token and returns the subject
// user ID.
func (s *authService) ValidateToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, err.Error())
	}
	if claims.Subject == "" {
		return "", apperrors.ErrUnauthorized
	}
	return claims.Subject, nil
}
