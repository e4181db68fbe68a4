package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-api/internal/core/domain"
	"github.com/arklim/social-platform-api/internal/core/port"
	"github.com/arklim/social-platform-api/internal/infra/security"
	"github.com/arklim/social-platform-api/internal/repository"
)

// AuthService coordinates login and bearer-token verification.
type AuthService struct {
	users  port.UserRepository
	tokens *security.TokenService
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users port.UserRepository, tokens *security.TokenService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// Login verifies credentials against the active user record and issues an
// access token. A missing user and a wrong password produce the same error so
// usernames cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, ErrUserNotFound
	}

	user, err := s.users.GetActiveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", nil, ErrUserNotFound
	}

	loginAt := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		s.logger.Warn("update last login failed", zap.Int64("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLoginDate = &loginAt
	}

	token, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue access token: %w", err)
	}
	return token, user, nil
}

// Authenticate verifies a bearer token and returns its claims.
func (s *AuthService) Authenticate(token string) (*security.AccessClaims, error) {
	claims, err := s.tokens.ParseAccessToken(token)
	if err != nil {
		switch {
		case errors.Is(err, security.ErrTokenExpired):
			return nil, ErrExpiredAccessToken
		default:
			return nil, ErrInvalidAccessToken
		}
	}
	return claims, nil
}
