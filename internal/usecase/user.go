package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-api/internal/core/domain"
	"github.com/arklim/social-platform-api/internal/core/port"
	"github.com/arklim/social-platform-api/internal/infra/security"
	"github.com/arklim/social-platform-api/internal/repository"
)

// UserService handles account registration and profile lifecycle.
type UserService struct {
	users  port.UserRepository
	events port.EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

// NewUserService constructs a user service.
func NewUserService(users port.UserRepository, events port.EventPublisher, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:  users,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Username             string
	Email                string
	Name                 string
	Password             string
	PasswordConfirmation string
}

// Register validates the payload, hashes the password, and persists the new
// account with the default role.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	name := strings.TrimSpace(input.Name)
	if username == "" || email == "" || name == "" || input.Password == "" {
		return nil, ErrRegistrationPayload
	}
	if input.Password != input.PasswordConfirmation {
		return nil, ErrPasswordMismatch
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		Username:     username,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		Active:       true,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publishRegistered(ctx, created)
	return created, nil
}

// GetByID fetches an active user for public display.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// UpdateProfileInput carries the mutable profile fields. All three must be
// present: profile updates are whole-profile writes, not per-field patches.
type UpdateProfileInput struct {
	Username *string
	Email    *string
	Name     *string
}

// UpdateProfile overwrites the stored profile with the supplied fields. A
// payload missing any of the three fields is rejected.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (*domain.User, error) {
	if input.Username == nil || input.Email == nil || input.Name == nil {
		return nil, ErrProfilePayload
	}
	username := strings.TrimSpace(*input.Username)
	email := strings.TrimSpace(*input.Email)
	name := strings.TrimSpace(*input.Name)
	if username == "" || email == "" || name == "" {
		return nil, ErrProfilePayload
	}

	updated, err := s.users.UpdateProfile(ctx, id, username, email, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

// Deactivate soft-deletes the account. The row survives so existing tweets keep
// resolving, but the user disappears from every read path.
func (s *UserService) Deactivate(ctx context.Context, id int64) error {
	if err := s.users.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("deactivate user: %w", err)
	}
	return nil
}

// ListAll returns a page of users, deactivated accounts included, with
// envelope metadata. Admin-only at the transport layer.
func (s *UserService) ListAll(ctx context.Context, paging Pagination) ([]domain.User, PageInfo, error) {
	users, err := s.users.List(ctx, port.UserFilter{Limit: paging.Limit, Offset: paging.Offset()})
	if err != nil {
		return nil, PageInfo{}, fmt.Errorf("list users: %w", err)
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, PageInfo{}, fmt.Errorf("count users: %w", err)
	}
	return users, paging.Info(total), nil
}

func (s *UserService) publishRegistered(ctx context.Context, user *domain.User) {
	if s.events == nil || user == nil {
		return
	}
	event := domain.UserRegisteredEvent{
		EventID:      uuid.NewString(),
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		RegisteredAt: s.now().UTC(),
	}
	if err := s.events.PublishUserRegistered(ctx, event); err != nil {
		s.logger.Warn("publish user registered event failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}
