package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-api/internal/core/domain"
	"github.com/arklim/social-platform-api/internal/core/port"
	"github.com/arklim/social-platform-api/internal/infra/logger"
	"github.com/arklim/social-platform-api/internal/infra/security"
	"github.com/arklim/social-platform-api/internal/repository"
)

// PasswordResetService handles authenticated password changes and the
// token-based reset flow for users locked out of their account.
type PasswordResetService struct {
	users  port.UserRepository
	resets port.TokenRepository
	tokens *security.TokenService
	mailer port.Mailer
	events port.EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

// NewPasswordResetService constructs a password reset service.
func NewPasswordResetService(
	users port.UserRepository,
	resets port.TokenRepository,
	tokens *security.TokenService,
	mailer port.Mailer,
	events port.EventPublisher,
	log *zap.Logger,
) *PasswordResetService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PasswordResetService{
		users:  users,
		resets: resets,
		tokens: tokens,
		mailer: mailer,
		events: events,
		logger: log,
		now:    time.Now,
	}
}

// ChangePassword replaces the caller's password after checking the
// confirmation. The notification email and domain event are dispatched
// best-effort; their failure never rolls back the change.
func (s *PasswordResetService) ChangePassword(ctx context.Context, userID int64, password, confirmation string) (*domain.User, error) {
	if password == "" || password != confirmation {
		return nil, ErrPasswordMismatch
	}

	user, err := s.users.GetActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update password: %w", err)
	}

	s.notifyPasswordChanged(ctx, user, "account")
	return user, nil
}

// RequestPasswordReset issues a short-lived reset token for the named user,
// persists its hash for one-time consumption, and emails the token.
func (s *PasswordResetService) RequestPasswordReset(ctx context.Context, username string) error {
	if username == "" {
		return ErrUserNotFound
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	token, err := s.tokens.IssuePasswordResetToken(user.ID)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	record := domain.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: security.HashToken(token),
		CreatedAt: s.now().UTC(),
	}
	if _, err := s.resets.CreatePasswordReset(ctx, record); err != nil {
		return fmt.Errorf("persist reset token: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
			s.logger.Warn("send password reset mail failed",
				zap.String("email", logger.MaskEmail(user.Email)),
				zap.Error(err),
			)
		}
	}
	s.publishResetRequested(ctx, user)
	return nil
}

// ResetPassword consumes a reset token and stores the new password. The token
// must parse, must not be expired, must still have its persisted row, and must
// name the same user the row was created for.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, password, confirmation string) error {
	if password == "" || password != confirmation {
		return ErrPasswordMismatch
	}
	if token == "" {
		return ErrInvalidResetToken
	}

	userID, err := s.tokens.ParsePasswordResetToken(token)
	if err != nil {
		return ErrInvalidResetToken
	}

	record, err := s.resets.GetPasswordResetByHash(ctx, security.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}
	if record.UserID != userID {
		return ErrInvalidResetToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.resets.DeletePasswordReset(ctx, record.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("consume reset token failed", zap.Int64("token_id", record.ID), zap.Error(err))
	}

	s.notifyPasswordChanged(ctx, user, "reset")
	return nil
}

func (s *PasswordResetService) notifyPasswordChanged(ctx context.Context, user *domain.User, source string) {
	if user == nil {
		return
	}
	if s.mailer != nil {
		if err := s.mailer.SendPasswordChanged(ctx, user.Email); err != nil {
			s.logger.Warn("send password changed mail failed",
				zap.String("email", logger.MaskEmail(user.Email)),
				zap.Error(err),
			)
		}
	}
	if s.events != nil {
		event := domain.PasswordChangedEvent{
			EventID:   uuid.NewString(),
			UserID:    user.ID,
			ChangedAt: s.now().UTC(),
			Source:    source,
		}
		if err := s.events.PublishPasswordChanged(ctx, event); err != nil {
			s.logger.Warn("publish password changed event failed", zap.Int64("user_id", user.ID), zap.Error(err))
		}
	}
}

func (s *PasswordResetService) publishResetRequested(ctx context.Context, user *domain.User) {
	if s.events == nil || user == nil {
		return
	}
	event := domain.PasswordResetRequestedEvent{
		EventID:           uuid.NewString(),
		UserID:            user.ID,
		RequestedAt:       s.now().UTC(),
		MaskedDestination: logger.MaskEmail(user.Email),
	}
	if err := s.events.PublishPasswordResetRequested(ctx, event); err != nil {
		s.logger.Warn("publish password reset requested failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}
