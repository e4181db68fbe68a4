package port

import (
	"context"

	"github.com/arklim/social-platform-api/internal/core/domain"
)

// TokenRepository persists password reset tokens (stored as hashes).
type TokenRepository interface {
	CreatePasswordReset(ctx context.Context, token domain.PasswordResetToken) (*domain.PasswordResetToken, error)
	GetPasswordResetByHash(ctx context.Context, hash string) (*domain.PasswordResetToken, error)
	// DeletePasswordReset consumes a token row; a consumed token cannot be reused.
	DeletePasswordReset(ctx context.Context, id int64) error
}
