package port

import (
	"context"
	"time"

	"github.com/arklim/social-platform-api/internal/core/domain"
)

// UserFilter narrows List/Count queries.
type UserFilter struct {
	Limit  int
	Offset int
}

// UserRepository persists user records.
//
// The Active lookups implement the soft-delete rule: a deactivated user is
// indistinguishable from a missing one on every normal read path.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	GetActiveByID(ctx context.Context, id int64) (*domain.User, error)
	GetActiveByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetByUsername ignores the active flag; used by the password reset flow.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, username, email, name string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	Deactivate(ctx context.Context, id int64) error
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
}
