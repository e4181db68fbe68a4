package port

import (
	"context"

	"github.com/arklim/social-platform-api/internal/core/domain"
)

// TweetRepository persists tweets and their like counters.
type TweetRepository interface {
	Create(ctx context.Context, tweet domain.Tweet) (*domain.Tweet, error)
	// GetByID eager-loads the author and comments.
	GetByID(ctx context.Context, id int64) (*domain.Tweet, error)
	Delete(ctx context.Context, id int64) error
	// IncrementLikes applies an atomic +1 to the like counter and returns the
	// updated tweet. Concurrent calls serialize on the row, never lose updates.
	IncrementLikes(ctx context.Context, id int64) (*domain.Tweet, error)
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Tweet, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	ListByUsername(ctx context.Context, username string, limit, offset int) ([]domain.Tweet, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
}

// CommentRepository persists comments attached to tweets.
type CommentRepository interface {
	Create(ctx context.Context, comment domain.Comment) (*domain.Comment, error)
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
	IncrementLikes(ctx context.Context, id int64) (*domain.Comment, error)
}
