package port

import (
	"context"

	"github.com/arklim/social-platform-api/internal/core/domain"
)

// EventPublisher fans out domain events to downstream consumers. Publishing is
// best-effort: callers log failures and never block the primary response on them.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error
	PublishPasswordChanged(ctx context.Context, event domain.PasswordChangedEvent) error
	PublishPasswordResetRequested(ctx context.Context, event domain.PasswordResetRequestedEvent) error
	PublishTweetLiked(ctx context.Context, event domain.TweetLikedEvent) error
}
