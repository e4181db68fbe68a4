package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-api/internal/core/domain"
	"github.com/arklim/social-platform-api/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for development environments.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType string, userID int64, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("stub event published",
		zap.String("event_type", eventType),
		zap.Int64("user_id", userID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishUserRegistered logs social.user.registered events.
func (p *StubPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	payload := map[string]any{
		"user_id":       event.UserID,
		"username":      event.Username,
		"email":         event.Email,
		"registered_at": event.RegisteredAt,
		"metadata":      event.Metadata,
	}
	p.logEvent(eventUserRegistered, event.UserID, event.RegisteredAt, payload)
	return nil
}

// PublishPasswordChanged logs social.user.password.changed events.
func (p *StubPublisher) PublishPasswordChanged(_ context.Context, event domain.PasswordChangedEvent) error {
	payload := map[string]any{
		"user_id":    event.UserID,
		"changed_at": event.ChangedAt,
		"source":     event.Source,
		"metadata":   event.Metadata,
	}
	p.logEvent(eventPasswordChanged, event.UserID, event.ChangedAt, payload)
	return nil
}

// PublishPasswordResetRequested logs social.user.password.reset_requested events.
func (p *StubPublisher) PublishPasswordResetRequested(_ context.Context, event domain.PasswordResetRequestedEvent) error {
	payload := map[string]any{
		"user_id":            event.UserID,
		"requested_at":       event.RequestedAt,
		"masked_destination": event.MaskedDestination,
		"metadata":           event.Metadata,
	}
	p.logEvent(eventPasswordResetRequested, event.UserID, event.RequestedAt, payload)
	return nil
}

// PublishTweetLiked logs social.tweet.liked events.
func (p *StubPublisher) PublishTweetLiked(_ context.Context, event domain.TweetLikedEvent) error {
	payload := map[string]any{
		"tweet_id":     event.TweetID,
		"liked_by_id":  event.LikedByID,
		"like_counter": event.LikeCounter,
		"liked_at":     event.LikedAt,
	}
	p.logEvent(eventTweetLiked, event.LikedByID, event.LikedAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
