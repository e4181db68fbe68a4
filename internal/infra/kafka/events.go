package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-api/internal/core/domain"
	"github.com/arklim/social-platform-api/internal/core/port"
	"github.com/arklim/social-platform-api/internal/infra/config"
)

const schemaVersion = "1.0"

const (
	eventUserRegistered         = "user.registered"
	eventPasswordChanged        = "user.password.changed"
	eventPasswordResetRequested = "user.password.reset_requested"
	eventTweetLiked             = "tweet.liked"
)

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType string, userID int64, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: eventType,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata: map[string]string{
			"service":     p.appCfg.Name,
			"environment": p.appCfg.Env,
		},
	}
	if userID != 0 {
		envelope.UserID = strconv.FormatInt(userID, 10)
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishUserRegistered publishes social.user.registered events.
func (p *EventPublisher) PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error {
	payload := struct {
		UserID       int64          `json:"user_id"`
		Username     string         `json:"username"`
		Email        string         `json:"email,omitempty"`
		RegisteredAt time.Time      `json:"registered_at"`
		Metadata     map[string]any `json:"metadata,omitempty"`
	}{
		UserID:       event.UserID,
		Username:     event.Username,
		Email:        event.Email,
		RegisteredAt: event.RegisteredAt,
		Metadata:     event.Metadata,
	}

	return p.publish(ctx, event.EventID, eventUserRegistered, event.UserID, event.RegisteredAt, payload)
}

// PublishPasswordChanged publishes social.user.password.changed events.
func (p *EventPublisher) PublishPasswordChanged(ctx context.Context, event domain.PasswordChangedEvent) error {
	payload := struct {
		UserID    int64          `json:"user_id"`
		ChangedAt time.Time      `json:"changed_at"`
		Source    string         `json:"source"`
		Metadata  map[string]any `json:"metadata,omitempty"`
	}{
		UserID:    event.UserID,
		ChangedAt: event.ChangedAt,
		Source:    event.Source,
		Metadata:  event.Metadata,
	}

	return p.publish(ctx, event.EventID, eventPasswordChanged, event.UserID, event.ChangedAt, payload)
}

// PublishPasswordResetRequested publishes social.user.password.reset_requested events.
func (p *EventPublisher) PublishPasswordResetRequested(ctx context.Context, event domain.PasswordResetRequestedEvent) error {
	payload := struct {
		UserID            int64          `json:"user_id"`
		RequestedAt       time.Time      `json:"requested_at"`
		MaskedDestination string         `json:"masked_destination,omitempty"`
		Metadata          map[string]any `json:"metadata,omitempty"`
	}{
		UserID:            event.UserID,
		RequestedAt:       event.RequestedAt,
		MaskedDestination: event.MaskedDestination,
		Metadata:          event.Metadata,
	}

	return p.publish(ctx, event.EventID, eventPasswordResetRequested, event.UserID, event.RequestedAt, payload)
}

// PublishTweetLiked publishes social.tweet.liked events.
func (p *EventPublisher) PublishTweetLiked(ctx context.Context, event domain.TweetLikedEvent) error {
	payload := struct {
		TweetID     int64     `json:"tweet_id"`
		LikedByID   int64     `json:"liked_by_id"`
		LikeCounter int64     `json:"like_counter"`
		LikedAt     time.Time `json:"liked_at"`
	}{
		TweetID:     event.TweetID,
		LikedByID:   event.LikedByID,
		LikeCounter: event.LikeCounter,
		LikedAt:     event.LikedAt,
	}

	return p.publish(ctx, event.EventID, eventTweetLiked, event.LikedByID, event.LikedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
