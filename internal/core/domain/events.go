package domain

import "time"

// UserRegisteredEvent represents the payload for social.user.registered messages.
type UserRegisteredEvent struct {
	EventID      string
	UserID       int64
	Username     string
	Email        string
	RegisteredAt time.Time
	Metadata     map[string]any
}

// PasswordChangedEvent represents the payload for social.user.password.changed messages.
type PasswordChangedEvent struct {
	EventID   string
	UserID    int64
	ChangedAt time.Time
	Source    string
	Metadata  map[string]any
}

// PasswordResetRequestedEvent represents the payload for
// social.user.password.reset_requested messages.
type PasswordResetRequestedEvent struct {
	EventID           string
	UserID            int64
	RequestedAt       time.Time
	MaskedDestination string
	Metadata          map[string]any
}

// TweetLikedEvent represents the payload for social.tweet.liked messages.
type TweetLikedEvent struct {
	EventID     string
	TweetID     int64
	LikedByID   int64
	LikeCounter int64
	LikedAt     time.Time
}
