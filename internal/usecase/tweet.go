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
	"github.com/arklim/social-platform-api/internal/repository"
)

// TweetService handles the tweet lifecycle and feeds.
type TweetService struct {
	tweets port.TweetRepository
	events port.EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

// NewTweetService constructs a tweet service.
func NewTweetService(tweets port.TweetRepository, events port.EventPublisher, logger *zap.Logger) *TweetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TweetService{
		tweets: tweets,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// Create persists a new tweet owned by the caller.
func (s *TweetService) Create(ctx context.Context, userID int64, text string) (*domain.Tweet, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}
	tweet, err := s.tweets.Create(ctx, domain.Tweet{Text: text, UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("create tweet: %w", err)
	}
	return tweet, nil
}

// Get fetches a tweet with its author and comments.
func (s *TweetService) Get(ctx context.Context, id int64) (*domain.Tweet, error) {
	tweet, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, fmt.Errorf("lookup tweet: %w", err)
	}
	return tweet, nil
}

// Delete removes a tweet. Only the owner may delete; the ownership check runs
// after the tweet is loaded since the path id names the tweet, not a user.
func (s *TweetService) Delete(ctx context.Context, callerID, tweetID int64) error {
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTweetNotFound
		}
		return fmt.Errorf("lookup tweet: %w", err)
	}
	if tweet.UserID != callerID {
		return ErrNotOwner
	}
	if err := s.tweets.Delete(ctx, tweetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTweetNotFound
		}
		return fmt.Errorf("delete tweet: %w", err)
	}
	return nil
}

// Like applies one like to the tweet and returns the updated record. Likes are
// not idempotent: every call adds one.
func (s *TweetService) Like(ctx context.Context, callerID, tweetID int64) (*domain.Tweet, error) {
	tweet, err := s.tweets.IncrementLikes(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, fmt.Errorf("increment tweet likes: %w", err)
	}

	s.publishLiked(ctx, tweet, callerID)
	return tweet, nil
}

// Feed returns a page of the caller's own tweets, newest first.
func (s *TweetService) Feed(ctx context.Context, userID int64, paging Pagination) ([]domain.Tweet, PageInfo, error) {
	tweets, err := s.tweets.ListByUserID(ctx, userID, paging.Limit, paging.Offset())
	if err != nil {
		return nil, PageInfo{}, fmt.Errorf("list tweets: %w", err)
	}
	total, err := s.tweets.CountByUserID(ctx, userID)
	if err != nil {
		return nil, PageInfo{}, fmt.Errorf("count tweets: %w", err)
	}
	return tweets, paging.Info(total), nil
}

// FeedByUsername returns a page of tweets authored by the named active user.
// An unknown or deactivated username yields an empty page, not an error.
func (s *TweetService) FeedByUsername(ctx context.Context, username string, paging Pagination) ([]domain.Tweet, PageInfo, error) {
	tweets, err := s.tweets.ListByUsername(ctx, username, paging.Limit, paging.Offset())
	if err != nil {
		return nil, PageInfo{}, fmt.Errorf("list tweets: %w", err)
	}
	total, err := s.tweets.CountByUsername(ctx, username)
	if err != nil {
		return nil, PageInfo{}, fmt.Errorf("count tweets: %w", err)
	}
	return tweets, paging.Info(total), nil
}

func (s *TweetService) publishLiked(ctx context.Context, tweet *domain.Tweet, likedBy int64) {
	if s.events == nil || tweet == nil {
		return
	}
	event := domain.TweetLikedEvent{
		EventID:     uuid.NewString(),
		TweetID:     tweet.ID,
		LikedByID:   likedBy,
		LikeCounter: tweet.LikeCounter,
		LikedAt:     s.now().UTC(),
	}
	if err := s.events.PublishTweetLiked(ctx, event); err != nil {
		s.logger.Warn("publish tweet liked event failed", zap.Int64("tweet_id", tweet.ID), zap.Error(err))
	}
}
