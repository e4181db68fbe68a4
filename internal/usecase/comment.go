package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-api/internal/core/domain"
	"github.com/arklim/social-platform-api/internal/core/port"
	"github.com/arklim/social-platform-api/internal/repository"
)

// CommentService handles comments on tweets. Comment mutation carries no
// ownership check: any authenticated caller may like or delete any comment.
type CommentService struct {
	comments port.CommentRepository
	tweets   port.TweetRepository
	logger   *zap.Logger
}

// NewCommentService constructs a comment service.
func NewCommentService(comments port.CommentRepository, tweets port.TweetRepository, logger *zap.Logger) *CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{
		comments: comments,
		tweets:   tweets,
		logger:   logger,
	}
}

// Create attaches a comment to an existing tweet.
func (s *CommentService) Create(ctx context.Context, tweetID int64, text string) (*domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	if _, err := s.tweets.GetByID(ctx, tweetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, fmt.Errorf("lookup tweet: %w", err)
	}

	comment, err := s.comments.Create(ctx, domain.Comment{Text: text, TweetID: tweetID})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// Like applies one like to the comment and returns the updated record.
func (s *CommentService) Like(ctx context.Context, commentID int64) (*domain.Comment, error) {
	comment, err := s.comments.IncrementLikes(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("increment comment likes: %w", err)
	}
	return comment, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, commentID int64) error {
	if err := s.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
