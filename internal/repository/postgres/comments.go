package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arklim/social-platform-api/internal/core/domain"
	"github.com/arklim/social-platform-api/internal/repository"
)

var commentColumns = []string{
	"id",
	"text",
	"like_counter",
	"tweet_id",
	"created_at",
	"updated_at",
}

// CommentRepository implements port.CommentRepository backed by PostgreSQL.
type CommentRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewCommentRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewCommentRepository(exec pgExecutor) *CommentRepository {
	repo := &CommentRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// WithTx returns a repository instance that executes statements within the supplied transaction.
func (r *CommentRepository) WithTx(tx pgx.Tx) *CommentRepository {
	if tx == nil {
		return r
	}
	return &CommentRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create persists a new comment attached to a tweet.
func (r *CommentRepository) Create(ctx context.Context, comment domain.Comment) (*domain.Comment, error) {
	now := time.Now().UTC()
	stmt, args, err := r.builder.Insert("comments").
		Columns("text", "like_counter", "tweet_id", "created_at", "updated_at").
		Values(comment.Text, 0, comment.TweetID, now, now).
		Suffix("RETURNING " + selectList(commentColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert comment sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)
	created, err := scanComment(row)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return created, nil
}

// GetByID fetches a comment by identifier.
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	stmt, args, err := r.builder.
		Select(commentColumns...).
		From("comments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select comment sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)
	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("scan comment: %w", err)
	}
	return comment, nil
}

// Delete removes a comment.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	stmt, args, err := r.builder.Delete("comments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete comment sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// IncrementLikes bumps the like counter by one atomically and returns the
// updated comment.
func (r *CommentRepository) IncrementLikes(ctx context.Context, id int64) (*domain.Comment, error) {
	stmt, args, err := r.builder.Update("comments").
		Set("like_counter", squirrel.Expr("like_counter + 1")).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + selectList(commentColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build increment comment likes sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)
	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("increment comment likes: %w", err)
	}
	return comment, nil
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var comment domain.Comment
	err := row.Scan(
		&comment.ID,
		&comment.Text,
		&comment.LikeCounter,
		&comment.TweetID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}
