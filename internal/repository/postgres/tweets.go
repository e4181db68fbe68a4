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

var tweetColumns = []string{
	"id",
	"text",
	"like_counter",
	"user_id",
	"created_at",
	"updated_at",
}

// tweetWithAuthorColumns is the joined select list used by every eager-loading
// read: the tweet row followed by its author's user row.
var tweetWithAuthorColumns = []string{
	"t.id",
	"t.text",
	"t.like_counter",
	"t.user_id",
	"t.created_at",
	"t.updated_at",
	"u.id",
	"u.username",
	"u.email",
	"u.name",
	"u.password",
	"u.role",
	"u.active",
	"u.last_login_date",
	"u.created_at",
	"u.updated_at",
}

// TweetRepository implements port.TweetRepository backed by PostgreSQL.
type TweetRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewTweetRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewTweetRepository(exec pgExecutor) *TweetRepository {
	repo := &TweetRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// WithTx returns a repository instance that executes statements within the supplied transaction.
func (r *TweetRepository) WithTx(tx pgx.Tx) *TweetRepository {
	if tx == nil {
		return r
	}
	return &TweetRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create persists a new tweet and returns the stored record.
func (r *TweetRepository) Create(ctx context.Context, tweet domain.Tweet) (*domain.Tweet, error) {
	now := time.Now().UTC()
	stmt, args, err := r.builder.Insert("tweets").
		Columns("text", "like_counter", "user_id", "created_at", "updated_at").
		Values(tweet.Text, 0, tweet.UserID, now, now).
		Suffix("RETURNING " + selectList(tweetColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert tweet sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)
	created, err := scanTweet(row)
	if err != nil {
		return nil, fmt.Errorf("insert tweet: %w", err)
	}
	return created, nil
}

// GetByID fetches a tweet with its author and comments eager-loaded.
func (r *TweetRepository) GetByID(ctx context.Context, id int64) (*domain.Tweet, error) {
	stmt, args, err := r.builder.
		Select(tweetWithAuthorColumns...).
		From("tweets AS t").
		Join("users AS u ON u.id = t.user_id").
		Where(squirrel.Eq{"t.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select tweet sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)
	tweet, err := scanTweetWithAuthor(row)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("scan tweet: %w", err)
	}

	grouped, err := r.listCommentsByTweetIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	tweet.Comments = grouped[id]
	if tweet.Comments == nil {
		tweet.Comments = make([]domain.Comment, 0)
	}
	return tweet, nil
}

// listCommentsByTweetIDs loads the comments for a page of tweets in one query
// and groups them by parent tweet.
func (r *TweetRepository) listCommentsByTweetIDs(ctx context.Context, tweetIDs []int64) (map[int64][]domain.Comment, error) {
	grouped := make(map[int64][]domain.Comment)
	if len(tweetIDs) == 0 {
		return grouped, nil
	}

	stmt, args, err := r.builder.
		Select(commentColumns...).
		From("comments").
		Where(squirrel.Eq{"tweet_id": tweetIDs}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list comments sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		grouped[comment.TweetID] = append(grouped[comment.TweetID], *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return grouped, nil
}

// Delete removes a tweet. Comments attached to it go with it via the
// ON DELETE CASCADE foreign key.
func (r *TweetRepository) Delete(ctx context.Context, id int64) error {
	stmt, args, err := r.builder.Delete("tweets").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete tweet sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// IncrementLikes bumps the like counter by one atomically on the row and
// returns the updated tweet. Concurrent increments never lose updates.
func (r *TweetRepository) IncrementLikes(ctx context.Context, id int64) (*domain.Tweet, error) {
	stmt, args, err := r.builder.Update("tweets").
		Set("like_counter", squirrel.Expr("like_counter + 1")).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + selectList(tweetColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build increment tweet likes sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)
	tweet, err := scanTweet(row)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("increment tweet likes: %w", err)
	}
	return tweet, nil
}

// ListByUserID returns the user's tweets, newest first, within the paging
// window. Each tweet carries its author and comments like GetByID does.
func (r *TweetRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Tweet, error) {
	query := r.builder.
		Select(tweetWithAuthorColumns...).
		From("tweets AS t").
		Join("users AS u ON u.id = t.user_id").
		Where(squirrel.Eq{"t.user_id": userID}).
		OrderBy("t.created_at DESC")
	return r.listTweets(ctx, query, limit, offset)
}

// CountByUserID returns the total number of tweets owned by the user.
func (r *TweetRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	stmt, args, err := r.builder.
		Select("COUNT(*)").
		From("tweets").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count tweets sql: %w", err)
	}

	var total int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count tweets: %w", err)
	}
	return total, nil
}

// ListByUsername returns tweets authored by the named active user, newest
// first, with author and comments attached.
func (r *TweetRepository) ListByUsername(ctx context.Context, username string, limit, offset int) ([]domain.Tweet, error) {
	query := r.builder.
		Select(tweetWithAuthorColumns...).
		From("tweets AS t").
		Join("users AS u ON u.id = t.user_id").
		Where(squirrel.Eq{"u.username": username, "u.active": true}).
		OrderBy("t.created_at DESC")
	return r.listTweets(ctx, query, limit, offset)
}

// CountByUsername returns the total number of tweets authored by the named active user.
func (r *TweetRepository) CountByUsername(ctx context.Context, username string) (int64, error) {
	stmt, args, err := r.builder.
		Select("COUNT(*)").
		From("tweets AS t").
		Join("users AS u ON u.id = t.user_id").
		Where(squirrel.Eq{"u.username": username, "u.active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count tweets sql: %w", err)
	}

	var total int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count tweets: %w", err)
	}
	return total, nil
}

func (r *TweetRepository) listTweets(ctx context.Context, query squirrel.SelectBuilder, limit, offset int) ([]domain.Tweet, error) {
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	if offset > 0 {
		query = query.Offset(uint64(offset))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tweets sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query tweets: %w", err)
	}

	tweets := make([]domain.Tweet, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		tweet, err := scanTweetWithAuthor(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan tweet: %w", err)
		}
		tweets = append(tweets, *tweet)
		ids = append(ids, tweet.ID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate tweets: %w", err)
	}
	rows.Close()

	grouped, err := r.listCommentsByTweetIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range tweets {
		if comments := grouped[tweets[i].ID]; comments != nil {
			tweets[i].Comments = comments
		} else {
			tweets[i].Comments = make([]domain.Comment, 0)
		}
	}
	return tweets, nil
}

func scanTweet(row pgx.Row) (*domain.Tweet, error) {
	var tweet domain.Tweet
	err := row.Scan(
		&tweet.ID,
		&tweet.Text,
		&tweet.LikeCounter,
		&tweet.UserID,
		&tweet.CreatedAt,
		&tweet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &tweet, nil
}

func scanTweetWithAuthor(row pgx.Row) (*domain.Tweet, error) {
	var (
		tweet     domain.Tweet
		author    domain.User
		role      string
		lastLogin *time.Time
	)
	err := row.Scan(
		&tweet.ID,
		&tweet.Text,
		&tweet.LikeCounter,
		&tweet.UserID,
		&tweet.CreatedAt,
		&tweet.UpdatedAt,
		&author.ID,
		&author.Username,
		&author.Email,
		&author.Name,
		&author.PasswordHash,
		&role,
		&author.Active,
		&lastLogin,
		&author.CreatedAt,
		&author.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	author.Role = domain.Role(role)
	author.LastLoginDate = lastLogin
	tweet.Author = &author
	return &tweet, nil
}
