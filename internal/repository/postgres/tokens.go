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

var resetTokenColumns = []string{
	"id",
	"user_id",
	"token_hash",
	"created_at",
}

// TokenRepository implements port.TokenRepository backed by PostgreSQL.
type TokenRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewTokenRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewTokenRepository(exec pgExecutor) *TokenRepository {
	repo := &TokenRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// WithTx returns a repository instance that executes statements within the supplied transaction.
func (r *TokenRepository) WithTx(tx pgx.Tx) *TokenRepository {
	if tx == nil {
		return r
	}
	return &TokenRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// CreatePasswordReset persists the hash of a freshly issued reset token.
func (r *TokenRepository) CreatePasswordReset(ctx context.Context, token domain.PasswordResetToken) (*domain.PasswordResetToken, error) {
	createdAt := token.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	stmt, args, err := r.builder.Insert("password_reset_tokens").
		Columns("user_id", "token_hash", "created_at").
		Values(token.UserID, token.TokenHash, createdAt).
		Suffix("RETURNING " + selectList(resetTokenColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert reset token sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)
	created, err := scanResetToken(row)
	if err != nil {
		return nil, fmt.Errorf("insert reset token: %w", err)
	}
	return created, nil
}

// GetPasswordResetByHash looks up a pending reset token by its stored hash.
func (r *TokenRepository) GetPasswordResetByHash(ctx context.Context, hash string) (*domain.PasswordResetToken, error) {
	stmt, args, err := r.builder.
		Select(resetTokenColumns...).
		From("password_reset_tokens").
		Where(squirrel.Eq{"token_hash": hash}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select reset token sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)
	token, err := scanResetToken(row)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("scan reset token: %w", err)
	}
	return token, nil
}

// DeletePasswordReset consumes a token row so the token cannot be replayed.
func (r *TokenRepository) DeletePasswordReset(ctx context.Context, id int64) error {
	stmt, args, err := r.builder.Delete("password_reset_tokens").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete reset token sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanResetToken(row pgx.Row) (*domain.PasswordResetToken, error) {
	var token domain.PasswordResetToken
	err := row.Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}
