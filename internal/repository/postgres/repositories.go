package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every PostgreSQL-backed repository over a shared pool.
type Repositories struct {
	Users    *UserRepository
	Tweets   *TweetRepository
	Comments *CommentRepository
	Tokens   *TokenRepository
}

// NewRepositories wires all repositories over a single connection pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(pool),
		Tweets:   NewTweetRepository(pool),
		Comments: NewCommentRepository(pool),
		Tokens:   NewTokenRepository(pool),
	}
}

func selectList(columns []string) string {
	return strings.Join(columns, ", ")
}
