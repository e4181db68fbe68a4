package usecase

import (
	"context"
	"time"

	"github.com/arklim/social-platform-api/internal/core/domain"
	"github.com/arklim/social-platform-api/internal/core/port"
	"github.com/arklim/social-platform-api/internal/repository"
)

// fakeUserRepo is an in-memory port.UserRepository.
type fakeUserRepo struct {
	nextID int64
	users  map[int64]*domain.User

	createErr error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) seed(user domain.User) *domain.User {
	f.nextID++
	user.ID = f.nextID
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := user
	f.users[user.ID] = &stored
	copy := stored
	return &copy
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) (*domain.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.seed(user), nil
}

func (f *fakeUserRepo) GetActiveByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok || !user.Active {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (f *fakeUserRepo) GetActiveByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username && user.Active {
			copy := *user
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copy := *user
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id int64, username, email, name string) (*domain.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	user, ok := f.users[id]
	if !ok || !user.Active {
		return nil, repository.ErrNotFound
	}
	user.Username = username
	user.Email = email
	user.Name = name
	user.UpdatedAt = time.Now().UTC()
	copy := *user
	return &copy, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.LastLoginDate = &at
	return nil
}

func (f *fakeUserRepo) Deactivate(_ context.Context, id int64) error {
	user, ok := f.users[id]
	if !ok || !user.Active {
		return repository.ErrNotFound
	}
	user.Active = false
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, filter port.UserFilter) ([]domain.User, error) {
	all := make([]domain.User, 0)
	for id := int64(1); id <= f.nextID; id++ {
		if user, ok := f.users[id]; ok {
			all = append(all, *user)
		}
	}
	start := filter.Offset
	if start > len(all) {
		start = len(all)
	}
	end := len(all)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return all[start:end], nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

// fakeTweetRepo is an in-memory port.TweetRepository.
type fakeTweetRepo struct {
	nextID int64
	tweets map[int64]*domain.Tweet
	users  *fakeUserRepo

	comments *fakeCommentRepo
}

func newFakeTweetRepo(users *fakeUserRepo) *fakeTweetRepo {
	return &fakeTweetRepo{tweets: make(map[int64]*domain.Tweet), users: users}
}

func (f *fakeTweetRepo) Create(_ context.Context, tweet domain.Tweet) (*domain.Tweet, error) {
	f.nextID++
	tweet.ID = f.nextID
	now := time.Now().UTC()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now
	stored := tweet
	f.tweets[tweet.ID] = &stored
	copy := stored
	return &copy, nil
}

func (f *fakeTweetRepo) GetByID(ctx context.Context, id int64) (*domain.Tweet, error) {
	tweet, ok := f.tweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *tweet
	f.attach(ctx, &copy)
	return &copy, nil
}

// attach mirrors the store's eager loading: every read that returns tweets
// carries the author and the comments.
func (f *fakeTweetRepo) attach(ctx context.Context, tweet *domain.Tweet) {
	if f.users != nil {
		if author, err := f.users.GetByID(ctx, tweet.UserID); err == nil {
			tweet.Author = author
		}
	}
	attached := make([]domain.Comment, 0)
	if f.comments != nil {
		for cid := int64(1); cid <= f.comments.nextID; cid++ {
			if comment, ok := f.comments.comments[cid]; ok && comment.TweetID == tweet.ID {
				attached = append(attached, *comment)
			}
		}
	}
	tweet.Comments = attached
}

func (f *fakeTweetRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.tweets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.tweets, id)
	if f.comments != nil {
		for cid, comment := range f.comments.comments {
			if comment.TweetID == id {
				delete(f.comments.comments, cid)
			}
		}
	}
	return nil
}

func (f *fakeTweetRepo) IncrementLikes(_ context.Context, id int64) (*domain.Tweet, error) {
	tweet, ok := f.tweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	tweet.LikeCounter++
	copy := *tweet
	return &copy, nil
}

func (f *fakeTweetRepo) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Tweet, error) {
	owned := make([]domain.Tweet, 0)
	for id := f.nextID; id >= 1; id-- {
		if tweet, ok := f.tweets[id]; ok && tweet.UserID == userID {
			copy := *tweet
			f.attach(ctx, &copy)
			owned = append(owned, copy)
		}
	}
	return window(owned, limit, offset), nil
}

func (f *fakeTweetRepo) CountByUserID(_ context.Context, userID int64) (int64, error) {
	var total int64
	for _, tweet := range f.tweets {
		if tweet.UserID == userID {
			total++
		}
	}
	return total, nil
}

func (f *fakeTweetRepo) ListByUsername(ctx context.Context, username string, limit, offset int) ([]domain.Tweet, error) {
	if f.users == nil {
		return nil, nil
	}
	user, err := f.users.GetActiveByUsername(ctx, username)
	if err != nil {
		return []domain.Tweet{}, nil
	}
	return f.ListByUserID(ctx, user.ID, limit, offset)
}

func (f *fakeTweetRepo) CountByUsername(ctx context.Context, username string) (int64, error) {
	if f.users == nil {
		return 0, nil
	}
	user, err := f.users.GetActiveByUsername(ctx, username)
	if err != nil {
		return 0, nil
	}
	return f.CountByUserID(ctx, user.ID)
}

func window(tweets []domain.Tweet, limit, offset int) []domain.Tweet {
	if offset > len(tweets) {
		offset = len(tweets)
	}
	end := len(tweets)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return tweets[offset:end]
}

// fakeCommentRepo is an in-memory port.CommentRepository.
type fakeCommentRepo struct {
	nextID   int64
	comments map[int64]*domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int64]*domain.Comment)}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment domain.Comment) (*domain.Comment, error) {
	f.nextID++
	comment.ID = f.nextID
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	stored := comment
	f.comments[comment.ID] = &stored
	copy := stored
	return &copy, nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *comment
	return &copy, nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) IncrementLikes(_ context.Context, id int64) (*domain.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	comment.LikeCounter++
	copy := *comment
	return &copy, nil
}

// fakeTokenRepo is an in-memory port.TokenRepository.
type fakeTokenRepo struct {
	nextID int64
	tokens map[int64]*domain.PasswordResetToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[int64]*domain.PasswordResetToken)}
}

func (f *fakeTokenRepo) CreatePasswordReset(_ context.Context, token domain.PasswordResetToken) (*domain.PasswordResetToken, error) {
	f.nextID++
	token.ID = f.nextID
	stored := token
	f.tokens[token.ID] = &stored
	copy := stored
	return &copy, nil
}

func (f *fakeTokenRepo) GetPasswordResetByHash(_ context.Context, hash string) (*domain.PasswordResetToken, error) {
	for _, token := range f.tokens {
		if token.TokenHash == hash {
			copy := *token
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTokenRepo) DeletePasswordReset(_ context.Context, id int64) error {
	if _, ok := f.tokens[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.tokens, id)
	return nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	registered     []domain.UserRegisteredEvent
	passwordChange []domain.PasswordChangedEvent
	resetRequested []domain.PasswordResetRequestedEvent
	tweetLiked     []domain.TweetLikedEvent

	err error
}

func (p *recordingPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	p.registered = append(p.registered, event)
	return p.err
}

func (p *recordingPublisher) PublishPasswordChanged(_ context.Context, event domain.PasswordChangedEvent) error {
	p.passwordChange = append(p.passwordChange, event)
	return p.err
}

func (p *recordingPublisher) PublishPasswordResetRequested(_ context.Context, event domain.PasswordResetRequestedEvent) error {
	p.resetRequested = append(p.resetRequested, event)
	return p.err
}

func (p *recordingPublisher) PublishTweetLiked(_ context.Context, event domain.TweetLikedEvent) error {
	p.tweetLiked = append(p.tweetLiked, event)
	return p.err
}

// recordingMailer captures outbound mail.
type recordingMailer struct {
	changedTo   []string
	resetTo     []string
	resetTokens []string

	err error
}

func (m *recordingMailer) SendPasswordChanged(_ context.Context, to string) error {
	m.changedTo = append(m.changedTo, to)
	return m.err
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, to, token string) error {
	m.resetTo = append(m.resetTo, to)
	m.resetTokens = append(m.resetTokens, token)
	return m.err
}
