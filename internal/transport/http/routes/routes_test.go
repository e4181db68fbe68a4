package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-api/internal/core/domain"
	"github.com/arklim/social-platform-api/internal/core/port"
	"github.com/arklim/social-platform-api/internal/infra/config"
	"github.com/arklim/social-platform-api/internal/infra/security"
	"github.com/arklim/social-platform-api/internal/repository"
	httproutes "github.com/arklim/social-platform-api/internal/transport/http/routes"
	"github.com/arklim/social-platform-api/internal/usecase"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()
	cfg := &config.AppConfig{App: config.AppSettings{Env: "test"}}

	r := httproutes.Register(httproutes.Dependencies{
		Config: cfg,
		Logger: logger,
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

// memStore is an in-memory backing store for end-to-end route tests.
type memStore struct {
	userSeq    int64
	users      map[int64]*domain.User
	tweetSeq   int64
	tweets     map[int64]*domain.Tweet
	commentSeq int64
	comments   map[int64]*domain.Comment
	tokenSeq   int64
	tokens     map[int64]*domain.PasswordResetToken
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[int64]*domain.User),
		tweets:   make(map[int64]*domain.Tweet),
		comments: make(map[int64]*domain.Comment),
		tokens:   make(map[int64]*domain.PasswordResetToken),
	}
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, user domain.User) (*domain.User, error) {
	r.s.userSeq++
	user.ID = r.s.userSeq
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	stored := user
	r.s.users[user.ID] = &stored
	out := stored
	return &out, nil
}

func (r memUsers) GetActiveByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.s.users[id]
	if !ok || !user.Active {
		return nil, repository.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (r memUsers) GetActiveByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.s.users {
		if user.Username == username && user.Active {
			out := *user
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.s.users {
		if user.Username == username {
			out := *user
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (r memUsers) UpdateProfile(_ context.Context, id int64, username, email, name string) (*domain.User, error) {
	user, ok := r.s.users[id]
	if !ok || !user.Active {
		return nil, repository.ErrNotFound
	}
	user.Username, user.Email, user.Name = username, email, name
	out := *user
	return &out, nil
}

func (r memUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	user, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = hash
	return nil
}

func (r memUsers) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	user, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.LastLoginDate = &at
	return nil
}

func (r memUsers) Deactivate(_ context.Context, id int64) error {
	user, ok := r.s.users[id]
	if !ok || !user.Active {
		return repository.ErrNotFound
	}
	user.Active = false
	return nil
}

func (r memUsers) List(_ context.Context, filter port.UserFilter) ([]domain.User, error) {
	out := make([]domain.User, 0)
	for id := int64(1); id <= r.s.userSeq; id++ {
		if user, ok := r.s.users[id]; ok {
			out = append(out, *user)
		}
	}
	start := filter.Offset
	if start > len(out) {
		start = len(out)
	}
	end := len(out)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return out[start:end], nil
}

func (r memUsers) Count(_ context.Context) (int64, error) {
	return int64(len(r.s.users)), nil
}

type memTweets struct{ s *memStore }

func (r memTweets) Create(_ context.Context, tweet domain.Tweet) (*domain.Tweet, error) {
	r.s.tweetSeq++
	tweet.ID = r.s.tweetSeq
	now := time.Now().UTC()
	tweet.CreatedAt, tweet.UpdatedAt = now, now
	stored := tweet
	r.s.tweets[tweet.ID] = &stored
	out := stored
	return &out, nil
}

func (r memTweets) GetByID(ctx context.Context, id int64) (*domain.Tweet, error) {
	tweet, ok := r.s.tweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *tweet
	r.attach(ctx, &out)
	return &out, nil
}

// attach loads the author and the comments onto a tweet copy, the way
// every tweet read path of the real store does.
func (r memTweets) attach(ctx context.Context, tweet *domain.Tweet) {
	if author, err := (memUsers{r.s}).GetByID(ctx, tweet.UserID); err == nil {
		tweet.Author = author
	}
	attached := make([]domain.Comment, 0)
	for cid := int64(1); cid <= r.s.commentSeq; cid++ {
		if comment, ok := r.s.comments[cid]; ok && comment.TweetID == tweet.ID {
			attached = append(attached, *comment)
		}
	}
	tweet.Comments = attached
}

func (r memTweets) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.tweets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tweets, id)
	for cid, comment := range r.s.comments {
		if comment.TweetID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

func (r memTweets) IncrementLikes(_ context.Context, id int64) (*domain.Tweet, error) {
	tweet, ok := r.s.tweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	tweet.LikeCounter++
	out := *tweet
	return &out, nil
}

func (r memTweets) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Tweet, error) {
	out := make([]domain.Tweet, 0)
	for id := r.s.tweetSeq; id >= 1; id-- {
		if tweet, ok := r.s.tweets[id]; ok && tweet.UserID == userID {
			copy := *tweet
			r.attach(ctx, &copy)
			out = append(out, copy)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

func (r memTweets) CountByUserID(_ context.Context, userID int64) (int64, error) {
	var total int64
	for _, tweet := range r.s.tweets {
		if tweet.UserID == userID {
			total++
		}
	}
	return total, nil
}

func (r memTweets) ListByUsername(ctx context.Context, username string, limit, offset int) ([]domain.Tweet, error) {
	user, err := (memUsers{r.s}).GetActiveByUsername(ctx, username)
	if err != nil {
		return []domain.Tweet{}, nil
	}
	return r.ListByUserID(ctx, user.ID, limit, offset)
}

func (r memTweets) CountByUsername(ctx context.Context, username string) (int64, error) {
	user, err := (memUsers{r.s}).GetActiveByUsername(ctx, username)
	if err != nil {
		return 0, nil
	}
	return r.CountByUserID(ctx, user.ID)
}

type memComments struct{ s *memStore }

func (r memComments) Create(_ context.Context, comment domain.Comment) (*domain.Comment, error) {
	r.s.commentSeq++
	comment.ID = r.s.commentSeq
	now := time.Now().UTC()
	comment.CreatedAt, comment.UpdatedAt = now, now
	stored := comment
	r.s.comments[comment.ID] = &stored
	out := stored
	return &out, nil
}

func (r memComments) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	comment, ok := r.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *comment
	return &out, nil
}

func (r memComments) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.comments, id)
	return nil
}

func (r memComments) IncrementLikes(_ context.Context, id int64) (*domain.Comment, error) {
	comment, ok := r.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	comment.LikeCounter++
	out := *comment
	return &out, nil
}

type memTokens struct{ s *memStore }

func (r memTokens) CreatePasswordReset(_ context.Context, token domain.PasswordResetToken) (*domain.PasswordResetToken, error) {
	r.s.tokenSeq++
	token.ID = r.s.tokenSeq
	stored := token
	r.s.tokens[token.ID] = &stored
	out := stored
	return &out, nil
}

func (r memTokens) GetPasswordResetByHash(_ context.Context, hash string) (*domain.PasswordResetToken, error) {
	for _, token := range r.s.tokens {
		if token.TokenHash == hash {
			out := *token
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memTokens) DeletePasswordReset(_ context.Context, id int64) error {
	if _, ok := r.s.tokens[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tokens, id)
	return nil
}

type noopPublisher struct{}

func (noopPublisher) PublishUserRegistered(context.Context, domain.UserRegisteredEvent) error {
	return nil
}
func (noopPublisher) PublishPasswordChanged(context.Context, domain.PasswordChangedEvent) error {
	return nil
}
func (noopPublisher) PublishPasswordResetRequested(context.Context, domain.PasswordResetRequestedEvent) error {
	return nil
}
func (noopPublisher) PublishTweetLiked(context.Context, domain.TweetLikedEvent) error { return nil }

type captureMailer struct{ resetTokens []string }

func (m *captureMailer) SendPasswordChanged(context.Context, string) error { return nil }
func (m *captureMailer) SendPasswordReset(_ context.Context, _ string, token string) error {
	m.resetTokens = append(m.resetTokens, token)
	return nil
}

func newTestEngine(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	logger := zap.NewNop()
	tokens, err := security.NewTokenService(security.TokenServiceOptions{Secret: "routes-test-secret"})
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	users := memUsers{store}
	tweets := memTweets{store}
	comments := memComments{store}
	resetTokens := memTokens{store}

	cfg := &config.AppConfig{
		App:        config.AppSettings{Env: "test"},
		Pagination: config.PaginationSettings{DefaultLimit: 10, MaxLimit: 100},
	}

	engine := httproutes.Register(httproutes.Dependencies{
		Config: cfg,
		Logger: logger,
		Services: httproutes.ServiceSet{
			Auth:          usecase.NewAuthService(users, tokens, logger),
			Users:         usecase.NewUserService(users, noopPublisher{}, logger),
			PasswordReset: usecase.NewPasswordResetService(users, resetTokens, tokens, &captureMailer{}, noopPublisher{}, logger),
			Tweets:        usecase.NewTweetService(tweets, noopPublisher{}, logger),
			Comments:      usecase.NewCommentService(comments, tweets, logger),
		},
	})
	return engine, store
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, engine *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/users", "", map[string]string{
		"username":             username,
		"email":                username + "@example.com",
		"name":                 username,
		"password":             "s3cret",
		"passwordConfirmation": "s3cret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register %s: status %d body %s", username, w.Code, w.Body.String())
	}

	w = doJSON(t, engine, http.MethodPost, "/users/login", "", map[string]string{
		"username": username,
		"password": "s3cret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, w.Code, w.Body.String())
	}

	var envelope struct {
		Status string `json:"status"`
		Data   struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if envelope.Data.AccessToken == "" {
		t.Fatalf("login returned empty token: %s", w.Body.String())
	}
	return envelope.Data.AccessToken
}

func TestRegisterValidationMessages(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/users", "", map[string]string{
		"username":             "a",
		"email":                "a@a.com",
		"name":                 "A",
		"password":             "x",
		"passwordConfirmation": "y",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := w.Body.String(); got != `{"status":"Passwords do not match"}` {
		t.Fatalf("body = %s", got)
	}

	w = doJSON(t, engine, http.MethodPost, "/users", "", map[string]string{
		"username": "a",
		"email":    "a@a.com",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := w.Body.String(); got != `{"status":"Payload must contain name, username, email and password"}` {
		t.Fatalf("body = %s", got)
	}
}

func TestTweetLifecycleOverHTTP(t *testing.T) {
	engine, _ := newTestEngine(t)
	aliceToken := registerAndLogin(t, engine, "alice")
	bobToken := registerAndLogin(t, engine, "bob")

	// No token: 401.
	w := doJSON(t, engine, http.MethodPost, "/tweets", "", map[string]string{"text": "hi"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: status %d, want 401", w.Code)
	}

	w = doJSON(t, engine, http.MethodPost, "/tweets", aliceToken, map[string]string{"text": "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("create tweet: status %d body %s", w.Code, w.Body.String())
	}
	var created struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	// Likes accumulate.
	for i := 0; i < 2; i++ {
		w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/tweets/%d/likes", created.Data.ID), bobToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("like: status %d body %s", w.Code, w.Body.String())
		}
	}
	var liked struct {
		Data struct {
			LikeCounter int64 `json:"likeCounter"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &liked); err != nil {
		t.Fatalf("decode like response: %v", err)
	}
	if liked.Data.LikeCounter != 2 {
		t.Fatalf("like counter = %d, want 2", liked.Data.LikeCounter)
	}

	// Foreign delete is forbidden with the original message.
	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/tweets/%d", created.Data.ID), bobToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign delete: status %d, want 403", w.Code)
	}
	if got := w.Body.String(); got != `{"status":"you can not delete this tweet"}` {
		t.Fatalf("foreign delete body = %s", got)
	}

	// Owner delete succeeds, then the tweet is gone.
	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/tweets/%d", created.Data.ID), aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner delete: status %d body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/tweets/%d", created.Data.ID), "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get deleted tweet: status %d, want 404", w.Code)
	}
}

func TestFeedRendersAuthorAndComments(t *testing.T) {
	engine, _ := newTestEngine(t)
	token := registerAndLogin(t, engine, "erin")

	w := doJSON(t, engine, http.MethodPost, "/tweets", token, map[string]string{"text": "talk to me"})
	if w.Code != http.StatusOK {
		t.Fatalf("create tweet: status %d body %s", w.Code, w.Body.String())
	}
	var created struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/tweets/%d/comments", created.Data.ID), token, map[string]string{"text": "hi erin"})
	if w.Code != http.StatusOK {
		t.Fatalf("create comment: status %d body %s", w.Code, w.Body.String())
	}

	type feedItem struct {
		ID     int64 `json:"id"`
		Author *struct {
			Username string `json:"username"`
		} `json:"author"`
		Comments *[]struct {
			Text string `json:"text"`
		} `json:"comments"`
	}

	assertFeed := func(path string, token string) {
		w := doJSON(t, engine, http.MethodGet, path, token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d body %s", path, w.Code, w.Body.String())
		}
		var envelope struct {
			Data []feedItem `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode %s response: %v", path, err)
		}
		if len(envelope.Data) != 1 {
			t.Fatalf("GET %s: expected 1 tweet, got %s", path, w.Body.String())
		}
		item := envelope.Data[0]
		if item.Author == nil || item.Author.Username != "erin" {
			t.Fatalf("GET %s: feed item missing author: %s", path, w.Body.String())
		}
		if item.Comments == nil || len(*item.Comments) != 1 || (*item.Comments)[0].Text != "hi erin" {
			t.Fatalf("GET %s: feed item missing comments: %s", path, w.Body.String())
		}
	}

	assertFeed("/tweets", token)
	assertFeed("/tweets/feed/erin", "")
}

func TestTweetWithoutCommentsRendersEmptyArray(t *testing.T) {
	engine, _ := newTestEngine(t)
	token := registerAndLogin(t, engine, "frank")

	w := doJSON(t, engine, http.MethodPost, "/tweets", token, map[string]string{"text": "quiet one"})
	if w.Code != http.StatusOK {
		t.Fatalf("create tweet: status %d body %s", w.Code, w.Body.String())
	}
	var created struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/tweets/%d", created.Data.ID), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get tweet: status %d body %s", w.Code, w.Body.String())
	}
	var raw struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	comments, ok := raw.Data["comments"]
	if !ok {
		t.Fatalf("comments key absent from tweet body: %s", w.Body.String())
	}
	if string(comments) != "[]" {
		t.Fatalf("comments = %s, want []", comments)
	}
}

func TestCommentOnMissingTweetIsBadRequest(t *testing.T) {
	engine, _ := newTestEngine(t)
	token := registerAndLogin(t, engine, "carol")

	w := doJSON(t, engine, http.MethodPost, "/tweets/99999/comments", token, map[string]string{"text": "hi"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := w.Body.String(); got != `{"status":"Tweet not found"}` {
		t.Fatalf("body = %s", got)
	}
}

func TestAdminListingIsRoleGated(t *testing.T) {
	engine, store := newTestEngine(t)
	userToken := registerAndLogin(t, engine, "dave")

	w := doJSON(t, engine, http.MethodGet, "/users/all", userToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("plain user on /users/all: status %d, want 403", w.Code)
	}

	// Promote and re-login so the token carries the admin role.
	for _, user := range store.users {
		if user.Username == "dave" {
			user.Role = domain.RoleAdmin
		}
	}
	w = doJSON(t, engine, http.MethodPost, "/users/login", "", map[string]string{
		"username": "dave",
		"password": "s3cret",
	})
	var envelope struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode login response: %v", err)
	}

	w = doJSON(t, engine, http.MethodGet, "/users/all?page=1&limit=10", envelope.Data.AccessToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin on /users/all: status %d body %s", w.Code, w.Body.String())
	}
	var page struct {
		Status         string `json:"status"`
		PaginationInfo *struct {
			TotalItems  int64 `json:"totalItems"`
			TotalPages  int64 `json:"totalPages"`
			CurrentPage int   `json:"currentPage"`
		} `json:"paginationInfo"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page response: %v", err)
	}
	if page.PaginationInfo == nil || page.PaginationInfo.TotalItems != 1 {
		t.Fatalf("unexpected pagination info: %+v", page.PaginationInfo)
	}
}

func TestUserDeactivationHidesUser(t *testing.T) {
	engine, store := newTestEngine(t)
	token := registerAndLogin(t, engine, "erin")

	var userID int64
	for _, user := range store.users {
		if user.Username == "erin" {
			userID = user.ID
		}
	}

	// Another caller cannot delete erin's account.
	otherToken := registerAndLogin(t, engine, "frank")
	w := doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/users/%d", userID), otherToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign user delete: status %d, want 403", w.Code)
	}

	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/users/%d", userID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("self delete: status %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/users/%d", userID), "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("get deactivated user: status %d, want 400", w.Code)
	}
	if got := w.Body.String(); got != `{"status":"User not found"}` {
		t.Fatalf("body = %s", got)
	}

	// A deactivated user can no longer log in.
	w = doJSON(t, engine, http.MethodPost, "/users/login", "", map[string]string{
		"username": "erin",
		"password": "s3cret",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("login after deactivation: status %d, want 400", w.Code)
	}
}
