package handlers

import (
	"time"

	"github.com/arklim/social-platform-api/internal/core/domain"
	"github.com/arklim/social-platform-api/internal/usecase"
)

// Response is the success envelope: status is always "success", data carries
// the payload (null for acknowledgement endpoints), and paginationInfo is
// populated only on list endpoints.
type Response struct {
	Status         string            `json:"status"`
	Data           any               `json:"data"`
	PaginationInfo *usecase.PageInfo `json:"paginationInfo"`
}

// NewSuccessResponse wraps a payload in the success envelope.
func NewSuccessResponse(data any) Response {
	return Response{Status: "success", Data: data}
}

// NewPageResponse wraps a list payload with its pagination metadata.
func NewPageResponse(data any, info usecase.PageInfo) Response {
	return Response{Status: "success", Data: data, PaginationInfo: &info}
}

// ErrorResponse carries the failure message in the status field.
type ErrorResponse struct {
	Status string `json:"status"`
}

// NewErrorResponse builds the error envelope.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Status: message}
}

// UserView is the serialized form of a user. The password hash, role, and
// active flag never leave the service.
type UserView struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	LastLoginDate *time.Time `json:"lastLoginDate"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// NewUserView converts a domain user to its API shape.
func NewUserView(user domain.User) UserView {
	return UserView{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		Name:          user.Name,
		LastLoginDate: user.LastLoginDate,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// NewUserViews converts a slice of domain users.
func NewUserViews(users []domain.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, NewUserView(user))
	}
	return views
}

// CommentView is the serialized form of a comment.
type CommentView struct {
	ID          int64     `json:"id"`
	Text        string    `json:"text"`
	LikeCounter int64     `json:"likeCounter"`
	TweetID     int64     `json:"tweetId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewCommentView converts a domain comment to its API shape.
func NewCommentView(comment domain.Comment) CommentView {
	return CommentView{
		ID:          comment.ID,
		Text:        comment.Text,
		LikeCounter: comment.LikeCounter,
		TweetID:     comment.TweetID,
		CreatedAt:   comment.CreatedAt,
		UpdatedAt:   comment.UpdatedAt,
	}
}

// TweetView is the serialized form of a tweet. The author appears only on
// eager-loaded reads; comments are always an array.
type TweetView struct {
	ID          int64         `json:"id"`
	Text        string        `json:"text"`
	LikeCounter int64         `json:"likeCounter"`
	UserID      int64         `json:"userId"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Author      *UserView     `json:"author,omitempty"`
	Comments    []CommentView `json:"comments"`
}

// NewTweetView converts a domain tweet to its API shape. Comments always
// render as an array, empty when the tweet has none.
func NewTweetView(tweet domain.Tweet) TweetView {
	view := TweetView{
		ID:          tweet.ID,
		Text:        tweet.Text,
		LikeCounter: tweet.LikeCounter,
		UserID:      tweet.UserID,
		CreatedAt:   tweet.CreatedAt,
		UpdatedAt:   tweet.UpdatedAt,
		Comments:    make([]CommentView, 0, len(tweet.Comments)),
	}
	if tweet.Author != nil {
		author := NewUserView(*tweet.Author)
		view.Author = &author
	}
	for _, comment := range tweet.Comments {
		view.Comments = append(view.Comments, NewCommentView(comment))
	}
	return view
}

// NewTweetViews converts a slice of domain tweets.
func NewTweetViews(tweets []domain.Tweet) []TweetView {
	views := make([]TweetView, 0, len(tweets))
	for _, tweet := range tweets {
		views = append(views, NewTweetView(tweet))
	}
	return views
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}
