package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/social-platform-api/internal/infra/config"
	"github.com/arklim/social-platform-api/internal/transport/http/middleware"
	"github.com/arklim/social-platform-api/internal/usecase"
)

const (
	msgTextRequired     = "Payload must contain text"
	msgTweetNotFound    = "Tweet not found"
	msgCannotDeleteThis = "you can not delete this tweet"
)

// TweetHandler exposes tweet and feed endpoints.
type TweetHandler struct {
	tweets   *usecase.TweetService
	comments *usecase.CommentService
	paging   config.PaginationSettings
}

// NewTweetHandler builds a tweet handler.
func NewTweetHandler(tweets *usecase.TweetService, comments *usecase.CommentService, paging config.PaginationSettings) *TweetHandler {
	return &TweetHandler{
		tweets:   tweets,
		comments: comments,
		paging:   paging,
	}
}

// RegisterRoutes binds tweet endpoints.
func (h *TweetHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	r.POST("", requireAuth, h.Create)
	r.GET("", requireAuth, h.Feed)
	r.GET("/feed/:username", h.FeedByUsername)
	r.GET("/:id", h.Get)
	r.DELETE("/:id", requireAuth, h.Delete)
	r.POST("/:id/likes", requireAuth, h.Like)
	r.POST("/:id/comments", requireAuth, h.CreateComment)
}

// TweetRequest defines the payload for tweet creation.
type TweetRequest struct {
	Text string `json:"text"`
}

// Create posts a new tweet owned by the caller.
func (h *TweetHandler) Create(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(msgNotAuthorized))
		return
	}

	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(msgTextRequired))
		return
	}

	tweet, err := h.tweets.Create(c.Request.Context(), callerID, req.Text)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrTextRequired, Status: http.StatusBadRequest, Message: msgTextRequired},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(NewTweetView(*tweet)))
}

// Get returns one tweet with its author and comments.
func (h *TweetHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, NewErrorResponse(msgTweetNotFound))
		return
	}

	tweet, err := h.tweets.Get(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrTweetNotFound, Status: http.StatusNotFound, Message: msgTweetNotFound},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(NewTweetView(*tweet)))
}

// Delete removes the caller's own tweet.
func (h *TweetHandler) Delete(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(msgNotAuthorized))
		return
	}
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, NewErrorResponse(msgTweetNotFound))
		return
	}

	if err := h.tweets.Delete(c.Request.Context(), callerID, id); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrTweetNotFound, Status: http.StatusNotFound, Message: msgTweetNotFound},
			{Err: usecase.ErrNotOwner, Status: http.StatusForbidden, Message: msgCannotDeleteThis},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(nil))
}

// Like adds one like to a tweet and returns the updated record.
func (h *TweetHandler) Like(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(msgNotAuthorized))
		return
	}
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, NewErrorResponse(msgTweetNotFound))
		return
	}

	tweet, err := h.tweets.Like(c.Request.Context(), callerID, id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrTweetNotFound, Status: http.StatusNotFound, Message: msgTweetNotFound},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(NewTweetView(*tweet)))
}

// Feed returns a page of the caller's own tweets.
func (h *TweetHandler) Feed(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(msgNotAuthorized))
		return
	}

	paging := parsePagination(c, h.paging)
	tweets, info, err := h.tweets.Feed(c.Request.Context(), callerID, paging)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(msgInternalError))
		return
	}

	c.JSON(http.StatusOK, NewPageResponse(NewTweetViews(tweets), info))
}

// FeedByUsername returns a page of the named user's tweets. Unknown usernames
// yield an empty page.
func (h *TweetHandler) FeedByUsername(c *gin.Context) {
	paging := parsePagination(c, h.paging)
	tweets, info, err := h.tweets.FeedByUsername(c.Request.Context(), c.Param("username"), paging)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(msgInternalError))
		return
	}

	c.JSON(http.StatusOK, NewPageResponse(NewTweetViews(tweets), info))
}

// CommentRequest defines the payload for comment creation.
type CommentRequest struct {
	Text string `json:"text"`
}

// CreateComment attaches a comment to an existing tweet. A missing parent is a
// payload-level failure here, not a 404.
func (h *TweetHandler) CreateComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, NewErrorResponse(msgTweetNotFound))
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(msgTextRequired))
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), id, req.Text)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrTextRequired, Status: http.StatusBadRequest, Message: msgTextRequired},
			{Err: usecase.ErrTweetNotFound, Status: http.StatusBadRequest, Message: msgTweetNotFound},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(NewCommentView(*comment)))
}
