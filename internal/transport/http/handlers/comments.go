package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/social-platform-api/internal/usecase"
)

const msgCommentNotFound = "Comment not found"

// CommentHandler exposes comment like and delete endpoints. Both are open to
// any authenticated caller; there is no ownership check on comments.
type CommentHandler struct {
	comments *usecase.CommentService
}

// NewCommentHandler builds a comment handler.
func NewCommentHandler(comments *usecase.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterRoutes binds comment endpoints.
func (h *CommentHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	r.POST("/:id/likes", requireAuth, h.Like)
	r.DELETE("/:id", requireAuth, h.Delete)
}

// Like adds one like to a comment and returns the updated record.
func (h *CommentHandler) Like(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, NewErrorResponse(msgCommentNotFound))
		return
	}

	comment, err := h.comments.Like(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrCommentNotFound, Status: http.StatusNotFound, Message: msgCommentNotFound},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(NewCommentView(*comment)))
}

// Delete removes a comment.
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, NewErrorResponse(msgCommentNotFound))
		return
	}

	if err := h.comments.Delete(c.Request.Context(), id); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrCommentNotFound, Status: http.StatusNotFound, Message: msgCommentNotFound},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(nil))
}
