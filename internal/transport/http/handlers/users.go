package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arklim/social-platform-api/internal/infra/config"
	"github.com/arklim/social-platform-api/internal/transport/http/middleware"
	"github.com/arklim/social-platform-api/internal/usecase"
)

const (
	msgRegistrationPayload = "Payload must contain name, username, email and password"
	msgProfilePayload      = "Payload can only contain username, email or name"
	msgPasswordMismatch    = "Passwords do not match"
	msgUserNotFound        = "User not found"
	msgNotAuthorized       = "Not authorized"
	msgInvalidToken        = "Invalid token"
	msgInternalError       = "Internal server error"
)

// UserHandler exposes account, login, and password endpoints.
type UserHandler struct {
	users     *usecase.UserService
	auth      *usecase.AuthService
	passwords *usecase.PasswordResetService
	paging    config.PaginationSettings
}

// NewUserHandler builds a user handler.
func NewUserHandler(users *usecase.UserService, auth *usecase.AuthService, passwords *usecase.PasswordResetService, paging config.PaginationSettings) *UserHandler {
	return &UserHandler{
		users:     users,
		auth:      auth,
		passwords: passwords,
		paging:    paging,
	}
}

// RegisterRoutes binds user endpoints. Fixed paths are registered before the
// :id parameter so "all", "login", and the password routes never shadow it.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth, requireAdmin gin.HandlerFunc) {
	r.POST("", h.Register)
	r.GET("/all", requireAuth, requireAdmin, h.ListAll)
	r.POST("/login", h.Login)
	r.POST("/update_password", requireAuth, h.UpdatePassword)
	r.POST("/send_password_reset", h.SendPasswordReset)
	r.POST("/reset_password", h.ResetPassword)
	r.GET("/:id", h.Get)
	r.PUT("/:id", requireAuth, h.Update)
	r.DELETE("/:id", requireAuth, h.Delete)
}

// RegisterRequest defines the payload for account creation.
type RegisterRequest struct {
	Username             string `json:"username"`
	Email                string `json:"email"`
	Name                 string `json:"name"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// Register creates a new account.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(msgRegistrationPayload))
		return
	}

	user, err := h.users.Register(c.Request.Context(), usecase.RegisterInput{
		Username:             req.Username,
		Email:                req.Email,
		Name:                 req.Name,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrRegistrationPayload, Status: http.StatusBadRequest, Message: msgRegistrationPayload},
			{Err: usecase.ErrPasswordMismatch, Status: http.StatusBadRequest, Message: msgPasswordMismatch},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(NewUserView(*user)))
}

// ListAll returns a page of users. Admin only.
func (h *UserHandler) ListAll(c *gin.Context) {
	paging := parsePagination(c, h.paging)
	users, info, err := h.users.ListAll(c.Request.Context(), paging)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(msgInternalError))
		return
	}
	c.JSON(http.StatusOK, NewPageResponse(NewUserViews(users), info))
}

// Get returns one user's public profile.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, NewErrorResponse(msgUserNotFound))
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusBadRequest, Message: msgUserNotFound},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(NewUserView(*user)))
}

// UpdateProfileRequest defines the payload for profile updates. All three
// fields must be present; the update is whole-profile, not a per-field patch.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
}

// Update edits the caller's own profile.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, NewErrorResponse(msgUserNotFound))
		return
	}
	if !callerOwns(c, id) {
		c.JSON(http.StatusForbidden, NewErrorResponse(msgNotAuthorized))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(msgProfilePayload))
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), id, usecase.UpdateProfileInput{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrProfilePayload, Status: http.StatusBadRequest, Message: msgProfilePayload},
			{Err: usecase.ErrUserNotFound, Status: http.StatusBadRequest, Message: msgUserNotFound},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(NewUserView(*user)))
}

// Delete deactivates the caller's own account.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, NewErrorResponse(msgUserNotFound))
		return
	}
	if !callerOwns(c, id) {
		c.JSON(http.StatusForbidden, NewErrorResponse(msgNotAuthorized))
		return
	}

	if err := h.users.Deactivate(c.Request.Context(), id); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusBadRequest, Message: msgUserNotFound},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(nil))
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and returns an access token.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(msgUserNotFound))
		return
	}

	token, _, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusBadRequest, Message: msgUserNotFound},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"accessToken": token}))
}

// UpdatePasswordRequest defines the payload for authenticated password changes.
type UpdatePasswordRequest struct {
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// UpdatePassword changes the caller's password.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(msgNotAuthorized))
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(msgPasswordMismatch))
		return
	}

	user, err := h.passwords.ChangePassword(c.Request.Context(), callerID, req.Password, req.PasswordConfirmation)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrPasswordMismatch, Status: http.StatusBadRequest, Message: msgPasswordMismatch},
			{Err: usecase.ErrUserNotFound, Status: http.StatusBadRequest, Message: msgUserNotFound},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(NewUserView(*user)))
}

// SendPasswordResetRequest defines the payload that starts a reset flow.
type SendPasswordResetRequest struct {
	Username string `json:"username"`
}

// SendPasswordReset issues and emails a reset token for the named user.
func (h *UserHandler) SendPasswordReset(c *gin.Context) {
	var req SendPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusNotFound, NewErrorResponse(msgUserNotFound))
		return
	}

	if err := h.passwords.RequestPasswordReset(c.Request.Context(), req.Username); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: msgUserNotFound},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(nil))
}

// ResetPasswordRequest defines the payload that completes a reset flow.
type ResetPasswordRequest struct {
	Token                string `json:"token"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// ResetPassword consumes a reset token and stores the new password.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(msgInvalidToken))
		return
	}

	if err := h.passwords.ResetPassword(c.Request.Context(), req.Token, req.Password, req.PasswordConfirmation); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrPasswordMismatch, Status: http.StatusBadRequest, Message: msgPasswordMismatch},
			{Err: usecase.ErrInvalidResetToken, Status: http.StatusBadRequest, Message: msgInvalidToken},
		}, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(nil))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func callerOwns(c *gin.Context, id int64) bool {
	callerID, ok := middleware.CallerID(c)
	return ok && callerID == id
}

func parsePagination(c *gin.Context, settings config.PaginationSettings) usecase.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return usecase.NewPagination(page, limit, settings.DefaultLimit, settings.MaxLimit)
}
