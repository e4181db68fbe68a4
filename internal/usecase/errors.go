package usecase

import "errors"

var (
	// ErrUserNotFound indicates the requested user does not exist or is deactivated.
	ErrUserNotFound = errors.New("user not found")
	// ErrTweetNotFound indicates the requested tweet does not exist.
	ErrTweetNotFound = errors.New("tweet not found")
	// ErrCommentNotFound indicates the requested comment does not exist.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrPasswordMismatch indicates password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrRegistrationPayload indicates the registration payload is missing required fields.
	ErrRegistrationPayload = errors.New("registration payload incomplete")
	// ErrProfilePayload indicates the profile update payload carries unsupported fields.
	ErrProfilePayload = errors.New("profile payload invalid")
	// ErrTextRequired indicates a tweet or comment payload is missing its text.
	ErrTextRequired = errors.New("text is required")
	// ErrNotOwner indicates the caller does not own the resource they tried to mutate.
	ErrNotOwner = errors.New("caller does not own resource")
	// ErrInvalidAccessToken indicates the bearer token is malformed or its signature failed.
	ErrInvalidAccessToken = errors.New("invalid access token")
	// ErrExpiredAccessToken indicates the bearer token has expired.
	ErrExpiredAccessToken = errors.New("access token expired")
	// ErrInvalidResetToken indicates the reset token is malformed, expired, or already consumed.
	ErrInvalidResetToken = errors.New("invalid reset token")
)
