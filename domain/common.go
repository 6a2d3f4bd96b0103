package domain

import (
	"errors"
)

const (
	RoleStaff   = "staff"
	RoleManager = "manager"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenNotFound  = errors.New("token not found")
	ErrUserNotAllowed = errors.New("user not allowed")
)
