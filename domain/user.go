package domain

import (
	"errors"
)

var (
	MessageSuccessRegister = "staff account registered successfully"
	MessageSuccessLogin    = "login successful"

	MessageFailedRegister = "failed to register staff account"
	MessageFailedLogin    = "failed to login"

	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrCredentialsIncorrect = errors.New("email or password incorrect")
	ErrUserNotFound         = errors.New("user not found")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	RegisterResponse struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}
)
