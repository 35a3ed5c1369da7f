package auth

import (
	"strings"

	"github.com/tuanngo/material-management/internal"
)

// LoginDTO carries the login form fields.
type LoginDTO struct {
	Username string
	Password string
}

func (dto LoginDTO) Validate() error {
	if strings.TrimSpace(dto.Username) == "" {
		return internal.NewValidationError("username is required", internal.ErrCodeValidationFailed)
	}
	if dto.Password == "" {
		return internal.NewValidationError("password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// RegisterDTO carries the self-registration form fields.
type RegisterDTO struct {
	Username string
	Email    string
	FullName string
	Password string
}

func (dto RegisterDTO) Validate() error {
	if strings.TrimSpace(dto.Username) == "" {
		return internal.NewValidationError("username is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.Email) == "" || !strings.Contains(dto.Email, "@") {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.FullName) == "" {
		return internal.NewValidationError("full name is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Password) < 6 {
		return internal.NewValidationError("password must be at least 6 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}
