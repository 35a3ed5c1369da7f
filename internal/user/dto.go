package user

import (
	"strings"

	"github.com/tuanngo/material-management/internal"
)

// CreateUserDTO carries the admin create-user form fields.
type CreateUserDTO struct {
	Username string
	Email    string
	FullName string
	Password string
	Role     string
}

func (dto CreateUserDTO) Validate() error {
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
