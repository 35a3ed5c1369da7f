package user

import (
	"errors"
	"time"

	"github.com/tuanngo/material-management/internal/auth"
	userDatamodel "github.com/tuanngo/material-management/internal/core/datamodel/user"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCannotDeleteSelf = errors.New("cannot delete own account")
	ErrDuplicateUser    = errors.New("username or email already exists")
)

func FromDataModel(record *userDatamodel.User) (*User, error) {
	role, err := auth.ParseRole(record.Role)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:           record.ID,
		Username:     record.Username,
		Email:        record.Email,
		FullName:     record.FullName,
		PasswordHash: record.PasswordHash,
		Role:         role,
		CreatedAt:    record.CreatedAt,
	}, nil
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         u.Role.String(),
		CreatedAt:    u.CreatedAt,
	}
}
