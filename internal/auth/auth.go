package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the authenticated principal attached to request contexts.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// Claims carries the token subject (username) and the role claim.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates bearer tokens.
type TokenGenerator interface {
	GenerateAccessToken(username string, role Role) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// UserRepository is the persistence surface the auth service needs.
type UserRepository interface {
	GetByUsername(username string) (*User, error)
	GetPasswordForUsername(username string) (passwordHash string, err error)
	UsernameOrEmailExists(username, email string) (bool, error)
	Create(u *User, passwordHash string) (int64, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUnknownUser        = errors.New("unknown user")
	ErrDuplicateUser      = errors.New("username or email already exists")
)
