package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Service performs authentication business logic: credential checks, token
// issuance and the cookie-guard user resolution.
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
	}
}

type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: ttl,
	}
}

// Authenticate validates credentials and returns a signed access token.
func (s *Service) Authenticate(dto LoginDTO) (string, time.Time, error) {
	if err := dto.Validate(); err != nil {
		return "", time.Time{}, err
	}

	storedHash, err := s.userRepo.GetPasswordForUsername(dto.Username)
	if err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(dto.Username)
	if err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *Service) issueToken(user *User) (string, time.Time, error) {
	token, expiresAt, err := s.tokenGenerator.GenerateAccessToken(user.Username, user.Role)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Register creates a plain-role account from the public register form.
func (s *Service) Register(dto RegisterDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	exists, err := s.userRepo.UsernameOrEmailExists(dto.Username, dto.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateUser
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return err
	}

	_, err = s.userRepo.Create(&User{
		Username: dto.Username,
		Email:    dto.Email,
		FullName: dto.FullName,
		Role:     RoleUser,
	}, hash)
	return err
}

// CurrentUser resolves the bearer token to a known user. Fails closed on a
// missing subject or an unknown username.
func (s *Service) CurrentUser(tokenString string) (*User, error) {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByUsername(claims.Subject)
	if err != nil {
		return nil, ErrUnknownUser
	}
	return user, nil
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateAccessToken creates a signed token carrying subject and role.
func (j *JWTTokenGenerator) GenerateAccessToken(username string, role Role) (string, time.Time, error) {
	expiresAt := time.Now().Add(j.AccessTokenTTL)

	claims := &Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns its claims.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
