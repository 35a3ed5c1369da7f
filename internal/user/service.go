package user

import (
	"log/slog"
	"time"

	"github.com/tuanngo/material-management/internal/auth"
	userDatamodel "github.com/tuanngo/material-management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetAll() ([]*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	UsernameOrEmailExists(username, email string) (bool, error)
	Create(record *userDatamodel.User) error
	UpdateRole(id int64, role string) error
	Delete(id int64) error
}

// PasswordHasher is satisfied by the auth service.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   RepositoryAPI
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *Service) GetAll() ([]*User, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}

	users := make([]*User, 0, len(records))
	for _, record := range records {
		u, err := FromDataModel(record)
		if err != nil {
			s.logger.Warn("skipping user with unknown role", "user_id", record.ID, "role", record.Role)
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

// ChangeRole validates the role against the closed enum before persisting.
func (s *Service) ChangeRole(userID int64, roleValue string) (*User, error) {
	role, err := auth.ParseRole(roleValue)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrUserNotFound
	}

	if err := s.repo.UpdateRole(userID, role.String()); err != nil {
		return nil, err
	}

	record.Role = role.String()
	return FromDataModel(record)
}

// Delete removes a user. Callers cannot delete their own account.
func (s *Service) Delete(userID, callerID int64) error {
	if userID == callerID {
		return ErrCannotDeleteSelf
	}

	record, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrUserNotFound
	}

	return s.repo.Delete(userID)
}

// Create adds a user with an explicit role, rejecting duplicates.
func (s *Service) Create(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	roleValue := dto.Role
	if roleValue == "" {
		roleValue = auth.RoleUser.String()
	}
	role, err := auth.ParseRole(roleValue)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.UsernameOrEmailExists(dto.Username, dto.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUser
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	record := &userDatamodel.User{
		Username:     dto.Username,
		Email:        dto.Email,
		FullName:     dto.FullName,
		PasswordHash: hash,
		Role:         role.String(),
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(record); err != nil {
		return nil, err
	}

	return FromDataModel(record)
}
