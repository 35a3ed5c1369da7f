package postgres

import (
	"time"

	"github.com/tuanngo/material-management/internal/auth"
	userDatamodel "github.com/tuanngo/material-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.UserRepository {
	return &Repository{db: db}
}

func (r *Repository) GetByUsername(username string) (*auth.User, error) {
	var record userDatamodel.User
	if err := r.db.Where("username = ?", username).First(&record).Error; err != nil {
		return nil, err
	}

	role, err := auth.ParseRole(record.Role)
	if err != nil {
		return nil, err
	}

	return &auth.User{
		ID:       record.ID,
		Username: record.Username,
		Email:    record.Email,
		FullName: record.FullName,
		Role:     role,
	}, nil
}

func (r *Repository) GetPasswordForUsername(username string) (string, error) {
	var record userDatamodel.User
	if err := r.db.Select("password_hash").Where("username = ?", username).First(&record).Error; err != nil {
		return "", err
	}
	return record.PasswordHash, nil
}

func (r *Repository) UsernameOrEmailExists(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) Create(u *auth.User, passwordHash string) (int64, error) {
	record := userDatamodel.User{
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: passwordHash,
		Role:         u.Role.String(),
		CreatedAt:    time.Now(),
	}
	if err := r.db.Create(&record).Error; err != nil {
		return 0, err
	}
	u.ID = record.ID
	return record.ID, nil
}
