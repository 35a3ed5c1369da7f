package postgres

import (
	userDatamodel "github.com/tuanngo/material-management/internal/core/datamodel/user"
	"github.com/tuanngo/material-management/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll() ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var record userDatamodel.User
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *UserRepository) UsernameOrEmailExists(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Create(record *userDatamodel.User) error {
	return r.db.Create(record).Error
}

func (r *UserRepository) UpdateRole(id int64, role string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Delete(&userDatamodel.User{}, id).Error
}
