package postgres

import (
	"github.com/tuanngo/material-management/internal/department"

	departmentDatamodel "github.com/tuanngo/material-management/internal/core/datamodel/department"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll() ([]*departmentDatamodel.Department, error) {
	var departments []*departmentDatamodel.Department
	err := r.db.Order("code ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) GetByID(id int64) (*departmentDatamodel.Department, error) {
	var dept departmentDatamodel.Department
	err := r.db.Where("id = ?", id).First(&dept).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) Create(d *departmentDatamodel.Department) error {
	return r.db.Create(d).Error
}
