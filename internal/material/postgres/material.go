package postgres

import (
	"time"

	materialDatamodel "github.com/tuanngo/material-management/internal/core/datamodel/material"
	"github.com/tuanngo/material-management/internal/material"
	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) material.RepositoryAPI {
	return &MaterialRepository{db: db}
}

const joinedColumns = "materials.id, materials.title, materials.subject, materials.topic, " +
	"materials.files, materials.department_id, materials.uploader_id, " +
	"materials.created_at, materials.updated_at, " +
	"departments.code AS department_code, departments.name AS department_name, " +
	"users.full_name AS uploader_full_name, users.email AS uploader_email"

func (r *MaterialRepository) Create(record *materialDatamodel.Material) error {
	return r.db.Create(record).Error
}

func (r *MaterialRepository) GetByID(id int64) (*material.Row, error) {
	var row material.Row
	err := r.db.Table("materials").
		Select(joinedColumns).
		Joins("JOIN departments ON departments.id = materials.department_id").
		Joins("JOIN users ON users.id = materials.uploader_id").
		Where("materials.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *MaterialRepository) List(filter material.ListFilter) ([]*material.Row, error) {
	query := r.db.Table("materials").
		Select(joinedColumns).
		Joins("JOIN departments ON departments.id = materials.department_id").
		Joins("JOIN users ON users.id = materials.uploader_id")

	if filter.DepartmentID != nil {
		query = query.Where("materials.department_id = ?", *filter.DepartmentID)
	}
	if filter.Uploader != "" {
		query = query.Where("users.full_name LIKE ?", "%"+filter.Uploader+"%")
	}

	var rows []*material.Row
	err := query.Order("materials.created_at DESC").Scan(&rows).Error
	return rows, err
}

// UpdateMetadata touches the editable fields and refreshes updated_at; the
// files column is deliberately not part of the update set.
func (r *MaterialRepository) UpdateMetadata(id int64, title, subject string, topic *string, departmentID int64) error {
	return r.db.Model(&materialDatamodel.Material{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":         title,
			"subject":       subject,
			"topic":         topic,
			"department_id": departmentID,
			"updated_at":    time.Now(),
		}).Error
}

func (r *MaterialRepository) Delete(id int64) error {
	return r.db.Delete(&materialDatamodel.Material{}, id).Error
}
