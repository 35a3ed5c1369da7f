package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/tuanngo/material-management/internal/stats"
)

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) stats.RepositoryAPI {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountMaterials(departmentID *int64) (int64, error) {
	query := r.db.Table("materials")
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *statsRepository) CountMaterialsSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Table("materials").
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *statsRepository) CountUsers() (int64, error) {
	var count int64
	if err := r.db.Table("users").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *statsRepository) CountDepartments() (int64, error) {
	var count int64
	if err := r.db.Table("departments").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *statsRepository) GetDepartment(id int64) (*stats.DepartmentInfo, error) {
	var info stats.DepartmentInfo
	err := r.db.Table("departments").
		Select("id, code, name").
		Where("id = ?", id).
		Scan(&info).Error
	if err != nil {
		return nil, err
	}
	if info.ID == 0 {
		return nil, nil
	}
	return &info, nil
}

func (r *statsRepository) RecentMaterials(limit int) ([]stats.RecentMaterial, error) {
	var rows []stats.RecentMaterial
	err := r.db.Table("materials").
		Select("materials.id, materials.title, materials.subject, materials.created_at, " +
			"departments.name AS department_name, users.username AS uploader_username").
		Joins("JOIN departments ON departments.id = materials.department_id").
		Joins("JOIN users ON users.id = materials.uploader_id").
		Order("materials.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statsRepository) TopUploaders(limit int, departmentID *int64) ([]stats.UploaderCount, error) {
	query := r.db.Table("materials").
		Select("users.username, COUNT(materials.id) AS count").
		Joins("JOIN users ON users.id = materials.uploader_id")
	if departmentID != nil {
		query = query.Where("materials.department_id = ?", *departmentID)
	}
	var rows []stats.UploaderCount
	err := query.
		Group("users.id, users.username").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statsRepository) MaterialCountsByDepartment(includeEmpty bool) ([]stats.DepartmentCount, error) {
	query := r.db.Table("departments").
		Select("departments.id AS department_id, departments.code AS department_code, " +
			"departments.name AS department_name, COUNT(materials.id) AS count")
	if includeEmpty {
		query = query.
			Joins("LEFT JOIN materials ON materials.department_id = departments.id").
			Order("departments.code ASC")
	} else {
		query = query.
			Joins("JOIN materials ON materials.department_id = departments.id").
			Order("count DESC")
	}
	var rows []stats.DepartmentCount
	err := query.
		Group("departments.id, departments.code, departments.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statsRepository) MaterialFiles(departmentID *int64) ([][]byte, error) {
	query := r.db.Table("materials")
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	var blobs [][]byte
	if err := query.Pluck("files", &blobs).Error; err != nil {
		return nil, err
	}
	return blobs, nil
}

func (r *statsRepository) MaterialCreationTimes(since time.Time, departmentID *int64) ([]time.Time, error) {
	query := r.db.Table("materials").Where("created_at >= ?", since)
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	var times []time.Time
	if err := query.Pluck("created_at", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}
