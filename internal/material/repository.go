package material

import (
	"time"

	materialDatamodel "github.com/tuanngo/material-management/internal/core/datamodel/material"
)

// Row is one materials row with uploader and department names joined in.
type Row struct {
	ID               int64
	Title            string
	Subject          string
	Topic            *string
	Files            []byte
	DepartmentID     int64
	UploaderID       int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DepartmentCode   string
	DepartmentName   string
	UploaderFullName string
	UploaderEmail    string
}

// ListFilter is the database-side part of a listing query; substring search
// over metadata happens in memory afterwards.
type ListFilter struct {
	DepartmentID *int64
	Uploader     string
}

type RepositoryAPI interface {
	Create(record *materialDatamodel.Material) error
	GetByID(id int64) (*Row, error)
	List(filter ListFilter) ([]*Row, error)
	UpdateMetadata(id int64, title, subject string, topic *string, departmentID int64) error
	Delete(id int64) error
}

// FromRow converts a repo row into the domain representation.
func FromRow(row *Row) (*Material, error) {
	files, err := DecodeFiles(row.Files)
	if err != nil {
		return nil, err
	}

	return &Material{
		ID:           row.ID,
		Title:        row.Title,
		Subject:      row.Subject,
		Topic:        row.Topic,
		Files:        files,
		DepartmentID: row.DepartmentID,
		UploaderID:   row.UploaderID,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		Department: DepartmentSummary{
			ID:   row.DepartmentID,
			Code: row.DepartmentCode,
			Name: row.DepartmentName,
		},
		Uploader: UploaderSummary{
			ID:       row.UploaderID,
			FullName: row.UploaderFullName,
			Email:    row.UploaderEmail,
		},
	}, nil
}
