package material

import (
	"io"
	"strings"
	"time"

	"github.com/tuanngo/material-management/internal"
)

// FileUpload is one incoming file assigned to a category bucket.
type FileUpload struct {
	Category string
	Name     string
	Content  io.Reader
}

// CreateMaterialDTO carries the multipart upload form.
type CreateMaterialDTO struct {
	Title        string
	Subject      string
	Topic        string
	DepartmentID int64
	Uploads      []FileUpload
}

func (dto CreateMaterialDTO) Validate() error {
	return validateMetadata(dto.Title, dto.Subject, dto.DepartmentID)
}

// UpdateMaterialDTO carries the metadata-only edit form. The file list is
// never part of an update.
type UpdateMaterialDTO struct {
	Title        string
	Subject      string
	Topic        string
	DepartmentID int64
}

func (dto UpdateMaterialDTO) Validate() error {
	return validateMetadata(dto.Title, dto.Subject, dto.DepartmentID)
}

func validateMetadata(title, subject string, departmentID int64) error {
	if strings.TrimSpace(title) == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(subject) == "" {
		return internal.NewValidationError("subject is required", internal.ErrCodeValidationFailed)
	}
	if departmentID <= 0 {
		return internal.NewValidationError("department_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// SearchParams selects and filters the material listing.
type SearchParams struct {
	DepartmentID  *int64
	Uploader      string
	Search        string
	SearchContent bool
}

type ListItem struct {
	ID         int64             `json:"id"`
	Title      string            `json:"title"`
	Subject    string            `json:"subject"`
	Topic      *string           `json:"topic"`
	Files      []FileDescriptor  `json:"files"`
	Department DepartmentSummary `json:"department"`
	Uploader   UploaderSummary   `json:"uploader"`
	CreatedAt  time.Time         `json:"created_at"`
}

type Detail struct {
	ListItem
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Material) ToListItem() ListItem {
	uploader := m.Uploader
	uploader.Email = ""
	return ListItem{
		ID:         m.ID,
		Title:      m.Title,
		Subject:    m.Subject,
		Topic:      m.Topic,
		Files:      m.Files,
		Department: m.Department,
		Uploader:   uploader,
		CreatedAt:  m.CreatedAt,
	}
}

func (m *Material) ToDetail() Detail {
	item := m.ToListItem()
	item.Uploader.Email = m.Uploader.Email
	return Detail{
		ListItem:  item,
		UpdatedAt: m.UpdatedAt,
	}
}
