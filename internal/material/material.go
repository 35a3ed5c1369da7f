package material

import (
	"encoding/json"
	"errors"
	"time"
)

// The four fixed file-category buckets. Labels are stored verbatim inside
// each material's file list and feed the per-category statistics.
const (
	CategoryDocuments = "Tài liệu"
	CategoryLectures  = "Bài giảng"
	CategoryOutlines  = "Đề cương"
	CategorySlides    = "Trình chiếu"
)

// Categories returns the taxonomy in canonical order.
func Categories() []string {
	return []string{CategoryDocuments, CategoryLectures, CategoryOutlines, CategorySlides}
}

// FileDescriptor is one entry of a material's ordered file list. JSON is only
// the column serialization; in memory the list is always []FileDescriptor.
type FileDescriptor struct {
	Category string `json:"category"`
	Path     string `json:"path"`
	Name     string `json:"name"`
}

// UnmarshalJSON accepts the legacy "type" key written by the pre-migration
// schema alongside the current "category".
func (fd *FileDescriptor) UnmarshalJSON(data []byte) error {
	var raw struct {
		Category string `json:"category"`
		Type     string `json:"type"`
		Path     string `json:"path"`
		Name     string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fd.Category = raw.Category
	if fd.Category == "" {
		fd.Category = raw.Type
	}
	fd.Path = raw.Path
	fd.Name = raw.Name
	return nil
}

// DepartmentSummary is the denormalized department view embedded in
// responses.
type DepartmentSummary struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// UploaderSummary is the denormalized uploader view embedded in responses.
type UploaderSummary struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}

// Material is one catalog record. Files preserves upload order and is
// immutable after creation; only the metadata fields are editable.
type Material struct {
	ID           int64
	Title        string
	Subject      string
	Topic        *string
	Files        []FileDescriptor
	DepartmentID int64
	UploaderID   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Department DepartmentSummary
	Uploader   UploaderSummary
}

var (
	ErrMaterialNotFound   = errors.New("material not found")
	ErrNoFilesUploaded    = errors.New("at least one file is required")
	ErrNotPermitted       = errors.New("role does not permit this operation")
	ErrDepartmentNotFound = errors.New("department not found")
)

// EncodeFiles serializes the file list for the database column.
func EncodeFiles(files []FileDescriptor) ([]byte, error) {
	return json.Marshal(files)
}

// DecodeFiles deserializes the database column back into the ordered list.
func DecodeFiles(data []byte) ([]FileDescriptor, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var files []FileDescriptor
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, err
	}
	return files, nil
}
