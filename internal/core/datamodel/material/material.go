package material

import (
	"time"

	"gorm.io/datatypes"
)

// Material persists one catalog record. Files holds the ordered JSON list of
// file descriptors; the in-memory representation lives in the material domain
// package, this column is only the serialization.
type Material struct {
	ID           int64          `gorm:"primaryKey"`
	Title        string         `gorm:"column:title;not null;index"`
	Subject      string         `gorm:"column:subject;not null"`
	Topic        *string        `gorm:"column:topic"`
	Files        datatypes.JSON `gorm:"column:files;not null"`
	DepartmentID int64          `gorm:"column:department_id;not null;index"`
	UploaderID   int64          `gorm:"column:uploader_id;not null;index"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (Material) TableName() string {
	return "materials"
}
