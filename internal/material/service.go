package material

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/tuanngo/material-management/internal/auth"
	materialDatamodel "github.com/tuanngo/material-management/internal/core/datamodel/material"
	"gorm.io/datatypes"
)

// FileStore is the content-directory surface the catalog needs.
type FileStore interface {
	Save(originalName string, src io.Reader) (publicPath string, err error)
	Resolve(publicPath string) (string, error)
	Exists(publicPath string) bool
	Remove(publicPath string)
}

// DepartmentChecker validates create/update targets.
type DepartmentChecker interface {
	Exists(id int64) (bool, error)
}

// TextExtractor feeds the opt-in content search.
type TextExtractor func(path string) (string, error)

type Service struct {
	repo        RepositoryAPI
	departments DepartmentChecker
	store       FileStore
	extract     TextExtractor
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, departments DepartmentChecker, store FileStore, extract TextExtractor, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		store:       store,
		extract:     extract,
		logger:      logger,
	}
}

// Create stores every uploaded file and commits the material row. Requires
// an uploader role and at least one file across the four buckets.
func (s *Service) Create(user *auth.User, dto CreateMaterialDTO) (int64, error) {
	if !user.Role.CanUploadMaterial() {
		return 0, ErrNotPermitted
	}

	if err := dto.Validate(); err != nil {
		return 0, err
	}

	if len(dto.Uploads) == 0 {
		return 0, ErrNoFilesUploaded
	}

	exists, err := s.departments.Exists(dto.DepartmentID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrDepartmentNotFound
	}

	files := make([]FileDescriptor, 0, len(dto.Uploads))
	for _, upload := range dto.Uploads {
		publicPath, err := s.store.Save(upload.Name, upload.Content)
		if err != nil {
			s.logger.Error("failed to store uploaded file", "name", upload.Name, "error", err)
			return 0, err
		}
		files = append(files, FileDescriptor{
			Category: upload.Category,
			Path:     publicPath,
			Name:     upload.Name,
		})
	}

	encoded, err := EncodeFiles(files)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	record := &materialDatamodel.Material{
		Title:        dto.Title,
		Subject:      dto.Subject,
		Topic:        optional(dto.Topic),
		Files:        datatypes.JSON(encoded),
		DepartmentID: dto.DepartmentID,
		UploaderID:   user.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(record); err != nil {
		return 0, err
	}

	s.logger.Info("material created", "material_id", record.ID, "uploader_id", user.ID, "files", len(files))
	return record.ID, nil
}

// Get returns one material with its joined summaries.
func (s *Service) Get(id int64) (*Material, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrMaterialNotFound
	}
	return FromRow(row)
}

// List applies the database filter, then the in-memory metadata search and,
// when opted in, the per-file content search.
func (s *Service) List(params SearchParams) ([]*Material, error) {
	rows, err := s.repo.List(ListFilter{
		DepartmentID: params.DepartmentID,
		Uploader:     params.Uploader,
	})
	if err != nil {
		return nil, err
	}

	materials := make([]*Material, 0, len(rows))
	for _, row := range rows {
		m, err := FromRow(row)
		if err != nil {
			s.logger.Warn("skipping material with undecodable file list", "material_id", row.ID, "error", err)
			continue
		}
		materials = append(materials, m)
	}

	if params.Search == "" {
		return materials, nil
	}

	query := strings.ToLower(params.Search)
	matched := make([]*Material, 0, len(materials))
	for _, m := range materials {
		if m.matchesMetadata(query) {
			matched = append(matched, m)
			continue
		}
		if params.SearchContent && s.matchesContent(m, query) {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

func (m *Material) matchesMetadata(query string) bool {
	if strings.Contains(strings.ToLower(m.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(m.Subject), query) {
		return true
	}
	if m.Topic != nil && strings.Contains(strings.ToLower(*m.Topic), query) {
		return true
	}
	return false
}

// matchesContent scans the material's files on disk, stopping at the first
// hit. Extraction failures are logged and skipped, never propagated.
func (s *Service) matchesContent(m *Material, query string) bool {
	for _, file := range m.Files {
		path, err := s.store.Resolve(file.Path)
		if err != nil || !s.store.Exists(file.Path) {
			continue
		}
		text, err := s.extract(path)
		if err != nil {
			s.logger.Warn("content extraction failed", "material_id", m.ID, "path", file.Path, "error", err)
			continue
		}
		if strings.Contains(strings.ToLower(text), query) {
			return true
		}
	}
	return false
}

// Update edits metadata only; the file list is untouched by design of the
// catalog lifecycle.
func (s *Service) Update(user *auth.User, id int64, dto UpdateMaterialDTO) (*Material, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !user.Role.CanModifyMaterial(existing.UploaderID, user.ID) {
		return nil, ErrNotPermitted
	}

	exists, err := s.departments.Exists(dto.DepartmentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrDepartmentNotFound
	}

	if err := s.repo.UpdateMetadata(id, dto.Title, dto.Subject, optional(dto.Topic), dto.DepartmentID); err != nil {
		return nil, err
	}

	return s.Get(id)
}

// Delete removes every referenced file from disk, then the row. Missing
// files are skipped silently.
func (s *Service) Delete(user *auth.User, id int64) error {
	existing, err := s.Get(id)
	if err != nil {
		return err
	}

	if !user.Role.CanModifyMaterial(existing.UploaderID, user.ID) {
		return ErrNotPermitted
	}

	for _, file := range existing.Files {
		s.store.Remove(file.Path)
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.logger.Info("material deleted", "material_id", id, "by", user.ID)
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
