package preview

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tuanngo/material-management/internal/material"
)

// MaterialGetter loads a material with its file list.
type MaterialGetter interface {
	Get(id int64) (*material.Material, error)
}

// FileResolver maps a stored public path to a location on disk.
type FileResolver interface {
	Resolve(publicPath string) (string, error)
}

type Service struct {
	materials MaterialGetter
	files     FileResolver
	logger    *slog.Logger
}

func NewService(materials MaterialGetter, files FileResolver, logger *slog.Logger) *Service {
	return &Service{
		materials: materials,
		files:     files,
		logger:    logger,
	}
}

// Preview renders the file at fileIndex of the given material. The result is
// a *DocxPreview or *PptxPreview depending on the file extension.
func (s *Service) Preview(materialID int64, fileIndex int) (any, error) {
	mat, err := s.materials.Get(materialID)
	if err != nil {
		return nil, err
	}

	if fileIndex < 0 || fileIndex >= len(mat.Files) {
		return nil, ErrFileIndexOutOfRange
	}
	descriptor := mat.Files[fileIndex]

	path, err := s.files.Resolve(descriptor.Path)
	if err != nil {
		return nil, ErrFileMissing
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileMissing
		}
		return nil, fmt.Errorf("read %s: %w", descriptor.Name, err)
	}

	switch strings.ToLower(filepath.Ext(descriptor.Path)) {
	case ".docx":
		result, err := ParseDOCX(data)
		if err != nil {
			s.logger.Error("docx preview failed", "material_id", materialID, "file", descriptor.Name, "error", err)
			return nil, fmt.Errorf("preview %s: %w", descriptor.Name, err)
		}
		return result, nil
	case ".pptx":
		result, err := ParsePPTX(data)
		if err != nil {
			s.logger.Error("pptx preview failed", "material_id", materialID, "file", descriptor.Name, "error", err)
			return nil, fmt.Errorf("preview %s: %w", descriptor.Name, err)
		}
		return result, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}
