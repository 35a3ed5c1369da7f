package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tuanngo/material-management/internal"
)

// FileStore persists uploaded material files in a flat content directory and
// addresses them through a public path prefix. The directory comes from
// configuration; nothing in here is a package-level constant.
type FileStore struct {
	contentDir   string
	publicPrefix string
	logger       *slog.Logger
}

func NewFileStore(cfg internal.StorageConfig, lg *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(cfg.ContentDir, 0o755); err != nil {
		return nil, fmt.Errorf("create content directory: %w", err)
	}
	return &FileStore{
		contentDir:   cfg.ContentDir,
		publicPrefix: strings.TrimSuffix(cfg.PublicPrefix, "/"),
		logger:       lg,
	}, nil
}

// Save writes src under a generated unique name and returns the public path.
// Uniqueness relies on the microsecond timestamp prefix; same-name collisions
// within a microsecond are not guarded.
func (fs *FileStore) Save(originalName string, src io.Reader) (string, error) {
	name := fs.uniqueName(originalName)
	path := filepath.Join(fs.contentDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}

	return fs.publicPrefix + "/" + name, nil
}

func (fs *FileStore) uniqueName(originalName string) string {
	now := time.Now()
	base := filepath.Base(originalName)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s_%06d_%s", now.Format("20060102_150405"), now.Nanosecond()/1000, base)
}

// Resolve maps a stored public path back to the on-disk location.
func (fs *FileStore) Resolve(publicPath string) (string, error) {
	if !strings.HasPrefix(publicPath, fs.publicPrefix+"/") {
		return "", fmt.Errorf("path %q is outside the content prefix", publicPath)
	}
	name := filepath.Base(strings.TrimPrefix(publicPath, fs.publicPrefix+"/"))
	return filepath.Join(fs.contentDir, name), nil
}

// Exists reports whether the referenced file is present on disk.
func (fs *FileStore) Exists(publicPath string) bool {
	path, err := fs.Resolve(publicPath)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Remove deletes the referenced file, ignoring files already gone.
func (fs *FileStore) Remove(publicPath string) {
	path, err := fs.Resolve(publicPath)
	if err != nil {
		fs.logger.Warn("refusing to remove file outside content dir", "path", publicPath)
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := os.Remove(path); err != nil {
		fs.logger.Warn("failed to remove file", "path", path, "error", err)
	}
}

// ContentDir exposes the configured directory for the static file server.
func (fs *FileStore) ContentDir() string {
	return fs.contentDir
}

// PublicPrefix exposes the configured public path prefix.
func (fs *FileStore) PublicPrefix() string {
	return fs.publicPrefix
}
