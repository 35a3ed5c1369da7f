package department

import (
	"log/slog"

	departmentDatamodel "github.com/tuanngo/material-management/internal/core/datamodel/department"
)

type RepositoryAPI interface {
	GetAll() ([]*departmentDatamodel.Department, error)
	GetByID(id int64) (*departmentDatamodel.Department, error)
	Create(d *departmentDatamodel.Department) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll() ([]*Department, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, err
	}

	departments := make([]*Department, 0, len(records))
	for _, record := range records {
		departments = append(departments, FromDataModel(record))
	}
	return departments, nil
}

// Exists reports whether the department id is known; used to validate
// material create/update targets.
func (s *Service) Exists(id int64) (bool, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	return record != nil, nil
}
