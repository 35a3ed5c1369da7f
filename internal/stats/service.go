package stats

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tuanngo/material-management/internal/material"
)

// ErrDepartmentNotFound reports a statistics request for an unknown department.
var ErrDepartmentNotFound = errors.New("department not found")

const (
	recentMaterialsLimit  = 5
	topUploadersLimit     = 5
	overallUploadersLimit = 10
	monthlyWindowMonths   = 12
)

// RepositoryAPI provides the raw counts and rows the aggregations are built
// from. Time-window and per-month bucketing happens in the service so the
// queries stay portable across database engines.
type RepositoryAPI interface {
	CountMaterials(departmentID *int64) (int64, error)
	CountMaterialsSince(since time.Time) (int64, error)
	CountUsers() (int64, error)
	CountDepartments() (int64, error)
	GetDepartment(id int64) (*DepartmentInfo, error)
	RecentMaterials(limit int) ([]RecentMaterial, error)
	TopUploaders(limit int, departmentID *int64) ([]UploaderCount, error)
	MaterialCountsByDepartment(includeEmpty bool) ([]DepartmentCount, error)
	MaterialFiles(departmentID *int64) ([][]byte, error)
	MaterialCreationTimes(since time.Time, departmentID *int64) ([]time.Time, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Dashboard aggregates the landing-page counters: totals, uploads within the
// current day, week and month, the five latest uploads, per-department
// activity and the most active uploaders.
func (s *Service) Dashboard() (*DashboardStats, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := dayStart.AddDate(0, 0, -mondayOffset(now))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	total, err := s.repo.CountMaterials(nil)
	if err != nil {
		return nil, fmt.Errorf("count materials: %w", err)
	}
	today, err := s.repo.CountMaterialsSince(dayStart)
	if err != nil {
		return nil, fmt.Errorf("count materials today: %w", err)
	}
	week, err := s.repo.CountMaterialsSince(weekStart)
	if err != nil {
		return nil, fmt.Errorf("count materials this week: %w", err)
	}
	month, err := s.repo.CountMaterialsSince(monthStart)
	if err != nil {
		return nil, fmt.Errorf("count materials this month: %w", err)
	}
	users, err := s.repo.CountUsers()
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	departments, err := s.repo.CountDepartments()
	if err != nil {
		return nil, fmt.Errorf("count departments: %w", err)
	}
	recent, err := s.repo.RecentMaterials(recentMaterialsLimit)
	if err != nil {
		return nil, fmt.Errorf("recent materials: %w", err)
	}
	byDepartment, err := s.repo.MaterialCountsByDepartment(false)
	if err != nil {
		return nil, fmt.Errorf("materials by department: %w", err)
	}
	uploaders, err := s.repo.TopUploaders(topUploadersLimit, nil)
	if err != nil {
		return nil, fmt.Errorf("top uploaders: %w", err)
	}

	return &DashboardStats{
		TotalMaterials:        total,
		MaterialsToday:        today,
		MaterialsThisWeek:     week,
		MaterialsThisMonth:    month,
		TotalUsers:            users,
		TotalDepartments:      departments,
		RecentMaterials:       recent,
		MaterialsByDepartment: byDepartment,
		TopUploaders:          uploaders,
	}, nil
}

// Department aggregates activity scoped to one department.
func (s *Service) Department(departmentID int64) (*DepartmentStats, error) {
	info, err := s.repo.GetDepartment(departmentID)
	if err != nil {
		return nil, fmt.Errorf("load department: %w", err)
	}
	if info == nil {
		return nil, ErrDepartmentNotFound
	}

	total, err := s.repo.CountMaterials(&departmentID)
	if err != nil {
		return nil, fmt.Errorf("count materials: %w", err)
	}
	byCategory, err := s.categoryCounts(&departmentID)
	if err != nil {
		return nil, err
	}
	monthly, err := s.monthlyCounts(&departmentID)
	if err != nil {
		return nil, err
	}
	uploaders, err := s.repo.TopUploaders(topUploadersLimit, &departmentID)
	if err != nil {
		return nil, fmt.Errorf("top uploaders: %w", err)
	}

	return &DepartmentStats{
		Department:     *info,
		TotalMaterials: total,
		ByCategory:     byCategory,
		Monthly:        monthly,
		TopUploaders:   uploaders,
	}, nil
}

// Overall aggregates system-wide activity, including departments without any
// uploads yet.
func (s *Service) Overall() (*OverallStats, error) {
	total, err := s.repo.CountMaterials(nil)
	if err != nil {
		return nil, fmt.Errorf("count materials: %w", err)
	}
	users, err := s.repo.CountUsers()
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	departments, err := s.repo.CountDepartments()
	if err != nil {
		return nil, fmt.Errorf("count departments: %w", err)
	}
	byDepartment, err := s.repo.MaterialCountsByDepartment(true)
	if err != nil {
		return nil, fmt.Errorf("materials by department: %w", err)
	}
	byCategory, err := s.categoryCounts(nil)
	if err != nil {
		return nil, err
	}
	monthly, err := s.monthlyCounts(nil)
	if err != nil {
		return nil, err
	}
	uploaders, err := s.repo.TopUploaders(overallUploadersLimit, nil)
	if err != nil {
		return nil, fmt.Errorf("top uploaders: %w", err)
	}

	return &OverallStats{
		TotalMaterials:   total,
		TotalUsers:       users,
		TotalDepartments: departments,
		ByDepartment:     byDepartment,
		ByCategory:       byCategory,
		Monthly:          monthly,
		TopUploaders:     uploaders,
	}, nil
}

// categoryCounts decodes every file list in scope and tallies individual
// files per category. Unknown categories and undecodable lists are skipped.
func (s *Service) categoryCounts(departmentID *int64) ([]CategoryCount, error) {
	blobs, err := s.repo.MaterialFiles(departmentID)
	if err != nil {
		return nil, fmt.Errorf("load file lists: %w", err)
	}

	tally := make(map[string]int64, len(material.Categories()))
	for _, blob := range blobs {
		files, err := material.DecodeFiles(blob)
		if err != nil {
			s.logger.Warn("skipping undecodable file list", "error", err)
			continue
		}
		for _, f := range files {
			tally[f.Category]++
		}
	}

	counts := make([]CategoryCount, 0, len(material.Categories()))
	for _, category := range material.Categories() {
		counts = append(counts, CategoryCount{Category: category, Count: tally[category]})
	}
	return counts, nil
}

// monthlyCounts buckets uploads of the trailing twelve calendar months,
// oldest first, with empty months zero-filled.
func (s *Service) monthlyCounts(departmentID *int64) ([]MonthCount, error) {
	now := s.now()
	firstMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(monthlyWindowMonths - 1), 0)

	times, err := s.repo.MaterialCreationTimes(firstMonth, departmentID)
	if err != nil {
		return nil, fmt.Errorf("load creation times: %w", err)
	}

	tally := make(map[string]int64, monthlyWindowMonths)
	for _, t := range times {
		tally[monthLabel(t.In(now.Location()))]++
	}

	counts := make([]MonthCount, 0, monthlyWindowMonths)
	for i := 0; i < monthlyWindowMonths; i++ {
		label := monthLabel(firstMonth.AddDate(0, i, 0))
		counts = append(counts, MonthCount{Month: label, Count: tally[label]})
	}
	return counts, nil
}

func monthLabel(t time.Time) string {
	return t.Format("01/2006")
}

// mondayOffset is the number of days since the most recent Monday.
func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
