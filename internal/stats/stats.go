// Package stats aggregates upload activity for the dashboard and the
// statistics pages.
package stats

import "time"

// RecentMaterial is one row of the dashboard's latest-uploads list.
type RecentMaterial struct {
	ID               int64     `json:"id" gorm:"column:id"`
	Title            string    `json:"title" gorm:"column:title"`
	Subject          string    `json:"subject" gorm:"column:subject"`
	DepartmentName   string    `json:"department_name" gorm:"column:department_name"`
	UploaderUsername string    `json:"uploader_username" gorm:"column:uploader_username"`
	CreatedAt        time.Time `json:"created_at" gorm:"column:created_at"`
}

// DepartmentCount is a per-department material tally.
type DepartmentCount struct {
	DepartmentID   int64  `json:"department_id" gorm:"column:department_id"`
	DepartmentCode string `json:"department_code" gorm:"column:department_code"`
	DepartmentName string `json:"department_name" gorm:"column:department_name"`
	Count          int64  `json:"count" gorm:"column:count"`
}

// UploaderCount is a per-uploader material tally.
type UploaderCount struct {
	Username string `json:"username" gorm:"column:username"`
	Count    int64  `json:"count" gorm:"column:count"`
}

// CategoryCount is a per-file-category tally, counted over individual files
// rather than materials.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// MonthCount is the material tally of one calendar month, labeled "MM/YYYY".
type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// DepartmentInfo identifies the department a statistics page is scoped to.
type DepartmentInfo struct {
	ID   int64  `json:"id" gorm:"column:id"`
	Code string `json:"code" gorm:"column:code"`
	Name string `json:"name" gorm:"column:name"`
}

// DashboardStats backs the landing dashboard.
type DashboardStats struct {
	TotalMaterials        int64             `json:"total_materials"`
	MaterialsToday        int64             `json:"materials_today"`
	MaterialsThisWeek     int64             `json:"materials_this_week"`
	MaterialsThisMonth    int64             `json:"materials_this_month"`
	TotalUsers            int64             `json:"total_users"`
	TotalDepartments      int64             `json:"total_departments"`
	RecentMaterials       []RecentMaterial  `json:"recent_materials"`
	MaterialsByDepartment []DepartmentCount `json:"materials_by_department"`
	TopUploaders          []UploaderCount   `json:"top_uploaders"`
}

// DepartmentStats backs the per-department statistics page.
type DepartmentStats struct {
	Department     DepartmentInfo  `json:"department"`
	TotalMaterials int64           `json:"total_materials"`
	ByCategory     []CategoryCount `json:"by_category"`
	Monthly        []MonthCount    `json:"monthly"`
	TopUploaders   []UploaderCount `json:"top_uploaders"`
}

// OverallStats backs the system-wide statistics page.
type OverallStats struct {
	TotalMaterials   int64             `json:"total_materials"`
	TotalUsers       int64             `json:"total_users"`
	TotalDepartments int64             `json:"total_departments"`
	ByDepartment     []DepartmentCount `json:"by_department"`
	ByCategory       []CategoryCount   `json:"by_category"`
	Monthly          []MonthCount      `json:"monthly"`
	TopUploaders     []UploaderCount   `json:"top_uploaders"`
}
