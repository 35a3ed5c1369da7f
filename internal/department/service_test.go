package department_test

import (
	"errors"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	departmentDatamodel "github.com/tuanngo/material-management/internal/core/datamodel/department"
	"github.com/tuanngo/material-management/internal/department"
)

type mockDepartmentRepository struct {
	records []*departmentDatamodel.Department
	err     error
}

func (m *mockDepartmentRepository) GetAll() ([]*departmentDatamodel.Department, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func (m *mockDepartmentRepository) GetByID(id int64) (*departmentDatamodel.Department, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, record := range m.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, nil
}

func (m *mockDepartmentRepository) Create(d *departmentDatamodel.Department) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, d)
	return nil
}

var _ = Describe("Department Service", func() {
	var (
		repo    *mockDepartmentRepository
		service *department.Service
	)

	BeforeEach(func() {
		description := "Khoa Công nghệ thông tin"
		repo = &mockDepartmentRepository{
			records: []*departmentDatamodel.Department{
				{ID: 1, Code: "CNTT", Name: "Công nghệ thông tin", Description: &description},
				{ID: 2, Code: "TOAN", Name: "Toán học"},
			},
		}
		service = department.NewService(repo, slog.Default())
	})

	Describe("GetAll", func() {
		It("returns all departments as domain objects", func() {
			departments, err := service.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(departments).To(HaveLen(2))
			Expect(departments[0].Code).To(Equal("CNTT"))
			Expect(*departments[0].Description).To(ContainSubstring("Công nghệ"))
			Expect(departments[1].Name).To(Equal("Toán học"))
			Expect(departments[1].Description).To(BeNil())
		})

		It("propagates repository errors", func() {
			repo.err = errors.New("connection refused")
			_, err := service.GetAll()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Exists", func() {
		It("reports true for a known department", func() {
			exists, err := service.Exists(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("reports false for an unknown department", func() {
			exists, err := service.Exists(99)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("propagates repository errors", func() {
			repo.err = errors.New("connection refused")
			_, err := service.Exists(1)
			Expect(err).To(HaveOccurred())
		})
	})
})
