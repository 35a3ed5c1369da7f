package material_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tuanngo/material-management/internal/auth"
	materialDatamodel "github.com/tuanngo/material-management/internal/core/datamodel/material"
	"github.com/tuanngo/material-management/internal/material"
)

// Mock repository for testing
type mockMaterialRepository struct {
	rows        map[int64]*material.Row
	createError error
	nextID      int64
}

func newMockMaterialRepository() *mockMaterialRepository {
	return &mockMaterialRepository{
		rows:   make(map[int64]*material.Row),
		nextID: 1,
	}
}

func (m *mockMaterialRepository) Create(record *materialDatamodel.Material) error {
	if m.createError != nil {
		return m.createError
	}
	record.ID = m.nextID
	m.nextID++
	m.rows[record.ID] = &material.Row{
		ID:               record.ID,
		Title:            record.Title,
		Subject:          record.Subject,
		Topic:            record.Topic,
		Files:            []byte(record.Files),
		DepartmentID:     record.DepartmentID,
		UploaderID:       record.UploaderID,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
		DepartmentCode:   "CNTT",
		DepartmentName:   "Công nghệ thông tin",
		UploaderFullName: "Uploader",
		UploaderEmail:    "uploader@example.com",
	}
	return nil
}

func (m *mockMaterialRepository) GetByID(id int64) (*material.Row, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (m *mockMaterialRepository) List(filter material.ListFilter) ([]*material.Row, error) {
	var rows []*material.Row
	for _, row := range m.rows {
		if filter.DepartmentID != nil && row.DepartmentID != *filter.DepartmentID {
			continue
		}
		if filter.Uploader != "" && !strings.Contains(strings.ToLower(row.UploaderFullName), strings.ToLower(filter.Uploader)) {
			continue
		}
		copied := *row
		rows = append(rows, &copied)
	}
	return rows, nil
}

func (m *mockMaterialRepository) UpdateMetadata(id int64, title, subject string, topic *string, departmentID int64) error {
	row, ok := m.rows[id]
	if !ok {
		return errors.New("material not found")
	}
	row.Title = title
	row.Subject = subject
	row.Topic = topic
	row.DepartmentID = departmentID
	row.UpdatedAt = time.Now()
	return nil
}

func (m *mockMaterialRepository) Delete(id int64) error {
	delete(m.rows, id)
	return nil
}

// Mock file store that keeps file contents in memory. Resolve returns the
// public path itself so the stub extractor can use it as a lookup key.
type mockFileStore struct {
	contents map[string]string
	removed  []string
	nextID   int
}

func newMockFileStore() *mockFileStore {
	return &mockFileStore{contents: make(map[string]string)}
}

func (m *mockFileStore) Save(originalName string, src io.Reader) (string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	m.nextID++
	path := fmt.Sprintf("/static/uploads/%03d_%s", m.nextID, originalName)
	m.contents[path] = string(data)
	return path, nil
}

func (m *mockFileStore) Resolve(publicPath string) (string, error) {
	if _, ok := m.contents[publicPath]; !ok {
		return "", errors.New("outside content directory")
	}
	return publicPath, nil
}

func (m *mockFileStore) Exists(publicPath string) bool {
	_, ok := m.contents[publicPath]
	return ok
}

func (m *mockFileStore) Remove(publicPath string) {
	delete(m.contents, publicPath)
	m.removed = append(m.removed, publicPath)
}

type mockDepartmentChecker struct {
	known map[int64]bool
}

func (m *mockDepartmentChecker) Exists(id int64) (bool, error) {
	return m.known[id], nil
}

var _ = Describe("MaterialService", func() {
	var (
		service     *material.Service
		mockRepo    *mockMaterialRepository
		mockStore   *mockFileStore
		departments *mockDepartmentChecker
		extracted   map[string]string
		admin       *auth.User
		superuser   *auth.User
		plainUser   *auth.User
	)

	newUpload := func(category, name, content string) material.FileUpload {
		return material.FileUpload{
			Category: category,
			Name:     name,
			Content:  strings.NewReader(content),
		}
	}

	BeforeEach(func() {
		mockRepo = newMockMaterialRepository()
		mockStore = newMockFileStore()
		departments = &mockDepartmentChecker{known: map[int64]bool{1: true, 2: true}}
		extracted = make(map[string]string)

		extractor := func(path string) (string, error) {
			text, ok := extracted[path]
			if !ok {
				return "", errors.New("extraction failed")
			}
			return text, nil
		}

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = material.NewService(mockRepo, departments, mockStore, extractor, logger)

		admin = &auth.User{ID: 1, Username: "admin", Role: auth.RoleAdmin}
		superuser = &auth.User{ID: 2, Username: "giangvien", Role: auth.RoleSuperuser}
		plainUser = &auth.User{ID: 3, Username: "sinhvien", Role: auth.RoleUser}
	})

	Describe("Create", func() {
		It("rejects plain users regardless of payload", func() {
			_, err := service.Create(plainUser, material.CreateMaterialDTO{
				Title:        "Giáo trình",
				Subject:      "Toán rời rạc",
				DepartmentID: 1,
				Uploads:      []material.FileUpload{newUpload(material.CategoryDocuments, "a.pdf", "x")},
			})
			Expect(err).To(MatchError(material.ErrNotPermitted))
			Expect(mockRepo.rows).To(BeEmpty())
		})

		It("requires at least one file across all buckets", func() {
			_, err := service.Create(superuser, material.CreateMaterialDTO{
				Title:        "Giáo trình",
				Subject:      "Toán rời rạc",
				DepartmentID: 1,
			})
			Expect(err).To(MatchError(material.ErrNoFilesUploaded))
		})

		It("rejects an unknown department before storing anything", func() {
			_, err := service.Create(superuser, material.CreateMaterialDTO{
				Title:        "Giáo trình",
				Subject:      "Toán rời rạc",
				DepartmentID: 99,
				Uploads:      []material.FileUpload{newUpload(material.CategoryDocuments, "a.pdf", "x")},
			})
			Expect(err).To(MatchError(material.ErrDepartmentNotFound))
			Expect(mockStore.contents).To(BeEmpty())
		})

		It("preserves file order and categories through a create/get round trip", func() {
			id, err := service.Create(superuser, material.CreateMaterialDTO{
				Title:        "Bộ tài liệu",
				Subject:      "Lập trình Go",
				Topic:        "Chương 1",
				DepartmentID: 1,
				Uploads: []material.FileUpload{
					newUpload(material.CategoryDocuments, "giao-trinh.pdf", "pdf bytes"),
					newUpload(material.CategoryLectures, "bai-giang.docx", "docx bytes"),
					newUpload(material.CategorySlides, "slide.pptx", "pptx bytes"),
				},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(id).To(BeNumerically(">", 0))

			got, err := service.Get(id)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.UploaderID).To(Equal(superuser.ID))
			Expect(got.Files).To(HaveLen(3))
			Expect(got.Files[0].Category).To(Equal(material.CategoryDocuments))
			Expect(got.Files[0].Name).To(Equal("giao-trinh.pdf"))
			Expect(got.Files[1].Category).To(Equal(material.CategoryLectures))
			Expect(got.Files[2].Category).To(Equal(material.CategorySlides))

			for _, f := range got.Files {
				Expect(mockStore.Exists(f.Path)).To(BeTrue())
			}
		})
	})

	Describe("Get", func() {
		It("returns ErrMaterialNotFound for an unknown id", func() {
			_, err := service.Get(12345)
			Expect(err).To(MatchError(material.ErrMaterialNotFound))
		})
	})

	Describe("Update", func() {
		var materialID int64

		BeforeEach(func() {
			var err error
			materialID, err = service.Create(superuser, material.CreateMaterialDTO{
				Title:        "Đề cương gốc",
				Subject:      "Vật lý",
				DepartmentID: 1,
				Uploads:      []material.FileUpload{newUpload(material.CategoryOutlines, "de-cuong.pdf", "x")},
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("lets the owning superuser edit metadata without touching files", func() {
			updated, err := service.Update(superuser, materialID, material.UpdateMaterialDTO{
				Title:        "Đề cương sửa",
				Subject:      "Vật lý đại cương",
				Topic:        "Học kỳ 1",
				DepartmentID: 2,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Title).To(Equal("Đề cương sửa"))
			Expect(updated.DepartmentID).To(Equal(int64(2)))
			Expect(updated.Files).To(HaveLen(1))
			Expect(updated.Files[0].Name).To(Equal("de-cuong.pdf"))
		})

		It("blocks a superuser editing someone else's material", func() {
			otherSuperuser := &auth.User{ID: 77, Username: "khac", Role: auth.RoleSuperuser}
			_, err := service.Update(otherSuperuser, materialID, material.UpdateMaterialDTO{
				Title:        "Chiếm quyền",
				Subject:      "Vật lý",
				DepartmentID: 1,
			})
			Expect(err).To(MatchError(material.ErrNotPermitted))
		})

		It("lets an admin edit anyone's material", func() {
			updated, err := service.Update(admin, materialID, material.UpdateMaterialDTO{
				Title:        "Admin sửa",
				Subject:      "Vật lý",
				DepartmentID: 1,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Title).To(Equal("Admin sửa"))
		})

		It("rejects moving a material into an unknown department", func() {
			_, err := service.Update(superuser, materialID, material.UpdateMaterialDTO{
				Title:        "Đề cương",
				Subject:      "Vật lý",
				DepartmentID: 99,
			})
			Expect(err).To(MatchError(material.ErrDepartmentNotFound))
		})
	})

	Describe("Delete", func() {
		var materialID int64

		BeforeEach(func() {
			var err error
			materialID, err = service.Create(superuser, material.CreateMaterialDTO{
				Title:        "Sẽ xóa",
				Subject:      "Hóa học",
				DepartmentID: 1,
				Uploads: []material.FileUpload{
					newUpload(material.CategoryDocuments, "a.pdf", "x"),
					newUpload(material.CategoryLectures, "b.docx", "y"),
				},
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("removes the row and every stored file", func() {
			Expect(service.Delete(superuser, materialID)).To(Succeed())

			_, err := service.Get(materialID)
			Expect(err).To(MatchError(material.ErrMaterialNotFound))
			Expect(mockStore.contents).To(BeEmpty())
			Expect(mockStore.removed).To(HaveLen(2))
		})

		It("blocks plain users and other superusers", func() {
			Expect(service.Delete(plainUser, materialID)).To(MatchError(material.ErrNotPermitted))

			other := &auth.User{ID: 88, Role: auth.RoleSuperuser}
			Expect(service.Delete(other, materialID)).To(MatchError(material.ErrNotPermitted))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			_, err := service.Create(superuser, material.CreateMaterialDTO{
				Title:        "Advanced Mathematics",
				Subject:      "Giải tích",
				DepartmentID: 1,
				Uploads:      []material.FileUpload{newUpload(material.CategoryDocuments, "math.pdf", "limits and series")},
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Create(superuser, material.CreateMaterialDTO{
				Title:        "Nhập môn lập trình",
				Subject:      "Tin học cơ sở",
				DepartmentID: 2,
				Uploads:      []material.FileUpload{newUpload(material.CategoryLectures, "intro.docx", "variables and loops")},
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("matches metadata case-insensitively", func() {
			results, err := service.List(material.SearchParams{Search: "MATH"})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].Title).To(Equal("Advanced Mathematics"))
		})

		It("filters by department", func() {
			departmentID := int64(2)
			results, err := service.List(material.SearchParams{DepartmentID: &departmentID})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].Title).To(Equal("Nhập môn lập trình"))
		})

		It("ignores file contents unless content search is requested", func() {
			for path := range mockStore.contents {
				extracted[path] = mockStore.contents[path]
			}

			results, err := service.List(material.SearchParams{Search: "loops"})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(BeEmpty())

			results, err = service.List(material.SearchParams{Search: "loops", SearchContent: true})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].Title).To(Equal("Nhập môn lập trình"))
		})

		It("skips files whose extraction fails instead of erroring", func() {
			// no entries in extracted: every extraction call fails
			results, err := service.List(material.SearchParams{Search: "loops", SearchContent: true})
			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(BeEmpty())
		})
	})
})
