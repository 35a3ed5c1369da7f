package preview_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tuanngo/material-management/internal/material"
	"github.com/tuanngo/material-management/internal/preview"
)

type mockMaterialGetter struct {
	materials map[int64]*material.Material
}

func (m *mockMaterialGetter) Get(id int64) (*material.Material, error) {
	mat, ok := m.materials[id]
	if !ok {
		return nil, material.ErrMaterialNotFound
	}
	return mat, nil
}

// mockFileResolver maps a public path onto a directory on disk.
type mockFileResolver struct {
	dir string
}

func (m *mockFileResolver) Resolve(publicPath string) (string, error) {
	if publicPath == "" {
		return "", errors.New("empty path")
	}
	return filepath.Join(m.dir, filepath.Base(publicPath)), nil
}

var _ = Describe("PreviewService", func() {
	var (
		service  *preview.Service
		getter   *mockMaterialGetter
		dir      string
		docxData []byte
		pptxData []byte
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		getter = &mockMaterialGetter{materials: make(map[int64]*material.Material)}

		docxData = buildDocx([]docxParagraph{{text: "Chương 1", style: "Heading1"}})
		pptxData = buildPptx([][]pptxShape{{{text: "Slide đầu", placeholder: "title"}}})

		Expect(os.WriteFile(filepath.Join(dir, "giao-trinh.docx"), docxData, 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "slide.pptx"), pptxData, 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "tai-lieu.pdf"), []byte("%PDF-1.4"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "hong.docx"), []byte("not a zip"), 0o644)).To(Succeed())

		getter.materials[1] = &material.Material{
			ID: 1,
			Files: []material.FileDescriptor{
				{Category: material.CategoryLectures, Path: "/static/uploads/giao-trinh.docx", Name: "giao-trinh.docx"},
				{Category: material.CategorySlides, Path: "/static/uploads/slide.pptx", Name: "slide.pptx"},
				{Category: material.CategoryDocuments, Path: "/static/uploads/tai-lieu.pdf", Name: "tai-lieu.pdf"},
				{Category: material.CategoryDocuments, Path: "/static/uploads/mat-tich.docx", Name: "mat-tich.docx"},
				{Category: material.CategoryDocuments, Path: "/static/uploads/hong.docx", Name: "hong.docx"},
			},
		}

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = preview.NewService(getter, &mockFileResolver{dir: dir}, logger)
	})

	It("renders a DOCX file", func() {
		result, err := service.Preview(1, 0)
		Expect(err).ToNot(HaveOccurred())

		docx, ok := result.(*preview.DocxPreview)
		Expect(ok).To(BeTrue())
		Expect(docx.Paragraphs[0].Text).To(Equal("Chương 1"))
	})

	It("renders a PPTX file", func() {
		result, err := service.Preview(1, 1)
		Expect(err).ToNot(HaveOccurred())

		pptx, ok := result.(*preview.PptxPreview)
		Expect(ok).To(BeTrue())
		Expect(pptx.Slides[0].Content[0].Text).To(Equal("Slide đầu"))
	})

	It("rejects formats other than DOCX and PPTX", func() {
		_, err := service.Preview(1, 2)
		Expect(err).To(MatchError(preview.ErrUnsupportedFormat))
	})

	It("reports an unknown material", func() {
		_, err := service.Preview(99, 0)
		Expect(err).To(MatchError(material.ErrMaterialNotFound))
	})

	It("reports an out-of-range file index", func() {
		_, err := service.Preview(1, 5)
		Expect(err).To(MatchError(preview.ErrFileIndexOutOfRange))

		_, err = service.Preview(1, -1)
		Expect(err).To(MatchError(preview.ErrFileIndexOutOfRange))
	})

	It("reports a file that is missing on disk", func() {
		_, err := service.Preview(1, 3)
		Expect(err).To(MatchError(preview.ErrFileMissing))
	})

	It("surfaces the parse failure for a corrupt archive", func() {
		_, err := service.Preview(1, 4)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("hong.docx"))
	})
})
