package preview_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tuanngo/material-management/internal/preview"
)

var _ = Describe("ParsePPTX", func() {
	It("extracts text shapes with placeholder labels", func() {
		data := buildPptx([][]pptxShape{
			{
				{text: "Bài giảng Go", placeholder: "title"},
				{text: "Nguyễn Văn A"},
			},
			{
				{text: "Nội dung chính", placeholder: "body"},
			},
		})

		result, err := preview.ParsePPTX(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Type).To(Equal("pptx"))
		Expect(result.TotalSlides).To(Equal(2))
		Expect(result.PreviewSlides).To(Equal(2))

		Expect(result.Slides[0].SlideNumber).To(Equal(1))
		Expect(result.Slides[0].Content).To(HaveLen(2))
		Expect(result.Slides[0].Content[0]).To(Equal(preview.SlideShape{Text: "Bài giảng Go", Type: "TITLE"}))
		Expect(result.Slides[0].Content[1].Type).To(Equal("TEXT_BOX"))
		Expect(result.Slides[1].Content[0].Type).To(Equal("BODY"))
	})

	It("limits the preview to the first five slides in numeric order", func() {
		slides := make([][]pptxShape, 12)
		for i := range slides {
			slides[i] = []pptxShape{{text: fmt.Sprintf("Slide %d", i+1)}}
		}

		result, err := preview.ParsePPTX(buildPptx(slides))
		Expect(err).ToNot(HaveOccurred())
		Expect(result.TotalSlides).To(Equal(12))
		Expect(result.PreviewSlides).To(Equal(5))
		for i, slide := range result.Slides {
			// slide10.xml must not sort between slide1 and slide2
			Expect(slide.SlideNumber).To(Equal(i + 1))
			Expect(slide.Content[0].Text).To(Equal(fmt.Sprintf("Slide %d", i+1)))
		}
	})

	It("skips shapes without text", func() {
		data := buildPptx([][]pptxShape{
			{
				{text: "Có chữ"},
				{text: "   "},
			},
		})

		result, err := preview.ParsePPTX(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Slides[0].Content).To(HaveLen(1))
	})

	It("handles a deck without slides", func() {
		data := buildArchive(map[string]string{"ppt/presentation.xml": "<p/>"})
		result, err := preview.ParsePPTX(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(result.TotalSlides).To(BeZero())
		Expect(result.Slides).To(BeEmpty())
	})
})
