// Package preview renders the first pages of DOCX files and the first slides
// of PPTX files for the on-demand document preview endpoint.
package preview

import "errors"

// Paragraph is one DOCX paragraph with its style label.
type Paragraph struct {
	Text  string `json:"text"`
	Style string `json:"style"`
}

// DocxPreview is the partial rendering of a DOCX file.
type DocxPreview struct {
	Type              string      `json:"type"`
	TotalParagraphs   int         `json:"total_paragraphs"`
	PreviewParagraphs int         `json:"preview_paragraphs"`
	Paragraphs        []Paragraph `json:"paragraphs"`
	EstimatedPages    int         `json:"estimated_pages"`
}

// SlideShape is one text-bearing shape of a PPTX slide.
type SlideShape struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// Slide is one previewed PPTX slide.
type Slide struct {
	SlideNumber int          `json:"slide_number"`
	Content     []SlideShape `json:"content"`
}

// PptxPreview is the partial rendering of a PPTX file.
type PptxPreview struct {
	Type          string  `json:"type"`
	TotalSlides   int     `json:"total_slides"`
	PreviewSlides int     `json:"preview_slides"`
	Slides        []Slide `json:"slides"`
}

var (
	ErrFileIndexOutOfRange = errors.New("file index out of range")
	ErrFileMissing         = errors.New("file not found on disk")
	ErrUnsupportedFormat   = errors.New("only DOCX and PPTX files can be previewed")
)
