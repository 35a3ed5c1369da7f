package preview

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const (
	docxParagraphsPerPage = 40
	docxMaxPages          = 5
)

// ParseDOCX extracts the leading paragraphs of a DOCX archive, enough to
// cover the first docxMaxPages estimated pages. Page boundaries are a
// heuristic of docxParagraphsPerPage paragraphs per page.
func ParseDOCX(data []byte) (*DocxPreview, error) {
	doc, err := readArchiveFile(data, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("read document body: %w", err)
	}

	paragraphs, err := docxParagraphs(doc)
	if err != nil {
		return nil, fmt.Errorf("parse document body: %w", err)
	}

	limit := docxParagraphsPerPage * docxMaxPages
	shown := paragraphs
	if len(shown) > limit {
		shown = shown[:limit]
	}

	return &DocxPreview{
		Type:              "docx",
		TotalParagraphs:   len(paragraphs),
		PreviewParagraphs: len(shown),
		Paragraphs:        shown,
		EstimatedPages:    len(paragraphs)/docxParagraphsPerPage + 1,
	}, nil
}

// docxParagraphs walks the WordprocessingML token stream collecting each
// <w:p> element: its <w:pStyle> value and the concatenated <w:t> runs,
// including runs nested inside hyperlinks. Empty paragraphs are skipped.
func docxParagraphs(doc []byte) ([]Paragraph, error) {
	decoder := xml.NewDecoder(bytes.NewReader(doc))

	var (
		paragraphs []Paragraph
		depth      int // nesting depth inside the current <w:p>
		text       strings.Builder
		style      string
		inText     bool
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch el := token.(type) {
		case xml.StartElement:
			switch {
			case el.Name.Local == "p" && depth == 0:
				depth = 1
				text.Reset()
				style = "Normal"
			case depth > 0:
				depth++
				switch el.Name.Local {
				case "pStyle":
					for _, attr := range el.Attr {
						if attr.Name.Local == "val" {
							style = attr.Value
						}
					}
				case "t":
					inText = true
				}
			}
		case xml.EndElement:
			if depth == 0 {
				continue
			}
			if el.Name.Local == "t" {
				inText = false
			}
			depth--
			if depth == 0 && el.Name.Local == "p" {
				if content := strings.TrimSpace(text.String()); content != "" {
					paragraphs = append(paragraphs, Paragraph{Text: content, Style: style})
				}
			}
		case xml.CharData:
			if inText {
				text.Write(el)
			}
		}
	}

	return paragraphs, nil
}

func readArchiveFile(data []byte, name string) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("archive entry %s not found", name)
}
