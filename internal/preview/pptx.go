package preview

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

const pptxMaxSlides = 5

// ParsePPTX extracts the text shapes of the first pptxMaxSlides slides of a
// PPTX archive. Slides are ordered by their number in the archive path, not
// by archive entry order.
func ParsePPTX(data []byte) (*PptxPreview, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	type slideEntry struct {
		number int
		file   *zip.File
	}
	var entries []slideEntry
	for _, f := range reader.File {
		number, ok := slideNumber(f.Name)
		if !ok {
			continue
		}
		entries = append(entries, slideEntry{number: number, file: f})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].number < entries[j].number })

	total := len(entries)
	if len(entries) > pptxMaxSlides {
		entries = entries[:pptxMaxSlides]
	}

	slides := make([]Slide, 0, len(entries))
	for _, entry := range entries {
		rc, err := entry.file.Open()
		if err != nil {
			return nil, fmt.Errorf("open slide %d: %w", entry.number, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read slide %d: %w", entry.number, err)
		}
		shapes, err := slideShapes(raw)
		if err != nil {
			return nil, fmt.Errorf("parse slide %d: %w", entry.number, err)
		}
		slides = append(slides, Slide{SlideNumber: entry.number, Content: shapes})
	}

	return &PptxPreview{
		Type:          "pptx",
		TotalSlides:   total,
		PreviewSlides: len(slides),
		Slides:        slides,
	}, nil
}

// slideNumber parses N out of "ppt/slides/slideN.xml".
func slideNumber(name string) (int, bool) {
	if !strings.HasPrefix(name, "ppt/slides/slide") || !strings.HasSuffix(name, ".xml") {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, "ppt/slides/slide"), ".xml")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// slideShapes walks a DrawingML slide collecting each <p:sp> shape that
// carries text. The shape label comes from its placeholder type when one is
// declared, otherwise the shape is reported as a plain text box.
func slideShapes(doc []byte) ([]SlideShape, error) {
	decoder := xml.NewDecoder(bytes.NewReader(doc))

	var (
		shapes  []SlideShape
		inShape bool
		label   string
		text    strings.Builder
		inText  bool
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
			switch el.Name.Local {
			case "sp":
				inShape = true
				label = "TEXT_BOX"
				text.Reset()
			case "ph":
				if inShape {
					label = placeholderLabel(el)
				}
			case "t":
				if inShape {
					inText = true
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				if inShape {
					text.WriteString("\n")
				}
			case "sp":
				if inShape {
					if content := strings.TrimSpace(text.String()); content != "" {
						shapes = append(shapes, SlideShape{Text: content, Type: label})
					}
					inShape = false
				}
			}
		case xml.CharData:
			if inText {
				text.Write(el)
			}
		}
	}

	return shapes, nil
}

func placeholderLabel(el xml.StartElement) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == "type" {
			return strings.ToUpper(attr.Value)
		}
	}
	// A <p:ph> without a type attribute is a body placeholder.
	return "BODY"
}
