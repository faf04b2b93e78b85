// Package extract turns uploaded résumé files into plain UTF-8 text.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/resumecoach/server/internal/domain"
)

// allowedExtensions is the set of declared file types the service accepts.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

// Supported reports whether the filename carries an accepted extension.
// The match is case-insensitive.
func Supported(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Extractor implements domain.TextExtractor over pdf, docx and txt files.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract dispatches on the file extension and returns the document's plain
// text. An empty result after trimming counts as a failed extraction.
func (e *Extractor) Extract(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = extractPDFText(data)
	case ".docx":
		text, err = extractDocxText(data)
	case ".txt":
		text, err = extractPlainText(data)
	default:
		return "", domain.NewError(domain.ErrorUnsupportedFormat,
			fmt.Sprintf("unsupported file type: %s", ext), nil)
	}
	if err != nil {
		return "", domain.NewError(domain.ErrorExtractionFailed, "could not extract text", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.NewError(domain.ErrorExtractionFailed, "document contains no text", nil)
	}
	return text, nil
}

func extractPDFText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(reader.Len()))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTag          = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	// GetContent returns the raw document XML; keep paragraph breaks and
	// drop the rest of the markup.
	content := doc.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTag.ReplaceAllString(content, "")
	return content, nil
}

func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8")
	}
	return string(data), nil
}
