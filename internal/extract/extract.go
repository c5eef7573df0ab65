// Package extract pulls plain text out of uploaded lecture documents.
//
// Supported formats:
//   - .pdf: ledongthuc/pdf text extraction
//   - .docx: archive/zip -> word/document.xml
//   - .pptx: archive/zip -> ppt/slides/slideN.xml
//   - .txt, .md: passthrough with whitespace normalization
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxFileSize is the largest document the extractor will accept.
const MaxFileSize = 20 * 1024 * 1024

// ErrEmptyDocument is returned when a document parses but yields no text,
// e.g. a scanned PDF with no embedded text layer.
var ErrEmptyDocument = fmt.Errorf("no extractable text in document")

// Text extracts plain text from content based on the filename's extension.
// Unknown extensions are treated as plain text.
func Text(content []byte, filename string) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("empty document")
	}
	if len(content) > MaxFileSize {
		return "", fmt.Errorf("document too large: %d bytes (max %d)", len(content), MaxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	var text string
	var err error
	switch ext {
	case ".pdf":
		text, err = extractPDF(content)
	case ".docx":
		text, err = extractDOCX(content)
	case ".pptx":
		text, err = extractPPTX(content)
	default:
		text, err = extractPlain(content)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// Supported reports whether the extension (with leading dot) has a
// dedicated parser. Everything else falls back to plain text.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".pptx", ".txt", ".md":
		return true
	}
	return false
}
