// Package input extracts raw renderable text from uploaded files.
// Markdown and plain text pass through untouched; HTML, PDF, and DOCX
// are reduced to their text content first.
package input

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Source extracts renderable text from one file format.
type Source interface {
	Extract(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate source for a filename.
func ForFile(filename string, pdfFallback bool) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md", ".markdown":
		return &TextSource{}, nil
	case ".html", ".htm":
		return &HTMLSource{}, nil
	case ".pdf":
		return &PDFSource{FallbackPdftotext: pdfFallback}, nil
	case ".docx":
		return &DOCXSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
