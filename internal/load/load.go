// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package load reads a PDF's text content and slices it into size-bounded
// chunks suitable for a single model request.
package load

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor pulls the plain text out of a document file. Different
// backends implement this interface; tests supply fakes.
type TextExtractor interface {
	// ExtractText reads the file at path and returns its text content.
	ExtractText(path string) (string, error)
}

// PDFExtractor implements TextExtractor using github.com/ledongthuc/pdf.
// Only the embedded text layer is read; scanned documents without one
// yield empty output.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText extracts the plain text of the PDF at path.
func (e *PDFExtractor) ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("reading text from %s: %w", path, err)
	}

	return strings.TrimSpace(string(content)), nil
}

// Loader combines a TextExtractor with a chunker.
type Loader struct {
	extractor TextExtractor
	chunkSize int
}

// NewLoader creates a Loader that splits extracted text into chunks of at
// most chunkSize characters. A chunkSize of 0 or less uses the default.
func NewLoader(extractor TextExtractor, chunkSize int) *Loader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Loader{extractor: extractor, chunkSize: chunkSize}
}

// Load extracts the text of the document at path and returns it as one or
// more chunks, each within the loader's character budget.
func (l *Loader) Load(path string) ([]string, error) {
	text, err := l.extractor.ExtractText(path)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("no text content in %s", path)
	}
	return Chunk(text, l.chunkSize)
}
