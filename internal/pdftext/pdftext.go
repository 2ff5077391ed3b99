package pdftext

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Extractor defines the interface for PDF text extraction
type Extractor interface {
	// ExtractText returns the concatenated page text of a PDF document
	ExtractText(pdfData []byte) (string, error)
}

// Fitz implements the Extractor interface using MuPDF via go-fitz
type Fitz struct{}

// NewFitz creates a new Fitz extractor
func NewFitz() *Fitz {
	return &Fitz{}
}

// ExtractText extracts the text of every page in order, separated by
// newlines. Page breaks survive as blank lines; the parser's line
// normalizer drops them.
func (f *Fitz) ExtractText(pdfData []byte) (string, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	var text strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		pageText, err := doc.Text(page)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", page, err)
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	return text.String(), nil
}
