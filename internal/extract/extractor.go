// Package extract turns uploaded files into paginated plain text.
package extract

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"focusbot/internal/domain"
)

// Extractor implements port.TextExtractor for pdf, docx and txt files.
type Extractor struct {
	now func() time.Time
}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// Extract reads r fully and dispatches on the format implied by fileName.
// Unknown formats produce a single placeholder page instead of an error.
func (e *Extractor) Extract(ctx context.Context, fileName string, r io.Reader) (*domain.Document, error) {
	format := domain.FormatFromName(fileName)
	if !format.Supported() {
		log.Printf("extract.Extract: unsupported file type for %q", fileName)
		return e.document(fileName, format, []string{domain.UnsupportedFileMarker}), nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var pages []string
	switch format {
	case domain.FormatPDF:
		pages, err = extractPDF(ctx, data)
	case domain.FormatDOCX:
		pages, err = extractDOCX(data)
	case domain.FormatTXT:
		pages, err = extractTXT(data)
	}
	if err != nil {
		return nil, err
	}
	return e.document(fileName, format, pages), nil
}

func (e *Extractor) document(fileName string, format domain.Format, pages []string) *domain.Document {
	return &domain.Document{
		ID:         uuid.New(),
		FileName:   fileName,
		Format:     format,
		Pages:      pages,
		UploadedAt: e.now(),
	}
}
