package port

import (
	"context"
	"io"

	"focusbot/internal/domain"
)

// TextExtractor converts an uploaded file into a Document.
type TextExtractor interface {
	Extract(ctx context.Context, fileName string, r io.Reader) (*domain.Document, error)
}
