package driven

import (
	"context"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

// Normaliser extracts plain text from a raw document.
// Each normaliser handles specific MIME types (e.g., Markdown, HTML).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise converts a raw document to plain text.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)
}
