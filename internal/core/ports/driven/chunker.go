package driven

import (
	"context"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

// Chunker splits normalised text into ordered chunk texts.
type Chunker interface {
	// Name returns the chunker name for logging.
	Name() string

	// Split returns the chunk texts of doc in document order.
	// Only Size and Overlap of opts apply.
	Split(ctx context.Context, doc *domain.Document, opts domain.SplitOptions) ([]string, error)
}
