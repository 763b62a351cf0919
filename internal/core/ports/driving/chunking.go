package driving

import (
	"context"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

// ChunkingService turns source documents into chunk configurations.
type ChunkingService interface {
	// Split normalises raw and splits it into a configuration ready for
	// session creation. Chunk ids are {prefix}-{position}, zero padded.
	Split(ctx context.Context, raw *domain.RawDocument, opts domain.SplitOptions) (*domain.ChunkConfig, error)
}
