package driving

import (
	"context"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

// AnnotateChunkInput is a partial annotation for one chunk.
//
// Categories, Labels and Subtypes replace the stored values only when
// non-empty. Keywords, Tags, Notes and Summary replace the stored values
// whenever they are non-nil, including an explicit empty value.
type AnnotateChunkInput struct {
	// ChunkID is the configured chunk id.
	ChunkID string

	// Categories are raw category names, validated against the vocabulary.
	Categories []string

	// Labels are raw label names, validated against the vocabulary.
	Labels []string

	// Subtypes maps a raw category name to a raw subtype name.
	Subtypes map[string]string

	Keywords *[]string
	Tags     *[]string
	Notes    *string
	Summary  *string
}

// AnnotationService annotates single chunks.
type AnnotationService interface {
	// AnnotateChunk validates the input, merges it with any stored annotation
	// and returns the stored result.
	AnnotateChunk(ctx context.Context, sessionID string, input AnnotateChunkInput) (*domain.ChunkAnnotation, error)
}

// BatchService annotates several chunks with partial success semantics.
type BatchService interface {
	// AnnotateChunks applies every input in order. It never fails as a whole;
	// per-item failures are reported in the result.
	AnnotateChunks(ctx context.Context, sessionID string, inputs []AnnotateChunkInput) *domain.BatchResult
}
