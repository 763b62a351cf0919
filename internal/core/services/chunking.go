package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driven"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driving"
	"github.com/custodia-labs/chunk-annotator/internal/logger"
)

// Ensure ChunkingService implements the interface.
var _ driving.ChunkingService = (*ChunkingService)(nil)

// ChunkingService turns source documents into chunk configurations.
type ChunkingService struct {
	normalisers driven.NormaliserRegistry
	chunker     driven.Chunker
}

// NewChunkingService creates a new chunking service.
func NewChunkingService(normalisers driven.NormaliserRegistry, chunker driven.Chunker) *ChunkingService {
	return &ChunkingService{
		normalisers: normalisers,
		chunker:     chunker,
	}
}

// Split normalises raw, splits the text and numbers the chunks from zero.
// The result passes the same validation as session creation.
func (s *ChunkingService) Split(
	ctx context.Context, raw *domain.RawDocument, opts domain.SplitOptions,
) (*domain.ChunkConfig, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	doc, err := s.normalisers.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", raw.URI, err)
	}

	texts, err := s.chunker.Split(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.chunker.Name(), err)
	}

	prefix := opts.IDPrefix
	if prefix == "" {
		prefix = domain.DefaultChunkIDPrefix
	}
	width := max(3, len(strconv.Itoa(len(texts)-1)))

	config := domain.ChunkConfig{Chunks: make([]domain.ConfigChunk, len(texts))}
	for i, text := range texts {
		config.Chunks[i] = domain.ConfigChunk{
			ChunkID:  fmt.Sprintf("%s-%0*d", prefix, width, i),
			Position: i,
			Text:     text,
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger.Info("document split",
		"uri", doc.URI, "format", doc.Format, "title", doc.Title, "chunks", len(config.Chunks))
	return &config, nil
}
