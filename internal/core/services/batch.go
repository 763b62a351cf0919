package services

import (
	"context"
	"time"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driving"
	"github.com/custodia-labs/chunk-annotator/internal/logger"
)

// Ensure BatchService implements the interface.
var _ driving.BatchService = (*BatchService)(nil)

// slowBatchThreshold is the duration above which a batch is reported.
const slowBatchThreshold = 100 * time.Millisecond

// BatchService annotates several chunks with partial success semantics.
type BatchService struct {
	annotations driving.AnnotationService
}

// NewBatchService creates a new batch service over a single-chunk annotator.
func NewBatchService(annotations driving.AnnotationService) *BatchService {
	return &BatchService{annotations: annotations}
}

// AnnotateChunks applies each input in order. A failed item does not stop
// the batch and earlier successes are never rolled back.
func (s *BatchService) AnnotateChunks(
	ctx context.Context,
	sessionID string,
	inputs []driving.AnnotateChunkInput,
) *domain.BatchResult {
	start := time.Now()
	result := &domain.BatchResult{
		Results: make([]domain.BatchItemResult, 0, len(inputs)),
	}

	for _, input := range inputs {
		item := domain.BatchItemResult{ChunkID: input.ChunkID}

		annotation, err := s.annotations.AnnotateChunk(ctx, sessionID, input)
		if err != nil {
			item.Error = batchItemError(err)
			result.ErrorCount++
		} else {
			item.Success = true
			item.Data = annotation
			result.SuccessCount++
		}
		result.Results = append(result.Results, item)
	}

	if elapsed := time.Since(start); elapsed > slowBatchThreshold {
		logger.Info("batch annotation took longer than expected",
			"session_id", sessionID,
			"duration", elapsed,
			"total", len(inputs),
		)
	}
	logger.Info("batch annotation completed",
		"session_id", sessionID,
		"total", len(inputs),
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount,
	)

	return result
}

// batchItemError reduces an error to its tag and message.
// Errors outside the annotation taxonomy are reported as InternalError.
func batchItemError(err error) *domain.BatchItemError {
	if e, ok := domain.AsError(err); ok {
		return &domain.BatchItemError{Type: e.Kind, Message: e.Error()}
	}
	return &domain.BatchItemError{Type: domain.KindInternal, Message: err.Error()}
}
