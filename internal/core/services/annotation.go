package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driven"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driving"
	"github.com/custodia-labs/chunk-annotator/internal/logger"
)

// Ensure AnnotationService implements the interface.
var _ driving.AnnotationService = (*AnnotationService)(nil)

// AnnotationService validates and merges chunk annotations.
type AnnotationService struct {
	store driven.SessionStore
	now   func() time.Time
}

// NewAnnotationService creates a new annotation service.
func NewAnnotationService(store driven.SessionStore) *AnnotationService {
	return &AnnotationService{store: store, now: time.Now}
}

// AnnotateChunk validates the input, merges it with any stored annotation and
// stores the result under the configured chunk id. Nothing is written when
// any check fails.
func (s *AnnotationService) AnnotateChunk(
	ctx context.Context,
	sessionID string,
	input driving.AnnotateChunkInput,
) (*domain.ChunkAnnotation, error) {
	var result domain.ChunkAnnotation

	err := s.store.Update(ctx, sessionID, func(session *domain.Session) error {
		chunk, ok := session.Chunk(input.ChunkID)
		if !ok {
			return domain.NewChunkNotFound(input.ChunkID,
				fmt.Sprintf("Chunk not found in session: %s", input.ChunkID))
		}

		patch, err := validateAnnotation(input)
		if err != nil {
			return err
		}

		var existing *domain.ChunkAnnotation
		if stored, ok := session.Annotation(input.ChunkID); ok {
			existing = &stored
		}

		result = domain.Merge(chunk, existing, patch)
		session.SaveAnnotation(input.ChunkID, result, s.now())
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.NewChunkNotFound(input.ChunkID,
				fmt.Sprintf("Session not found: %s", sessionID))
		}
		return nil, err
	}

	logger.Debug("chunk annotated", "session_id", sessionID, "chunk_id", input.ChunkID)
	return &result, nil
}

// validateAnnotation checks the raw vocabulary values in order: categories,
// then labels, then subtypes. The first failure is returned.
func validateAnnotation(input driving.AnnotateChunkInput) (domain.AnnotationPatch, error) {
	patch := domain.AnnotationPatch{
		Keywords: input.Keywords,
		Tags:     input.Tags,
		Notes:    input.Notes,
		Summary:  input.Summary,
	}

	for _, raw := range input.Categories {
		c, err := domain.ValidateCategory(raw)
		if err != nil {
			return patch, err
		}
		patch.Categories = append(patch.Categories, c)
	}

	for _, raw := range input.Labels {
		l, err := domain.ValidateLabel(raw)
		if err != nil {
			return patch, err
		}
		patch.Labels = append(patch.Labels, l)
	}

	if len(input.Subtypes) == 0 {
		return patch, nil
	}

	keys := make([]string, 0, len(input.Subtypes))
	for k := range input.Subtypes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	patch.Subtypes = make(map[domain.Category]domain.Subtype, len(keys))
	for _, key := range keys {
		raw := input.Subtypes[key]

		category, err := domain.ValidateCategory(key)
		if err != nil {
			return patch, err
		}
		if !containsCategory(patch.Categories, category) {
			return patch, domain.NewSubtypeCategoryMismatch(key, raw)
		}
		subtype, err := domain.ValidateSubtypeForCategory(category, raw)
		if err != nil {
			return patch, err
		}
		patch.Subtypes[category] = subtype
	}
	return patch, nil
}

func containsCategory(categories []domain.Category, c domain.Category) bool {
	for _, existing := range categories {
		if existing == c {
			return true
		}
	}
	return false
}
