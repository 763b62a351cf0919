package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driven"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driving"
	"github.com/custodia-labs/chunk-annotator/internal/logger"
)

// Ensure RelationService implements the interface.
var _ driving.RelationService = (*RelationService)(nil)

// RelationService records directed relations between chunks of one session.
type RelationService struct {
	store driven.SessionStore
	now   func() time.Time
}

// NewRelationService creates a new relation service.
func NewRelationService(store driven.SessionStore) *RelationService {
	return &RelationService{store: store, now: time.Now}
}

// AddRelation records targetChunkID under relationType on the source
// annotation, creating an empty source annotation if needed. Self relations
// are allowed and a repeated relation succeeds without being stored twice.
func (s *RelationService) AddRelation(
	ctx context.Context,
	sessionID, sourceChunkID, targetChunkID, relationType string,
) (*domain.RelationAdded, error) {
	var kind domain.RelationType

	err := s.store.Update(ctx, sessionID, func(session *domain.Session) error {
		var err error
		kind, err = domain.ValidateRelationType(relationType)
		if err != nil {
			return err
		}

		source, ok := session.Chunk(sourceChunkID)
		if !ok {
			return domain.NewTargetNotFound(sourceChunkID,
				fmt.Sprintf("Source chunk not found in session: %s", sourceChunkID))
		}
		if !session.HasChunk(targetChunkID) {
			return domain.NewTargetNotFound(targetChunkID,
				fmt.Sprintf("Target chunk not found in session: %s", targetChunkID))
		}

		annotation, ok := session.Annotation(sourceChunkID)
		if !ok {
			annotation = domain.NewChunkAnnotation(source)
		}
		annotation.AddRelation(kind, targetChunkID)
		session.SaveAnnotation(sourceChunkID, annotation, s.now())
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.NewTargetNotFound(sourceChunkID,
				fmt.Sprintf("Session not found: %s", sessionID))
		}
		return nil, err
	}

	logger.Info("relation added",
		"session_id", sessionID,
		"source_chunk_id", sourceChunkID,
		"target_chunk_id", targetChunkID,
		"relation_type", kind,
	)

	return &domain.RelationAdded{
		Message:       "Relation added",
		SourceChunkID: sourceChunkID,
		TargetChunkID: targetChunkID,
		RelationType:  kind,
	}, nil
}
