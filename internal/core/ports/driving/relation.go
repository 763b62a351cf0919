package driving

import (
	"context"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

// RelationService records directed relations between chunks.
type RelationService interface {
	// AddRelation records target under relationType on the source chunk's
	// annotation. Adding an existing relation is a no-op that still succeeds.
	AddRelation(ctx context.Context, sessionID, sourceChunkID, targetChunkID, relationType string) (*domain.RelationAdded, error)
}
