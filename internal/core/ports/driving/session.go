package driving

import (
	"context"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

// SessionService manages annotation sessions.
type SessionService interface {
	// Start creates a session from a chunk configuration.
	Start(ctx context.Context, config domain.ChunkConfig) (*domain.SessionCreated, error)

	// List returns every live session.
	List(ctx context.Context) ([]domain.SessionSummary, error)

	// Delete discards a session and all of its annotations.
	Delete(ctx context.Context, sessionID string) error
}
