package driven

import (
	"context"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

// SessionStore owns the live annotation sessions.
// Backed by process memory; sessions do not survive a restart.
type SessionStore interface {
	// Create validates the configuration and registers a new active session.
	// Returns InvalidConfig or DuplicateChunkId errors for a bad configuration.
	Create(ctx context.Context, config domain.ChunkConfig) (*domain.SessionCreated, error)

	// Update runs fn with exclusive access to one session and refreshes its
	// last-accessed time. Returns SessionNotFound if the session does not exist.
	// Operations on different sessions never wait on each other.
	Update(ctx context.Context, sessionID string, fn func(*domain.Session) error) error

	// Delete discards a session. Returns SessionNotFound if it does not exist.
	Delete(ctx context.Context, sessionID string) error

	// List returns a summary of every live session ordered by creation time.
	List(ctx context.Context) ([]domain.SessionSummary, error)

	// Count returns the number of live sessions.
	Count() int
}
