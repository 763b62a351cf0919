package driven

import (
	"context"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

// ExportArchive records exported annotation documents.
// Optional: when nil, exports are returned but not archived.
type ExportArchive interface {
	// Record appends an export to the archive.
	Record(ctx context.Context, record domain.ExportRecord) error

	// List returns archived exports, newest first. An empty sessionID lists
	// every session. A limit of zero or less returns all records.
	List(ctx context.Context, sessionID string, limit int) ([]domain.ExportRecord, error)

	// Close releases the archive.
	Close() error
}
