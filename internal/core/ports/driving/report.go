package driving

import (
	"context"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

// ReportService provides read-only views over a session.
type ReportService interface {
	// Progress returns annotation coverage for a session.
	Progress(ctx context.Context, sessionID string) (*domain.Progress, error)

	// Export returns one annotation per configured chunk, in configured order.
	Export(ctx context.Context, sessionID string) (*domain.AnnotationExport, error)

	// History returns archived exports, newest first.
	History(ctx context.Context, sessionID string, limit int) ([]domain.ExportRecord, error)
}
