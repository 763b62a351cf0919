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

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService provides progress and export views over a session.
type ReportService struct {
	store   driven.SessionStore
	archive driven.ExportArchive
	now     func() time.Time
}

// NewReportService creates a new report service.
// The archive parameter is optional (can be nil).
func NewReportService(store driven.SessionStore, archive driven.ExportArchive) *ReportService {
	return &ReportService{
		store:   store,
		archive: archive,
		now:     time.Now,
	}
}

// Progress returns annotation coverage for a session.
func (s *ReportService) Progress(ctx context.Context, sessionID string) (*domain.Progress, error) {
	var progress domain.Progress
	err := s.store.Update(ctx, sessionID, func(session *domain.Session) error {
		progress = session.Progress()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Export returns one annotation per configured chunk, in configured order.
// When an archive is configured the export is also recorded; a failure to
// record is logged and does not fail the export.
func (s *ReportService) Export(ctx context.Context, sessionID string) (*domain.AnnotationExport, error) {
	var (
		export    domain.AnnotationExport
		annotated int
	)
	err := s.store.Update(ctx, sessionID, func(session *domain.Session) error {
		export = session.Export()
		annotated = len(session.Annotations)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.NewChunkNotFound("", fmt.Sprintf("Session not found: %s", sessionID))
		}
		return nil, err
	}

	logger.Info("annotations exported",
		"session_id", sessionID,
		"total_chunks", len(export.Chunks),
		"annotated", annotated,
	)

	if s.archive != nil {
		record := domain.ExportRecord{
			SessionID:      sessionID,
			ChunkCount:     len(export.Chunks),
			AnnotatedCount: annotated,
			Payload:        export,
			CreatedAt:      s.now(),
		}
		if err := s.archive.Record(ctx, record); err != nil {
			logger.Warn("export not archived", "session_id", sessionID, "error", err)
		}
	}

	return &export, nil
}

// History returns archived exports, newest first.
func (s *ReportService) History(ctx context.Context, sessionID string, limit int) ([]domain.ExportRecord, error) {
	if s.archive == nil {
		return nil, domain.ErrArchiveUnavailable
	}
	records, err := s.archive.List(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list archived exports: %w", err)
	}
	return records, nil
}
