package services

import (
	"context"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driven"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driving"
	"github.com/custodia-labs/chunk-annotator/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService manages the lifecycle of annotation sessions.
type SessionService struct {
	store driven.SessionStore
}

// NewSessionService creates a new session service.
func NewSessionService(store driven.SessionStore) *SessionService {
	return &SessionService{store: store}
}

// Start creates a session from a chunk configuration.
func (s *SessionService) Start(ctx context.Context, config domain.ChunkConfig) (*domain.SessionCreated, error) {
	created, err := s.store.Create(ctx, config)
	if err != nil {
		logger.Debug("session rejected", "error", err)
		return nil, err
	}
	logger.Info("session created", "session_id", created.SessionID, "chunks", created.ChunkCount)
	return created, nil
}

// List returns every live session.
func (s *SessionService) List(ctx context.Context) ([]domain.SessionSummary, error) {
	return s.store.List(ctx)
}

// Delete discards a session and all of its annotations.
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	logger.Info("session deleted", "session_id", sessionID)
	return nil
}
