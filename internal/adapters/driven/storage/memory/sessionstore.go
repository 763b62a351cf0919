package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// sessionEntry serialises access to one session.
// A nil session marks an entry removed while a caller waited on it.
type sessionEntry struct {
	mu      sync.Mutex
	session *domain.Session
}

// SessionStore is an in-memory implementation of driven.SessionStore.
// The map lock is held only for lookups; operations on a session run under
// that session's own lock.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry

	now   func() time.Time
	newID func() string
}

// SessionStoreOption configures a SessionStore.
type SessionStoreOption func(*SessionStore)

// WithClock overrides the time source.
func WithClock(now func() time.Time) SessionStoreOption {
	return func(s *SessionStore) {
		s.now = now
	}
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(newID func() string) SessionStoreOption {
	return func(s *SessionStore) {
		s.newID = newID
	}
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore(opts ...SessionStoreOption) *SessionStore {
	s := &SessionStore{
		sessions: make(map[string]*sessionEntry),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the configuration and registers a new active session.
func (s *SessionStore) Create(_ context.Context, config domain.ChunkConfig) (*domain.SessionCreated, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	session := domain.NewSession(s.newID(), config, s.now())

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	return &domain.SessionCreated{
		SessionID:  session.ID,
		ChunkCount: len(session.Config.Chunks),
		Message:    "Session created successfully",
	}, nil
}

// Update runs fn with exclusive access to the session.
func (s *SessionStore) Update(ctx context.Context, sessionID string, fn func(*domain.Session) error) error {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return domain.NewSessionNotFound(sessionID)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.session == nil {
		return domain.NewSessionNotFound(sessionID)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	entry.session.Touch(s.now())
	return fn(entry.session)
}

// Delete discards a session.
func (s *SessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return domain.NewSessionNotFound(sessionID)
	}

	entry.mu.Lock()
	entry.session = nil
	entry.mu.Unlock()
	return nil
}

// List returns a summary of every live session ordered by creation time.
func (s *SessionStore) List(_ context.Context) ([]domain.SessionSummary, error) {
	s.mu.RLock()
	entries := make([]*sessionEntry, 0, len(s.sessions))
	for _, e := range s.sessions {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	summaries := make([]domain.SessionSummary, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if e.session != nil {
			summaries = append(summaries, e.session.Summary())
		}
		e.mu.Unlock()
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// Count returns the number of live sessions.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
