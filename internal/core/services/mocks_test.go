package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunk-annotator/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driven"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driving"
)

// mockArchive records exports in memory.
type mockArchive struct {
	mu        sync.Mutex
	records   []domain.ExportRecord
	recordErr error
	listErr   error
}

var _ driven.ExportArchive = (*mockArchive)(nil)

func (m *mockArchive) Record(_ context.Context, record domain.ExportRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockArchive) List(_ context.Context, sessionID string, limit int) ([]domain.ExportRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.ExportRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		if sessionID != "" && m.records[i].SessionID != sessionID {
			continue
		}
		out = append(out, m.records[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockArchive) Close() error { return nil }

// mockAnnotationService returns canned results per chunk id.
type mockAnnotationService struct {
	errs  map[string]error
	calls []string
}

var _ driving.AnnotationService = (*mockAnnotationService)(nil)

func (m *mockAnnotationService) AnnotateChunk(
	_ context.Context,
	_ string,
	input driving.AnnotateChunkInput,
) (*domain.ChunkAnnotation, error) {
	m.calls = append(m.calls, input.ChunkID)
	if err, ok := m.errs[input.ChunkID]; ok {
		return nil, err
	}
	a := domain.NewChunkAnnotation(domain.ConfigChunk{ChunkID: input.ChunkID})
	return &a, nil
}

var errBoom = errors.New("boom")

func testConfig(ids ...string) domain.ChunkConfig {
	chunks := make([]domain.ConfigChunk, len(ids))
	for i, id := range ids {
		chunks[i] = domain.ConfigChunk{ChunkID: id, Position: i, Text: "text " + id}
	}
	return domain.ChunkConfig{Chunks: chunks}
}

// newSession creates a store holding one session over ids.
func newSession(t *testing.T, ids ...string) (*memory.SessionStore, string) {
	t.Helper()
	store := memory.NewSessionStore()
	created, err := store.Create(context.Background(), testConfig(ids...))
	require.NoError(t, err)
	return store, created.SessionID
}

func ptr[T any](v T) *T { return &v }

func annotateInput(chunkID string) driving.AnnotateChunkInput {
	return driving.AnnotateChunkInput{ChunkID: chunkID}
}
