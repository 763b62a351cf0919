package mcp

import (
	"context"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driving"
)

const testSessionID = "0b7c6a8e-3f0d-4c51-9a1e-2f4d5b6c7d8e"

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	created  *domain.SessionCreated
	sessions []domain.SessionSummary
	err      error

	gotConfig  domain.ChunkConfig
	gotDeleted string
}

func (m *mockSessionService) Start(_ context.Context, config domain.ChunkConfig) (*domain.SessionCreated, error) {
	m.gotConfig = config
	return m.created, m.err
}

func (m *mockSessionService) List(_ context.Context) ([]domain.SessionSummary, error) {
	return m.sessions, m.err
}

func (m *mockSessionService) Delete(_ context.Context, sessionID string) error {
	m.gotDeleted = sessionID
	return m.err
}

// mockAnnotationService is a mock implementation of driving.AnnotationService.
type mockAnnotationService struct {
	annotation *domain.ChunkAnnotation
	err        error
	panicWith  any

	gotSession string
	gotInput   driving.AnnotateChunkInput
}

func (m *mockAnnotationService) AnnotateChunk(
	_ context.Context,
	sessionID string,
	input driving.AnnotateChunkInput,
) (*domain.ChunkAnnotation, error) {
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	m.gotSession = sessionID
	m.gotInput = input
	return m.annotation, m.err
}

// mockBatchService is a mock implementation of driving.BatchService.
type mockBatchService struct {
	result    *domain.BatchResult
	gotInputs []driving.AnnotateChunkInput
}

func (m *mockBatchService) AnnotateChunks(
	_ context.Context,
	_ string,
	inputs []driving.AnnotateChunkInput,
) *domain.BatchResult {
	m.gotInputs = inputs
	return m.result
}

// mockRelationService is a mock implementation of driving.RelationService.
type mockRelationService struct {
	added *domain.RelationAdded
	err   error
}

func (m *mockRelationService) AddRelation(
	_ context.Context,
	_, _, _, _ string,
) (*domain.RelationAdded, error) {
	return m.added, m.err
}

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	progress *domain.Progress
	export   *domain.AnnotationExport
	history  []domain.ExportRecord
	err      error
}

func (m *mockReportService) Progress(_ context.Context, _ string) (*domain.Progress, error) {
	return m.progress, m.err
}

func (m *mockReportService) Export(_ context.Context, _ string) (*domain.AnnotationExport, error) {
	return m.export, m.err
}

func (m *mockReportService) History(_ context.Context, _ string, _ int) ([]domain.ExportRecord, error) {
	return m.history, m.err
}

// mockPorts returns a full set of mock ports.
func mockPorts() *Ports {
	return &Ports{
		Sessions:    &mockSessionService{},
		Annotations: &mockAnnotationService{},
		Batch:       &mockBatchService{},
		Relations:   &mockRelationService{},
		Reports:     &mockReportService{},
	}
}
