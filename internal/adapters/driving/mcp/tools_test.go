package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

// invoke runs a tool through the same wrapper used at registration.
func invoke[In any](t *testing.T, name string, invalid domain.ErrorKind, run func(context.Context, In) (any, error), in In) *mcp.CallToolResult {
	t.Helper()
	result, out, err := toolHandler(name, invalid, run)(context.Background(), nil, in)
	require.NoError(t, err)
	require.Nil(t, out)
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return tc.Text
}

func decodeError(t *testing.T, result *mcp.CallToolResult) domain.Error {
	t.Helper()
	require.True(t, result.IsError)
	var e domain.Error
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &e))
	return e
}

func intPtr(n int) *int { return &n }

func TestServer_handleStartSession(t *testing.T) {
	t.Run("creates session from config", func(t *testing.T) {
		sessions := &mockSessionService{created: &domain.SessionCreated{
			SessionID: testSessionID, ChunkCount: 2, Message: "Session created successfully",
		}}
		ports := mockPorts()
		ports.Sessions = sessions
		server, err := NewServer(ports)
		require.NoError(t, err)

		result := invoke(t, ToolStartSession, domain.KindInvalidConfig, server.handleStartSession, StartSessionInput{
			Config: &ConfigInput{Chunks: []ChunkInput{
				{ChunkID: "a", Position: intPtr(0), Text: "first"},
				{ChunkID: "b", Position: intPtr(1), Text: "second"},
			}},
		})

		assert.False(t, result.IsError)
		var created domain.SessionCreated
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &created))
		assert.Equal(t, testSessionID, created.SessionID)
		assert.Equal(t, 2, created.ChunkCount)
		assert.Equal(t, []domain.ConfigChunk{
			{ChunkID: "a", Position: 0, Text: "first"},
			{ChunkID: "b", Position: 1, Text: "second"},
		}, sessions.gotConfig.Chunks)
	})

	t.Run("shape errors are InvalidConfig", func(t *testing.T) {
		server, err := NewServer(mockPorts())
		require.NoError(t, err)

		tests := []struct {
			name  string
			input StartSessionInput
			issue string
		}{
			{name: "missing config", input: StartSessionInput{}, issue: "config: is required"},
			{name: "no chunks", input: StartSessionInput{Config: &ConfigInput{Chunks: []ChunkInput{}}}, issue: "config.chunks: must contain at least 1 item(s)"},
			{name: "empty chunk id", input: StartSessionInput{Config: &ConfigInput{Chunks: []ChunkInput{{Position: intPtr(0)}}}}, issue: "config.chunks[0].chunk_id: is required"},
			{name: "missing position", input: StartSessionInput{Config: &ConfigInput{Chunks: []ChunkInput{{ChunkID: "a"}}}}, issue: "config.chunks[0].position: is required"},
			{name: "negative position", input: StartSessionInput{Config: &ConfigInput{Chunks: []ChunkInput{{ChunkID: "a", Position: intPtr(-1)}}}}, issue: "config.chunks[0].position: must be greater than or equal to 0"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				e := decodeError(t, invoke(t, ToolStartSession, domain.KindInvalidConfig, server.handleStartSession, tt.input))
				assert.Equal(t, domain.KindInvalidConfig, e.Kind)
				assert.Equal(t, "Invalid input parameters", e.Message)
				assert.Contains(t, e.Issues, tt.issue)
			})
		}
	})

	t.Run("duplicate chunk id from core", func(t *testing.T) {
		ports := mockPorts()
		ports.Sessions = &mockSessionService{err: domain.NewDuplicateChunkID("a")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		e := decodeError(t, invoke(t, ToolStartSession, domain.KindInvalidConfig, server.handleStartSession, StartSessionInput{
			Config: &ConfigInput{Chunks: []ChunkInput{
				{ChunkID: "a", Position: intPtr(0)},
				{ChunkID: "a", Position: intPtr(1)},
			}},
		}))
		assert.Equal(t, domain.KindDuplicateChunkID, e.Kind)
		assert.Equal(t, "a", e.ChunkID)
		assert.Equal(t, "Duplicate chunk_id found: a", e.Message)
	})
}

func TestServer_handleAnnotateChunk(t *testing.T) {
	t.Run("passes partial input to core", func(t *testing.T) {
		annotations := &mockAnnotationService{annotation: &domain.ChunkAnnotation{ChunkID: "0_fee_schedule_Fee Schedule"}}
		ports := mockPorts()
		ports.Annotations = annotations
		server, err := NewServer(ports)
		require.NoError(t, err)

		notes := ""
		keywords := []string{}
		result := invoke(t, ToolAnnotateChunk, domain.KindValidation, server.handleAnnotateChunk, AnnotateChunkInput{
			SessionID:  testSessionID,
			ChunkID:    "a",
			Categories: []string{"fee_schedule"},
			Subtypes:   map[string]string{"fee_schedule": "participant_fee"},
			Keywords:   &keywords,
			Notes:      &notes,
		})

		assert.False(t, result.IsError)
		assert.Contains(t, resultText(t, result), "0_fee_schedule_Fee Schedule")
		assert.Equal(t, testSessionID, annotations.gotSession)
		assert.Equal(t, "a", annotations.gotInput.ChunkID)
		assert.Equal(t, []string{"fee_schedule"}, annotations.gotInput.Categories)
		assert.Equal(t, "participant_fee", annotations.gotInput.Subtypes["fee_schedule"])
		require.NotNil(t, annotations.gotInput.Keywords)
		assert.Empty(t, *annotations.gotInput.Keywords)
		require.NotNil(t, annotations.gotInput.Notes)
		assert.Nil(t, annotations.gotInput.Tags)
		assert.Nil(t, annotations.gotInput.Summary)
	})

	t.Run("shape errors are ValidationError", func(t *testing.T) {
		server, err := NewServer(mockPorts())
		require.NoError(t, err)

		e := decodeError(t, invoke(t, ToolAnnotateChunk, domain.KindValidation, server.handleAnnotateChunk, AnnotateChunkInput{
			SessionID: "not-a-uuid",
		}))
		assert.Equal(t, domain.KindValidation, e.Kind)
		assert.ElementsMatch(t, []string{
			"sessionId: must be a valid UUID",
			"chunkId: is required",
		}, e.Issues)
	})

	t.Run("domain error is returned as tagged payload", func(t *testing.T) {
		ports := mockPorts()
		ports.Annotations = &mockAnnotationService{err: &domain.Error{
			Kind:         domain.KindInvalidCategory,
			Category:     "bogus",
			ValidOptions: []string{"fee_schedule", "footnotes"},
			Message:      "Invalid category: bogus",
		}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		e := decodeError(t, invoke(t, ToolAnnotateChunk, domain.KindValidation, server.handleAnnotateChunk, AnnotateChunkInput{
			SessionID: testSessionID, ChunkID: "a", Categories: []string{"bogus"},
		}))
		assert.Equal(t, domain.KindInvalidCategory, e.Kind)
		assert.Equal(t, "bogus", e.Category)
		assert.Equal(t, []string{"fee_schedule", "footnotes"}, e.ValidOptions)
	})

	t.Run("untagged error becomes InternalError", func(t *testing.T) {
		ports := mockPorts()
		ports.Annotations = &mockAnnotationService{err: errors.New("disk on fire")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		e := decodeError(t, invoke(t, ToolAnnotateChunk, domain.KindValidation, server.handleAnnotateChunk, AnnotateChunkInput{
			SessionID: testSessionID, ChunkID: "a",
		}))
		assert.Equal(t, domain.KindInternal, e.Kind)
		assert.Equal(t, "disk on fire", e.Message)
	})

	t.Run("panic becomes InternalError", func(t *testing.T) {
		ports := mockPorts()
		ports.Annotations = &mockAnnotationService{panicWith: "boom"}
		server, err := NewServer(ports)
		require.NoError(t, err)

		e := decodeError(t, invoke(t, ToolAnnotateChunk, domain.KindValidation, server.handleAnnotateChunk, AnnotateChunkInput{
			SessionID: testSessionID, ChunkID: "a",
		}))
		assert.Equal(t, domain.KindInternal, e.Kind)
		assert.Contains(t, e.Message, "boom")
	})
}

func TestServer_handleAnnotateChunks(t *testing.T) {
	t.Run("maps every item in order", func(t *testing.T) {
		batch := &mockBatchService{result: &domain.BatchResult{
			Results: []domain.BatchItemResult{
				{ChunkID: "a", Success: true},
				{ChunkID: "zzz", Error: &domain.BatchItemError{Type: domain.KindChunkNotFound, Message: "Chunk not found in session: zzz"}},
			},
			SuccessCount: 1,
			ErrorCount:   1,
		}}
		ports := mockPorts()
		ports.Batch = batch
		server, err := NewServer(ports)
		require.NoError(t, err)

		result := invoke(t, ToolAnnotateChunks, domain.KindValidation, server.handleAnnotateChunks, AnnotateChunksInput{
			SessionID: testSessionID,
			Annotations: []AnnotationItem{
				{ChunkID: "a", Labels: []string{"Footnotes"}},
				{ChunkID: "zzz"},
			},
		})

		assert.False(t, result.IsError)
		require.Len(t, batch.gotInputs, 2)
		assert.Equal(t, "a", batch.gotInputs[0].ChunkID)
		assert.Equal(t, []string{"Footnotes"}, batch.gotInputs[0].Labels)
		assert.Equal(t, "zzz", batch.gotInputs[1].ChunkID)

		var got domain.BatchResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &got))
		assert.Equal(t, 1, got.SuccessCount)
		assert.Equal(t, 1, got.ErrorCount)
		assert.Equal(t, domain.KindChunkNotFound, got.Results[1].Error.Type)
	})

	t.Run("empty annotations rejected", func(t *testing.T) {
		server, err := NewServer(mockPorts())
		require.NoError(t, err)

		e := decodeError(t, invoke(t, ToolAnnotateChunks, domain.KindValidation, server.handleAnnotateChunks, AnnotateChunksInput{
			SessionID: testSessionID, Annotations: []AnnotationItem{},
		}))
		assert.Equal(t, domain.KindValidation, e.Kind)
		assert.Contains(t, e.Issues, "annotations: must contain at least 1 item(s)")
	})

	t.Run("item without chunk id rejected", func(t *testing.T) {
		server, err := NewServer(mockPorts())
		require.NoError(t, err)

		e := decodeError(t, invoke(t, ToolAnnotateChunks, domain.KindValidation, server.handleAnnotateChunks, AnnotateChunksInput{
			SessionID: testSessionID, Annotations: []AnnotationItem{{ChunkID: "a"}, {}},
		}))
		assert.Contains(t, e.Issues, "annotations[1].chunkId: is required")
	})
}

func TestServer_handleAddRelation(t *testing.T) {
	t.Run("returns confirmation", func(t *testing.T) {
		ports := mockPorts()
		ports.Relations = &mockRelationService{added: &domain.RelationAdded{
			Message: "Relation added", SourceChunkID: "a", TargetChunkID: "b", RelationType: domain.RelationReferences,
		}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result := invoke(t, ToolAddRelation, domain.KindValidation, server.handleAddRelation, AddRelationInput{
			SessionID: testSessionID, SourceChunkID: "a", TargetChunkID: "b", RelationType: "references",
		})

		assert.False(t, result.IsError)
		assert.Contains(t, resultText(t, result), `"message": "Relation added"`)
	})

	t.Run("target not found", func(t *testing.T) {
		ports := mockPorts()
		ports.Relations = &mockRelationService{err: domain.NewTargetNotFound("zzz", "Target chunk not found in session: zzz")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		e := decodeError(t, invoke(t, ToolAddRelation, domain.KindValidation, server.handleAddRelation, AddRelationInput{
			SessionID: testSessionID, SourceChunkID: "a", TargetChunkID: "zzz", RelationType: "references",
		}))
		assert.Equal(t, domain.KindTargetNotFound, e.Kind)
		assert.Equal(t, "zzz", e.TargetChunkID)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		server, err := NewServer(mockPorts())
		require.NoError(t, err)

		e := decodeError(t, invoke(t, ToolAddRelation, domain.KindValidation, server.handleAddRelation, AddRelationInput{
			SessionID: testSessionID,
		}))
		assert.ElementsMatch(t, []string{
			"sourceChunkId: is required",
			"targetChunkId: is required",
			"relationType: is required",
		}, e.Issues)
	})
}

func TestServer_handleReports(t *testing.T) {
	ports := mockPorts()
	ports.Reports = &mockReportService{
		progress: &domain.Progress{TotalChunks: 3, AnnotatedChunks: 1, PendingChunks: 2, CompletionPercentage: 33.33, PendingChunkIDs: []string{"b", "c"}},
		export:   &domain.AnnotationExport{Chunks: []domain.ChunkAnnotation{{ChunkID: "a"}}},
	}
	server, err := NewServer(ports)
	require.NoError(t, err)

	t.Run("progress", func(t *testing.T) {
		result := invoke(t, ToolGetProgress, domain.KindValidation, server.handleGetProgress, SessionInput{SessionID: testSessionID})
		var got domain.Progress
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &got))
		assert.Equal(t, 33.33, got.CompletionPercentage)
		assert.Equal(t, []string{"b", "c"}, got.PendingChunkIDs)
	})

	t.Run("export", func(t *testing.T) {
		result := invoke(t, ToolExportAnnotations, domain.KindValidation, server.handleExportAnnotations, SessionInput{SessionID: testSessionID})
		var got domain.AnnotationExport
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &got))
		require.Len(t, got.Chunks, 1)
		assert.Equal(t, "a", got.Chunks[0].ChunkID)
	})

	t.Run("missing session id rejected", func(t *testing.T) {
		e := decodeError(t, invoke(t, ToolGetProgress, domain.KindValidation, server.handleGetProgress, SessionInput{}))
		assert.Equal(t, []string{"sessionId: is required"}, e.Issues)
	})
}

func TestServer_handleDeleteSession(t *testing.T) {
	t.Run("deletes session", func(t *testing.T) {
		sessions := &mockSessionService{}
		ports := mockPorts()
		ports.Sessions = sessions
		server, err := NewServer(ports)
		require.NoError(t, err)

		result := invoke(t, ToolDeleteSession, domain.KindValidation, server.handleDeleteSession, SessionInput{SessionID: testSessionID})

		assert.False(t, result.IsError)
		assert.Equal(t, testSessionID, sessions.gotDeleted)
		var got SessionDeleted
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &got))
		assert.True(t, got.Deleted)
	})

	t.Run("unknown session", func(t *testing.T) {
		ports := mockPorts()
		ports.Sessions = &mockSessionService{err: domain.NewSessionNotFound(testSessionID)}
		server, err := NewServer(ports)
		require.NoError(t, err)

		e := decodeError(t, invoke(t, ToolDeleteSession, domain.KindValidation, server.handleDeleteSession, SessionInput{SessionID: testSessionID}))
		assert.Equal(t, domain.KindSessionNotFound, e.Kind)
		assert.Equal(t, testSessionID, e.SessionID)
	})
}
