package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunk-annotator/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/services"
)

// connectClient wires real services behind a server and connects a client over
// in-memory transports.
func connectClient(t *testing.T) *mcp.ClientSession {
	t.Helper()

	store := memory.NewSessionStore()
	annotations := services.NewAnnotationService(store)
	server, err := NewServer(&Ports{
		Sessions:    services.NewSessionService(store),
		Annotations: annotations,
		Batch:       services.NewBatchService(annotations),
		Relations:   services.NewRelationService(store),
		Reports:     services.NewReportService(store, nil),
	})
	require.NoError(t, err)

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	_, err = server.Connect(ctx, serverTransport)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

// callTool calls a tool and decodes its text payload into out.
// It returns whether the result was flagged as an error.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any, out any) bool {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool(%s)", name)
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(tc.Text), out), tc.Text)
	}
	return result.IsError
}

func startSession(t *testing.T, session *mcp.ClientSession, ids ...string) string {
	t.Helper()
	chunks := make([]map[string]any, len(ids))
	for i, id := range ids {
		chunks[i] = map[string]any{"chunk_id": id, "position": i, "text": "text " + id}
	}
	var created domain.SessionCreated
	isErr := callTool(t, session, ToolStartSession, map[string]any{"config": map[string]any{"chunks": chunks}}, &created)
	require.False(t, isErr)
	return created.SessionID
}

func TestIntegration_ListTools(t *testing.T) {
	session := connectClient(t)

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	assert.ElementsMatch(t, []string{
		ToolStartSession, ToolAnnotateChunk, ToolAnnotateChunks, ToolAddRelation,
		ToolGetProgress, ToolExportAnnotations, ToolDeleteSession,
	}, names)
}

func TestIntegration_AnnotationWorkflow(t *testing.T) {
	session := connectClient(t)
	sessionID := startSession(t, session, "c1", "c2", "c3")

	var annotated domain.ChunkAnnotation
	isErr := callTool(t, session, ToolAnnotateChunk, map[string]any{
		"sessionId":  sessionID,
		"chunkId":    "c1",
		"categories": []string{"fee_schedule"},
		"labels":     []string{"Fee Schedule"},
		"subtypes":   map[string]string{"fee_schedule": "participant_fee"},
	}, &annotated)
	require.False(t, isErr)
	assert.Equal(t, "0_fee_schedule_Fee Schedule", annotated.ChunkID)

	// A partial update keeps earlier fields.
	isErr = callTool(t, session, ToolAnnotateChunk, map[string]any{
		"sessionId": sessionID,
		"chunkId":   "c1",
		"keywords":  []string{"fees"},
	}, &annotated)
	require.False(t, isErr)
	assert.Equal(t, []domain.Category{domain.CategoryFeeSchedule}, annotated.Categories)
	assert.Equal(t, []string{"fees"}, annotated.Keywords)

	var added domain.RelationAdded
	isErr = callTool(t, session, ToolAddRelation, map[string]any{
		"sessionId":     sessionID,
		"sourceChunkId": "c2",
		"targetChunkId": "c1",
		"relationType":  "references",
	}, &added)
	require.False(t, isErr)
	assert.Equal(t, "Relation added", added.Message)

	var progress domain.Progress
	isErr = callTool(t, session, ToolGetProgress, map[string]any{"sessionId": sessionID}, &progress)
	require.False(t, isErr)
	assert.Equal(t, 3, progress.TotalChunks)
	assert.Equal(t, 2, progress.AnnotatedChunks)
	assert.Equal(t, []string{"c3"}, progress.PendingChunkIDs)
	assert.Equal(t, 66.67, progress.CompletionPercentage)

	var export domain.AnnotationExport
	isErr = callTool(t, session, ToolExportAnnotations, map[string]any{"sessionId": sessionID}, &export)
	require.False(t, isErr)
	require.Len(t, export.Chunks, 3)
	assert.Equal(t, "0_fee_schedule_Fee Schedule", export.Chunks[0].ChunkID)
	assert.Equal(t, []string{"c1"}, export.Chunks[1].Relations[domain.RelationReferences])
	assert.Equal(t, "c3", export.Chunks[2].ChunkID)
	assert.Empty(t, export.Chunks[2].Categories)
}

func TestIntegration_BatchPartialSuccess(t *testing.T) {
	session := connectClient(t)
	sessionID := startSession(t, session, "a", "b")

	var batch domain.BatchResult
	isErr := callTool(t, session, ToolAnnotateChunks, map[string]any{
		"sessionId": sessionID,
		"annotations": []map[string]any{
			{"chunkId": "a", "labels": []string{"Footnotes"}},
			{"chunkId": "missing"},
			{"chunkId": "b", "categories": []string{"bogus"}},
		},
	}, &batch)

	require.False(t, isErr)
	assert.Equal(t, 1, batch.SuccessCount)
	assert.Equal(t, 2, batch.ErrorCount)
	require.Len(t, batch.Results, 3)
	assert.True(t, batch.Results[0].Success)
	assert.Equal(t, domain.KindChunkNotFound, batch.Results[1].Error.Type)
	assert.Equal(t, domain.KindInvalidCategory, batch.Results[2].Error.Type)
}

func TestIntegration_Errors(t *testing.T) {
	session := connectClient(t)

	t.Run("duplicate chunk id", func(t *testing.T) {
		var e domain.Error
		isErr := callTool(t, session, ToolStartSession, map[string]any{"config": map[string]any{"chunks": []map[string]any{
			{"chunk_id": "x", "position": 0, "text": ""},
			{"chunk_id": "x", "position": 1, "text": ""},
		}}}, &e)
		require.True(t, isErr)
		assert.Equal(t, domain.KindDuplicateChunkID, e.Kind)
		assert.Equal(t, "x", e.ChunkID)
	})

	t.Run("empty config", func(t *testing.T) {
		var e domain.Error
		isErr := callTool(t, session, ToolStartSession, map[string]any{"config": map[string]any{"chunks": []any{}}}, &e)
		require.True(t, isErr)
		assert.Equal(t, domain.KindInvalidConfig, e.Kind)
	})

	t.Run("unknown session", func(t *testing.T) {
		var e domain.Error
		isErr := callTool(t, session, ToolGetProgress, map[string]any{"sessionId": testSessionID}, &e)
		require.True(t, isErr)
		assert.Equal(t, domain.KindSessionNotFound, e.Kind)
	})

	t.Run("malformed session id", func(t *testing.T) {
		var e domain.Error
		isErr := callTool(t, session, ToolExportAnnotations, map[string]any{"sessionId": "nope"}, &e)
		require.True(t, isErr)
		assert.Equal(t, domain.KindValidation, e.Kind)
	})

	t.Run("unknown tool is a protocol error", func(t *testing.T) {
		_, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: "no_such_tool"})
		assert.Error(t, err)
	})
}

func TestIntegration_ReadResources(t *testing.T) {
	session := connectClient(t)
	sessionID := startSession(t, session, "a")

	result, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: sessionsURI})
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Contains(t, result.Contents[0].Text, sessionID)

	result, err = session.ReadResource(context.Background(), &mcp.ReadResourceParams{
		URI: sessionsURI + "/" + sessionID + "/progress",
	})
	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, `"pendingChunkIds"`)

	_, err = session.ReadResource(context.Background(), &mcp.ReadResourceParams{
		URI: sessionsURI + "/" + testSessionID + "/export",
	})
	assert.Error(t, err)
}
