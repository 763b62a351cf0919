package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driving"
)

// Tool names.
const (
	ToolStartSession      = "start_session"
	ToolAnnotateChunk     = "annotate_chunk"
	ToolAnnotateChunks    = "annotate_chunks"
	ToolAddRelation       = "add_relation"
	ToolGetProgress       = "get_progress"
	ToolExportAnnotations = "export_annotations"
	ToolDeleteSession     = "delete_session"
)

// Every argument is optional in the advertised schema so that missing fields
// are reported as tagged validation errors rather than protocol errors.

// ChunkInput is one configured chunk.
type ChunkInput struct {
	ChunkID  string `json:"chunk_id,omitempty" jsonschema:"unique id of the chunk within the session" validate:"required"`
	Position *int   `json:"position,omitempty" jsonschema:"ordinal position of the chunk in the document" validate:"required,gte=0"`
	Text     string `json:"text,omitempty" jsonschema:"raw chunk content"`
}

// ConfigInput is the document configuration.
type ConfigInput struct {
	Chunks []ChunkInput `json:"chunks,omitempty" jsonschema:"the chunks of the document in order" validate:"required,min=1,dive"`
}

// StartSessionInput is the input schema for the start_session tool.
type StartSessionInput struct {
	Config *ConfigInput `json:"config,omitempty" jsonschema:"chunk configuration for the new session" validate:"required"`
}

// AnnotationItem is one annotation of a batch.
type AnnotationItem struct {
	ChunkID    string            `json:"chunkId,omitempty" jsonschema:"configured id of the chunk to annotate" validate:"required"`
	Categories []string          `json:"categories,omitempty" jsonschema:"categories; replaces stored categories when non-empty"`
	Labels     []string          `json:"labels,omitempty" jsonschema:"labels; replaces stored labels when non-empty"`
	Subtypes   map[string]string `json:"subtypes,omitempty" jsonschema:"subtype per category named in the same call"`
	Keywords   *[]string         `json:"keywords,omitempty" jsonschema:"keywords; replaces stored keywords when present"`
	Tags       *[]string         `json:"tags,omitempty" jsonschema:"free-form tags; replaces stored tags when present"`
	Notes      *string           `json:"notes,omitempty" jsonschema:"annotator notes"`
	Summary    *string           `json:"summary,omitempty" jsonschema:"short summary of the chunk"`
}

func (a AnnotationItem) toCore() driving.AnnotateChunkInput {
	return driving.AnnotateChunkInput{
		ChunkID:    a.ChunkID,
		Categories: a.Categories,
		Labels:     a.Labels,
		Subtypes:   a.Subtypes,
		Keywords:   a.Keywords,
		Tags:       a.Tags,
		Notes:      a.Notes,
		Summary:    a.Summary,
	}
}

// AnnotateChunkInput is the input schema for the annotate_chunk tool.
type AnnotateChunkInput struct {
	SessionID  string            `json:"sessionId,omitempty" jsonschema:"session id returned by start_session" validate:"required,uuid"`
	ChunkID    string            `json:"chunkId,omitempty" jsonschema:"configured id of the chunk to annotate" validate:"required"`
	Categories []string          `json:"categories,omitempty" jsonschema:"categories; replaces stored categories when non-empty"`
	Labels     []string          `json:"labels,omitempty" jsonschema:"labels; replaces stored labels when non-empty"`
	Subtypes   map[string]string `json:"subtypes,omitempty" jsonschema:"subtype per category named in the same call"`
	Keywords   *[]string         `json:"keywords,omitempty" jsonschema:"keywords; replaces stored keywords when present"`
	Tags       *[]string         `json:"tags,omitempty" jsonschema:"free-form tags; replaces stored tags when present"`
	Notes      *string           `json:"notes,omitempty" jsonschema:"annotator notes"`
	Summary    *string           `json:"summary,omitempty" jsonschema:"short summary of the chunk"`
}

func (a AnnotateChunkInput) toCore() driving.AnnotateChunkInput {
	return AnnotationItem{
		ChunkID:    a.ChunkID,
		Categories: a.Categories,
		Labels:     a.Labels,
		Subtypes:   a.Subtypes,
		Keywords:   a.Keywords,
		Tags:       a.Tags,
		Notes:      a.Notes,
		Summary:    a.Summary,
	}.toCore()
}

// AnnotateChunksInput is the input schema for the annotate_chunks tool.
type AnnotateChunksInput struct {
	SessionID   string           `json:"sessionId,omitempty" jsonschema:"session id returned by start_session" validate:"required,uuid"`
	Annotations []AnnotationItem `json:"annotations,omitempty" jsonschema:"annotations applied in order" validate:"required,min=1,dive"`
}

// AddRelationInput is the input schema for the add_relation tool.
type AddRelationInput struct {
	SessionID     string `json:"sessionId,omitempty" jsonschema:"session id returned by start_session" validate:"required,uuid"`
	SourceChunkID string `json:"sourceChunkId,omitempty" jsonschema:"chunk the relation is recorded on" validate:"required"`
	TargetChunkID string `json:"targetChunkId,omitempty" jsonschema:"chunk the relation points to" validate:"required"`
	RelationType  string `json:"relationType,omitempty" jsonschema:"one of dependencies, footnotes, references" validate:"required"`
}

// SessionInput is the input schema for tools addressing a whole session.
type SessionInput struct {
	SessionID string `json:"sessionId,omitempty" jsonschema:"session id returned by start_session" validate:"required,uuid"`
}

// SessionDeleted confirms a delete_session call.
type SessionDeleted struct {
	SessionID string `json:"sessionId"`
	Deleted   bool   `json:"deleted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolStartSession,
		Description: "Create an annotation session from a chunk configuration",
	}, toolHandler(ToolStartSession, domain.KindInvalidConfig, s.handleStartSession))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolAnnotateChunk,
		Description: "Annotate one chunk; fields merge with any stored annotation",
	}, toolHandler(ToolAnnotateChunk, domain.KindValidation, s.handleAnnotateChunk))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolAnnotateChunks,
		Description: "Annotate several chunks in one call; each item succeeds or fails on its own",
	}, toolHandler(ToolAnnotateChunks, domain.KindValidation, s.handleAnnotateChunks))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolAddRelation,
		Description: "Record a directed relation from one chunk to another",
	}, toolHandler(ToolAddRelation, domain.KindValidation, s.handleAddRelation))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolGetProgress,
		Description: "Report how many chunks of a session are annotated",
	}, toolHandler(ToolGetProgress, domain.KindValidation, s.handleGetProgress))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolExportAnnotations,
		Description: "Export one annotation per configured chunk in document order",
	}, toolHandler(ToolExportAnnotations, domain.KindValidation, s.handleExportAnnotations))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolDeleteSession,
		Description: "Discard a session and all of its annotations",
	}, toolHandler(ToolDeleteSession, domain.KindValidation, s.handleDeleteSession))
}

func (s *Server) handleStartSession(ctx context.Context, input StartSessionInput) (any, error) {
	config := domain.ChunkConfig{Chunks: make([]domain.ConfigChunk, len(input.Config.Chunks))}
	for i, c := range input.Config.Chunks {
		config.Chunks[i] = domain.ConfigChunk{ChunkID: c.ChunkID, Position: *c.Position, Text: c.Text}
	}
	return s.ports.Sessions.Start(ctx, config)
}

func (s *Server) handleAnnotateChunk(ctx context.Context, input AnnotateChunkInput) (any, error) {
	return s.ports.Annotations.AnnotateChunk(ctx, input.SessionID, input.toCore())
}

func (s *Server) handleAnnotateChunks(ctx context.Context, input AnnotateChunksInput) (any, error) {
	items := make([]driving.AnnotateChunkInput, len(input.Annotations))
	for i, a := range input.Annotations {
		items[i] = a.toCore()
	}
	return s.ports.Batch.AnnotateChunks(ctx, input.SessionID, items), nil
}

func (s *Server) handleAddRelation(ctx context.Context, input AddRelationInput) (any, error) {
	return s.ports.Relations.AddRelation(ctx, input.SessionID, input.SourceChunkID, input.TargetChunkID, input.RelationType)
}

func (s *Server) handleGetProgress(ctx context.Context, input SessionInput) (any, error) {
	return s.ports.Reports.Progress(ctx, input.SessionID)
}

func (s *Server) handleExportAnnotations(ctx context.Context, input SessionInput) (any, error) {
	return s.ports.Reports.Export(ctx, input.SessionID)
}

func (s *Server) handleDeleteSession(ctx context.Context, input SessionInput) (any, error) {
	if err := s.ports.Sessions.Delete(ctx, input.SessionID); err != nil {
		return nil, err
	}
	return SessionDeleted{SessionID: input.SessionID, Deleted: true}, nil
}
