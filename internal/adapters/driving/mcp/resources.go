package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for annotation resources.
	uriScheme = "annotation://"

	sessionsURI = uriScheme + "sessions"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing sessions.
	s.server.AddResource(&mcp.Resource{
		URI:         sessionsURI,
		Name:        "sessions",
		Description: "Live annotation sessions",
		MIMEType:    "application/json",
	}, s.handleSessionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: sessionsURI + "/{sessionId}/progress",
		Name:        "session-progress",
		Description: "Annotation progress of a session",
		MIMEType:    "application/json",
	}, s.handleProgressResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: sessionsURI + "/{sessionId}/export",
		Name:        "session-export",
		Description: "Current export of a session",
		MIMEType:    "application/json",
	}, s.handleExportResource)
}

// handleSessionsResource returns a summary of every live session.
func (s *Server) handleSessionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sessions, err := s.ports.Sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return jsonResource(req.Params.URI, sessions)
}

// handleProgressResource returns the progress of the session named in the URI.
func (s *Server) handleProgressResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	sessionID, ok := sessionFromURI(uri, "/progress")
	if !ok {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	progress, err := s.ports.Reports.Progress(ctx, sessionID)
	if err != nil {
		return nil, resourceError(uri, err)
	}
	return jsonResource(uri, progress)
}

// handleExportResource returns the export of the session named in the URI.
func (s *Server) handleExportResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	sessionID, ok := sessionFromURI(uri, "/export")
	if !ok {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	export, err := s.ports.Reports.Export(ctx, sessionID)
	if err != nil {
		return nil, resourceError(uri, err)
	}
	return jsonResource(uri, export)
}

// sessionFromURI extracts the session id from annotation://sessions/{id}{suffix}.
func sessionFromURI(uri, suffix string) (string, bool) {
	rest, ok := strings.CutPrefix(uri, sessionsURI+"/")
	if !ok {
		return "", false
	}
	id, ok := strings.CutSuffix(rest, suffix)
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// resourceError maps a missing session to a not-found resource error.
func resourceError(uri string, err error) error {
	if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrChunkNotFound) {
		return mcp.ResourceNotFoundError(uri)
	}
	return fmt.Errorf("reading %s: %w", uri, err)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
