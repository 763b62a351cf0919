// Package mcp provides an MCP (Model Context Protocol) server adapter for the annotator.
// It exposes session, annotation, relation and export operations as tools,
// and live session views as resources.
package mcp

import "errors"

// Errors returned when a required service is not provided.
var (
	ErrMissingSessionService    = errors.New("mcp: session service is required")
	ErrMissingAnnotationService = errors.New("mcp: annotation service is required")
	ErrMissingBatchService      = errors.New("mcp: batch service is required")
	ErrMissingRelationService   = errors.New("mcp: relation service is required")
	ErrMissingReportService     = errors.New("mcp: report service is required")
)
