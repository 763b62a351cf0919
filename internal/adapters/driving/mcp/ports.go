package mcp

import (
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Sessions creates, lists and deletes sessions.
	Sessions driving.SessionService

	// Annotations annotates single chunks.
	Annotations driving.AnnotationService

	// Batch annotates several chunks per call.
	Batch driving.BatchService

	// Relations records relations between chunks.
	Relations driving.RelationService

	// Reports provides progress and export.
	Reports driving.ReportService
}

// Validate ensures all required ports are set.
// Returns an error naming the first missing port.
func (p *Ports) Validate() error {
	switch {
	case p.Sessions == nil:
		return ErrMissingSessionService
	case p.Annotations == nil:
		return ErrMissingAnnotationService
	case p.Batch == nil:
		return ErrMissingBatchService
	case p.Relations == nil:
		return ErrMissingRelationService
	case p.Reports == nil:
		return ErrMissingReportService
	}
	return nil
}
