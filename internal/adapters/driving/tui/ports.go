// Package tui provides an interactive terminal annotator.
// It drives the same core services as the MCP server, against a session
// created from a local chunk configuration.
package tui

import (
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Sessions creates the working session.
	Sessions driving.SessionService

	// Annotations annotates the selected chunk.
	Annotations driving.AnnotationService

	// Relations links the marked chunk to the selected one.
	Relations driving.RelationService

	// Reports provides progress and export.
	Reports driving.ReportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	switch {
	case p.Sessions == nil:
		return ErrMissingSessionService
	case p.Annotations == nil:
		return ErrMissingAnnotationService
	case p.Relations == nil:
		return ErrMissingRelationService
	case p.Reports == nil:
		return ErrMissingReportService
	}
	return nil
}
