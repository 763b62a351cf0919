package tui

import "errors"

// Errors returned when a required service is not provided.
var (
	ErrMissingSessionService    = errors.New("tui: session service is required")
	ErrMissingAnnotationService = errors.New("tui: annotation service is required")
	ErrMissingRelationService   = errors.New("tui: relation service is required")
	ErrMissingReportService     = errors.New("tui: report service is required")
)
