// Package messages defines Bubbletea message types for the annotator TUI.
// Each message carries the result of one core service call.
package messages

import (
	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

// SessionStarted reports the creation of the working session.
type SessionStarted struct {
	Created *domain.SessionCreated
	Err     error
}

// AnnotationSaved reports an annotate call for one chunk.
type AnnotationSaved struct {
	// ChunkID is the configured chunk id.
	ChunkID    string
	Annotation *domain.ChunkAnnotation
	Err        error
}

// RelationAdded reports an add-relation call.
type RelationAdded struct {
	Result *domain.RelationAdded
	Err    error
}

// ProgressLoaded carries refreshed session progress.
type ProgressLoaded struct {
	Progress *domain.Progress
	Err      error
}

// ExportWritten reports that the export file was written.
type ExportWritten struct {
	Path   string
	Chunks int
	Err    error
}
