package domain

import "time"

// ExportRecord is one archived export of a session.
type ExportRecord struct {
	// ID is the unique identifier of the archive entry.
	ID string `json:"id"`

	// SessionID is the session that was exported.
	SessionID string `json:"sessionId"`

	// ChunkCount is the number of configured chunks at export time.
	ChunkCount int `json:"chunkCount"`

	// AnnotatedCount is the number of chunks with a stored annotation.
	AnnotatedCount int `json:"annotatedCount"`

	// Payload is the exported document.
	Payload AnnotationExport `json:"payload"`

	// CreatedAt is when the export was taken.
	CreatedAt time.Time `json:"createdAt"`
}
