package domain

import (
	"fmt"
	"math"
	"time"
)

// ConfigChunk is one immutable unit of the source document.
type ConfigChunk struct {
	// ChunkID is unique within a session.
	ChunkID string `json:"chunk_id"`

	// Position is the ordinal place of the chunk in the document.
	Position int `json:"position"`

	// Text is the raw chunk content.
	Text string `json:"text"`
}

// ChunkConfig is the document configuration a session is created from.
type ChunkConfig struct {
	Chunks []ConfigChunk `json:"chunks"`
}

// Validate checks the configuration structure and chunk id uniqueness.
// Structural problems are reported together as InvalidConfig; the first
// repeated chunk id in input order is reported as DuplicateChunkId.
func (c ChunkConfig) Validate() error {
	if len(c.Chunks) == 0 {
		return NewInvalidConfig("Config must contain at least one chunk")
	}

	var issues []string
	for i, chunk := range c.Chunks {
		if chunk.ChunkID == "" {
			issues = append(issues, fmt.Sprintf("chunks[%d].chunk_id must not be empty", i))
		}
		if chunk.Position < 0 {
			issues = append(issues, fmt.Sprintf("chunks[%d].position must be non-negative", i))
		}
	}
	if len(issues) > 0 {
		return NewInvalidConfig(issues...)
	}

	seen := make(map[string]struct{}, len(c.Chunks))
	for _, chunk := range c.Chunks {
		if _, dup := seen[chunk.ChunkID]; dup {
			return NewDuplicateChunkID(chunk.ChunkID)
		}
		seen[chunk.ChunkID] = struct{}{}
	}
	return nil
}

// SessionState is the lifecycle state of a session.
type SessionState string

// Session states. Expired is reserved and not assigned by any operation.
const (
	SessionActive  SessionState = "active"
	SessionExpired SessionState = "expired"
)

// Session pairs a fixed chunk configuration with evolving annotation state.
type Session struct {
	ID     string
	Config ChunkConfig

	// Annotations is keyed by configured chunk id.
	Annotations map[string]ChunkAnnotation

	State          SessionState
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// NewSession creates an active session with no annotations.
func NewSession(id string, config ChunkConfig, now time.Time) *Session {
	chunks := make([]ConfigChunk, len(config.Chunks))
	copy(chunks, config.Chunks)
	return &Session{
		ID:             id,
		Config:         ChunkConfig{Chunks: chunks},
		Annotations:    make(map[string]ChunkAnnotation),
		State:          SessionActive,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
}

// Touch records an access.
func (s *Session) Touch(now time.Time) {
	s.LastAccessedAt = now
}

// HasChunk reports whether chunkID is part of the configuration.
func (s *Session) HasChunk(chunkID string) bool {
	_, ok := s.Chunk(chunkID)
	return ok
}

// Chunk looks up a configured chunk by id.
func (s *Session) Chunk(chunkID string) (ConfigChunk, bool) {
	for _, c := range s.Config.Chunks {
		if c.ChunkID == chunkID {
			return c, true
		}
	}
	return ConfigChunk{}, false
}

// Annotation returns a copy of the stored annotation for chunkID.
func (s *Session) Annotation(chunkID string) (ChunkAnnotation, bool) {
	a, ok := s.Annotations[chunkID]
	if !ok {
		return ChunkAnnotation{}, false
	}
	return a.Clone(), true
}

// SaveAnnotation upserts the annotation under the configured chunk id.
func (s *Session) SaveAnnotation(chunkID string, annotation ChunkAnnotation, now time.Time) {
	s.Annotations[chunkID] = annotation.Clone()
	s.Touch(now)
}

// Progress summarises annotation coverage. Any stored annotation counts as
// annotated, including one created only to hold a relation.
func (s *Session) Progress() Progress {
	total := len(s.Config.Chunks)
	annotated := len(s.Annotations)

	pending := make([]string, 0, total)
	for _, c := range s.Config.Chunks {
		if _, ok := s.Annotations[c.ChunkID]; !ok {
			pending = append(pending, c.ChunkID)
		}
	}

	percentage := 100.0
	if total > 0 {
		percentage = roundPercent(float64(annotated) / float64(total))
	}

	return Progress{
		TotalChunks:          total,
		AnnotatedChunks:      annotated,
		PendingChunks:        total - annotated,
		CompletionPercentage: percentage,
		PendingChunkIDs:      pending,
	}
}

// Export returns one annotation per configured chunk in configured order.
// Unannotated chunks get an empty placeholder.
func (s *Session) Export() AnnotationExport {
	chunks := make([]ChunkAnnotation, 0, len(s.Config.Chunks))
	for _, c := range s.Config.Chunks {
		if a, ok := s.Annotations[c.ChunkID]; ok {
			chunks = append(chunks, a.Clone())
			continue
		}
		chunks = append(chunks, NewChunkAnnotation(c))
	}
	return AnnotationExport{Chunks: chunks}
}

// Summary returns the listing view of the session.
func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		ID:              s.ID,
		State:           s.State,
		ChunkCount:      len(s.Config.Chunks),
		AnnotatedChunks: len(s.Annotations),
		CreatedAt:       s.CreatedAt,
		LastAccessedAt:  s.LastAccessedAt,
	}
}

// roundPercent converts a ratio to a percentage with two decimals, rounding half up.
func roundPercent(ratio float64) float64 {
	return math.Floor(ratio*10000+0.5) / 100
}

// Progress is the annotation coverage of a session.
type Progress struct {
	TotalChunks          int      `json:"totalChunks"`
	AnnotatedChunks      int      `json:"annotatedChunks"`
	PendingChunks        int      `json:"pendingChunks"`
	CompletionPercentage float64  `json:"completionPercentage"`
	PendingChunkIDs      []string `json:"pendingChunkIds"`
}

// SessionCreated is returned by session creation.
type SessionCreated struct {
	SessionID  string `json:"sessionId"`
	ChunkCount int    `json:"chunkCount"`
	Message    string `json:"message"`
}

// SessionSummary is the listing view of a live session.
type SessionSummary struct {
	ID              string       `json:"id"`
	State           SessionState `json:"state"`
	ChunkCount      int          `json:"chunkCount"`
	AnnotatedChunks int          `json:"annotatedChunks"`
	CreatedAt       time.Time    `json:"createdAt"`
	LastAccessedAt  time.Time    `json:"lastAccessedAt"`
}
