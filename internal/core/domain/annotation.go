package domain

import (
	"fmt"
	"maps"
	"slices"
)

// ChunkAnnotation is the metadata attached to one configured chunk.
// Slices and maps are never nil so that every field encodes as an empty
// JSON value rather than null.
type ChunkAnnotation struct {
	// ChunkID is the display id: {position}_{category}_{label} when the
	// annotation has both a category and a label, the configured id otherwise.
	ChunkID string `json:"chunk_id"`

	// Position is copied from the configured chunk.
	Position int `json:"position"`

	Categories []Category                `json:"categories"`
	Labels     []Label                   `json:"labels"`
	Subtypes   map[Category]Subtype      `json:"subtypes"`
	Keywords   []string                  `json:"keywords"`
	Tags       []string                  `json:"tags"`
	Relations  map[RelationType][]string `json:"relations"`
	Notes      string                    `json:"notes"`
	Summary    string                    `json:"summary"`
}

// NewChunkAnnotation returns an empty annotation for a configured chunk.
func NewChunkAnnotation(chunk ConfigChunk) ChunkAnnotation {
	return ChunkAnnotation{
		ChunkID:    chunk.ChunkID,
		Position:   chunk.Position,
		Categories: []Category{},
		Labels:     []Label{},
		Subtypes:   map[Category]Subtype{},
		Keywords:   []string{},
		Tags:       []string{},
		Relations:  map[RelationType][]string{},
	}
}

// Clone returns a deep copy.
func (a ChunkAnnotation) Clone() ChunkAnnotation {
	out := a
	out.Categories = cloneSlice(a.Categories)
	out.Labels = cloneSlice(a.Labels)
	out.Keywords = cloneSlice(a.Keywords)
	out.Tags = cloneSlice(a.Tags)
	out.Subtypes = maps.Clone(a.Subtypes)
	if out.Subtypes == nil {
		out.Subtypes = map[Category]Subtype{}
	}
	out.Relations = make(map[RelationType][]string, len(a.Relations))
	for k, v := range a.Relations {
		out.Relations[k] = cloneSlice(v)
	}
	return out
}

// HasRelation reports whether target is already recorded under kind.
func (a ChunkAnnotation) HasRelation(kind RelationType, target string) bool {
	return slices.Contains(a.Relations[kind], target)
}

// AddRelation appends target under kind unless it is already present.
// Returns false when the relation already existed.
func (a *ChunkAnnotation) AddRelation(kind RelationType, target string) bool {
	if a.HasRelation(kind, target) {
		return false
	}
	if a.Relations == nil {
		a.Relations = map[RelationType][]string{}
	}
	a.Relations[kind] = append(cloneSlice(a.Relations[kind]), target)
	return true
}

// DeriveChunkID builds the display id for an annotation.
// Falls back to chunkID unless both a category and a label are present.
func DeriveChunkID(chunkID string, position int, categories []Category, labels []Label) string {
	if len(categories) == 0 || len(labels) == 0 {
		return chunkID
	}
	return fmt.Sprintf("%d_%s_%s", position, categories[0], labels[0])
}

// AnnotationPatch is a validated partial annotation.
// Categories, Labels and Subtypes apply only when non-empty. Keywords, Tags,
// Notes and Summary apply whenever non-nil, so an explicit empty value clears.
type AnnotationPatch struct {
	Categories []Category
	Labels     []Label
	Subtypes   map[Category]Subtype
	Keywords   *[]string
	Tags       *[]string
	Notes      *string
	Summary    *string
}

// Merge applies patch to existing, or to an empty annotation when existing is
// nil, and returns the result. Relations are always carried over. The display
// id is recomputed from the merged first category and label.
func Merge(chunk ConfigChunk, existing *ChunkAnnotation, patch AnnotationPatch) ChunkAnnotation {
	base := NewChunkAnnotation(chunk)
	if existing != nil {
		base = existing.Clone()
	}

	if len(patch.Categories) > 0 {
		base.Categories = cloneSlice(patch.Categories)
	}
	if len(patch.Labels) > 0 {
		base.Labels = cloneSlice(patch.Labels)
	}
	if len(patch.Subtypes) > 0 {
		base.Subtypes = maps.Clone(patch.Subtypes)
	}
	if patch.Keywords != nil {
		base.Keywords = cloneSlice(*patch.Keywords)
	}
	if patch.Tags != nil {
		base.Tags = cloneSlice(*patch.Tags)
	}
	if patch.Notes != nil {
		base.Notes = *patch.Notes
	}
	if patch.Summary != nil {
		base.Summary = *patch.Summary
	}

	base.Position = chunk.Position
	base.ChunkID = DeriveChunkID(chunk.ChunkID, chunk.Position, base.Categories, base.Labels)
	return base
}

// AnnotationExport is the full export of a session, one record per configured chunk.
type AnnotationExport struct {
	Chunks []ChunkAnnotation `json:"chunks"`
}

// BatchItemError is the reduced error carried by a failed batch item.
type BatchItemError struct {
	Type    ErrorKind `json:"type"`
	Message string    `json:"message"`
}

// BatchItemResult is the outcome of one item in a batch annotation.
type BatchItemResult struct {
	ChunkID string           `json:"chunkId"`
	Success bool             `json:"success"`
	Data    *ChunkAnnotation `json:"data,omitempty"`
	Error   *BatchItemError  `json:"error,omitempty"`
}

// BatchResult is the outcome of a batch annotation. Results follow input order.
type BatchResult struct {
	Results      []BatchItemResult `json:"results"`
	SuccessCount int               `json:"successCount"`
	ErrorCount   int               `json:"errorCount"`
}

// RelationAdded confirms a relation request.
type RelationAdded struct {
	Message       string       `json:"message"`
	SourceChunkID string       `json:"sourceChunkId"`
	TargetChunkID string       `json:"targetChunkId"`
	RelationType  RelationType `json:"relationType"`
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
