// Package domain defines the core annotation entities.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ConfigChunk: An immutable unit of the source document
//   - Session: A chunk configuration plus its evolving annotations
//   - ChunkAnnotation: The metadata attached to one chunk
//   - Category, Label, Subtype, RelationType: Closed vocabularies
//   - Error: Tagged annotation failures
//   - RawDocument, Document: Source files before and after normalisation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
