// Package chunker provides a fixed-size text chunker.
package chunker

import (
	"context"
	"strings"
	"unicode"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 0

// Processor splits document content into chunks of at most chunkSize
// characters. A chunk ends at the last paragraph break, or failing that the
// last whitespace, in the second half of its window.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}
	p.overlap = clampOverlap(p.chunkSize, p.overlap)

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Split splits the document content into chunk texts. A positive opts.Size
// replaces the configured size and overlap for this call. Blank chunks are
// dropped and the rest are trimmed.
func (p *Processor) Split(ctx context.Context, doc *domain.Document, opts domain.SplitOptions) ([]string, error) {
	if doc == nil || doc.Content == "" {
		return nil, nil
	}

	size, overlap := p.chunkSize, p.overlap
	if opts.Size > 0 {
		size = opts.Size
		overlap = clampOverlap(size, max(opts.Overlap, 0))
	}

	runes := []rune(doc.Content)
	n := len(runes)
	chunks := make([]string, 0, n/(size-overlap)+1)

	start := 0
	for start < n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+size, n)
		if end < n {
			end = breakPoint(runes, start, end)
		}

		if text := strings.TrimSpace(string(runes[start:end])); text != "" {
			chunks = append(chunks, text)
		}
		if end >= n {
			break
		}

		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks, nil
}

// breakPoint returns where the chunk starting at start should end, at most end.
func breakPoint(runes []rune, start, end int) int {
	floor := start + (end-start)/2

	for i := end; i > floor+1; i-- {
		if runes[i-1] == '\n' && runes[i-2] == '\n' {
			return i
		}
	}
	for i := end; i > floor; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}

// clampOverlap keeps the overlap below a quarter of the size when it would
// stop the window from advancing.
func clampOverlap(size, overlap int) int {
	if overlap >= size {
		return size / 4
	}
	return overlap
}
