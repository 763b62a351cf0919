package domain

// DefaultChunkSize is the default number of characters per generated chunk.
const DefaultChunkSize = 1000

// DefaultChunkIDPrefix starts generated chunk ids.
const DefaultChunkIDPrefix = "chunk"

// RawDocument is a source file before normalisation.
type RawDocument struct {
	// URI is the original location, usually a file path.
	URI string

	// MIMEType is the content type (e.g., "text/markdown").
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// Document is the plain text of a source file, ready to be split into chunks.
type Document struct {
	// URI is the original location.
	URI string

	// Title is the first heading or title element, or the file name.
	Title string

	// Content is the full text after normalisation.
	Content string

	// Format names the normaliser that produced Content.
	Format string
}

// SplitOptions controls how a document becomes a chunk configuration.
type SplitOptions struct {
	// Size is the maximum number of characters per chunk.
	Size int

	// Overlap is the number of characters repeated from the previous chunk.
	Overlap int

	// IDPrefix starts every generated chunk id.
	IDPrefix string
}
