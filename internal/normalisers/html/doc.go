// Package html provides a Normaliser implementation for HTML documents.
// It extracts readable text content from HTML, stripping tags, scripts
// and styles, and decoding entities. Paragraph-level elements are separated
// by a blank line so that chunking can split on them; table cells are joined
// with " | ".
package html
