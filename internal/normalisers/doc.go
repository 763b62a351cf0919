// Package normalisers provides implementations of the Normaliser interface
// for the document formats 'annotator chunk' accepts. Each normaliser knows
// how to extract text content from a specific MIME type.
//
// NewDefaultRegistry returns a registry with every built-in normaliser.
package normalisers
