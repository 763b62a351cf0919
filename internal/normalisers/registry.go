package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driven"
	"github.com/custodia-labs/chunk-annotator/internal/normalisers/html"
	"github.com/custodia-labs/chunk-annotator/internal/normalisers/markdown"
	"github.com/custodia-labs/chunk-annotator/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// fallbackPriority is the highest priority of a fallback normaliser.
const fallbackPriority = 9

// Registry dispatches raw documents to the highest priority normaliser
// registered for their MIME type. Any other text/* type goes to the best
// fallback normaliser.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry creates a registry holding the built-in normalisers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	return r
}

// Register adds a normaliser to the registry.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.normalisers = append(r.normalisers, n)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// SupportedMIMETypes returns all MIME types that can be normalised, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var types []string
	for _, n := range r.normalisers {
		for _, t := range n.SupportedMIMETypes() {
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}
	sort.Strings(types)
	return types
}

// Normalise transforms a raw document using the best matching normaliser.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	n := r.find(baseType(raw.MIMEType))
	if n == nil {
		return nil, fmt.Errorf("%w: unsupported document type %q", domain.ErrInvalidInput, raw.MIMEType)
	}
	return n.Normalise(ctx, raw)
}

func (r *Registry) find(mimeType string) driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.normalisers {
		if slices.Contains(n.SupportedMIMETypes(), mimeType) {
			return n
		}
	}
	if !strings.HasPrefix(mimeType, "text/") {
		return nil
	}
	for _, n := range r.normalisers {
		if n.Priority() <= fallbackPriority {
			return n
		}
	}
	return nil
}

// extensionTypes covers formats content sniffing cannot tell apart from plain text.
var extensionTypes = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".htm":      "text/html",
	".html":     "text/html",
	".xhtml":    "application/xhtml+xml",
	".txt":      "text/plain",
}

// DetectMIMEType returns the MIME type of a file from its extension, or by
// sniffing its content when the extension is not recognised.
func DetectMIMEType(path string, content []byte) string {
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	return baseType(mimetype.Detect(content).String())
}

// baseType strips parameters such as charset from a MIME type.
func baseType(mimeType string) string {
	t, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(t))
}
