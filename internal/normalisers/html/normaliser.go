package html

import (
	"context"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts an HTML document to plain text.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	rawContent := string(raw.Content)

	return &domain.Document{
		URI:     raw.URI,
		Title:   extractHTMLTitle(rawContent, raw.URI),
		Content: stripHTML(rawContent),
		Format:  "html",
	}, nil
}

// paragraphMark stands in for a paragraph break until lines are assembled.
const paragraphMark = "\x1e"

// Pre-compiled regular expressions for HTML parsing performance.
var (
	titleTag      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag   = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag       = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag        = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	paragraphTags = regexp.MustCompile(`(?i)</?(p|h[1-6]|table|blockquote|pre|section|article|ul|ol|header|footer|main|nav|hr)(\s[^>]*)?/?>`)
	lineTags      = regexp.MustCompile(`(?i)</?(div|li|tr|br|dt|dd|caption)(\s[^>]*)?/?>`)
	cellEnd       = regexp.MustCompile(`(?i)</t[dh]>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiSpaces   = regexp.MustCompile(`[ \t\f\v]+`)
	trailingSep   = regexp.MustCompile(`(\s*\|)+$`)
)

// extractHTMLTitle extracts a title from the HTML content or falls back to filename.
func extractHTMLTitle(content, uri string) string {
	// Try to find <title> tag
	matches := titleTag.FindStringSubmatch(content)
	if len(matches) > 1 {
		title := strings.TrimSpace(html.UnescapeString(matches[1]))
		if title != "" {
			return title
		}
	}

	// Fall back to filename
	filename := filepath.Base(uri)
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

// stripHTML removes HTML tags and extracts readable text content.
func stripHTML(content string) string {
	// Remove script, style, noscript, head, and svg tags entirely
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	content = paragraphTags.ReplaceAllString(content, "\n"+paragraphMark+"\n")
	content = lineTags.ReplaceAllString(content, "\n")
	content = cellEnd.ReplaceAllString(content, " | ")

	// Strip all remaining HTML tags
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = multiSpaces.ReplaceAllString(content, " ")

	// Drop empty lines; a paragraph mark between two text lines becomes one blank line.
	var result []string
	pending := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == paragraphMark {
			pending = len(result) > 0
			continue
		}
		line = strings.TrimSpace(trailingSep.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		if pending {
			result = append(result, "")
			pending = false
		}
		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
