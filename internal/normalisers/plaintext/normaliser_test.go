package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
}

func TestSupportedMIMETypes(t *testing.T) {
	mimeTypes := New().SupportedMIMETypes()

	assert.Contains(t, mimeTypes, "text/plain")
	assert.Contains(t, mimeTypes, "text/csv")
	assert.NotContains(t, mimeTypes, "text/html")
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 5, New().Priority())
}

func TestNormalise_Success(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/docs/fee_schedule-2026.txt",
		MIMEType: "text/plain",
		Content:  []byte("Participant fees\n\nMarket data fees"),
	}

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, raw.URI, doc.URI)
	assert.Equal(t, "fee schedule 2026", doc.Title)
	assert.Equal(t, "Participant fees\n\nMarket data fees", doc.Content)
	assert.Equal(t, "plaintext", doc.Format)
}

func TestNormalise_LineEndingsAndBOM(t *testing.T) {
	raw := &domain.RawDocument{
		URI:     "notes.txt",
		Content: []byte("\ufeffline one\r\nline two\rline three"),
	}

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "line one\nline two\nline three", doc.Content)
}

func TestNormalise_NilInput(t *testing.T) {
	doc, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, doc)
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{"/path/to/readme.txt", "readme"},
		{"my_file-name.txt", "my file name"},
		{"noextension", "noextension"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractTitle(tt.uri))
		})
	}
}
