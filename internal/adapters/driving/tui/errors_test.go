package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrMissingSessionService,
		ErrMissingAnnotationService,
		ErrMissingRelationService,
		ErrMissingReportService,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrors_NameTheService(t *testing.T) {
	assert.Contains(t, ErrMissingSessionService.Error(), "session service")
	assert.Contains(t, ErrMissingAnnotationService.Error(), "annotation service")
	assert.Contains(t, ErrMissingRelationService.Error(), "relation service")
	assert.Contains(t, ErrMissingReportService.Error(), "report service")
}
