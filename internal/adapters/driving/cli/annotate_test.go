package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunk-annotator/internal/adapters/driving/tui"
	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

// stubRunApp replaces the TUI program with fn for the test.
func stubRunApp(t *testing.T, fn func(*tui.App) error) {
	t.Helper()
	orig := runApp
	runApp = fn
	t.Cleanup(func() {
		runApp = orig
		annotateOut = "annotations.json"
	})
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunks.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestAnnotateCmd_Flags(t *testing.T) {
	flag := annotateCmd.Flags().Lookup("out")
	require.NotNil(t, flag)
	assert.Equal(t, "o", flag.Shorthand)
	assert.Equal(t, "annotations.json", flag.DefValue)
}

func TestAnnotateCmd_RequiresFile(t *testing.T) {
	setupTestServices(t, nil)

	_, err := execute(t, "annotate")
	assert.Error(t, err)
}

func TestAnnotateCmd_RunsApp(t *testing.T) {
	setupTestServices(t, nil)
	path := writeConfig(t, `{"chunks":[{"chunk_id":"c1","position":0,"text":"a"}]}`)

	var started *tui.App
	stubRunApp(t, func(app *tui.App) error {
		started = app
		return nil
	})

	_, err := execute(t, "annotate", path, "--out", filepath.Join(t.TempDir(), "out.json"))
	require.NoError(t, err)
	require.NotNil(t, started)
	assert.Empty(t, started.SessionID())
}

func TestAnnotateCmd_InvalidConfig(t *testing.T) {
	setupTestServices(t, nil)
	path := writeConfig(t, `{"chunks":[]}`)
	stubRunApp(t, func(*tui.App) error {
		t.Fatal("app must not start for an invalid configuration")
		return nil
	})

	_, err := execute(t, "annotate", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestAnnotateCmd_MissingFile(t *testing.T) {
	setupTestServices(t, nil)

	_, err := execute(t, "annotate", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
