package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	SetVerbose(false)
	SetJSON(false)
	_ = SetLevel("info")
	SetOutput(os.Stderr)
}

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("annotation saved", "chunk_id", "c1")

	recs := records(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "DEBUG", recs[0]["level"])
	assert.Equal(t, "annotation saved", recs[0]["msg"])
	assert.Equal(t, "c1", recs[0]["chunk_id"])
}

func TestDebug_FilteredAtInfo(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden")

	assert.Zero(t, buf.Len())
}

func TestSetLevel(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	require.NoError(t, SetLevel("warn"))

	Info("dropped")
	Warn("kept", "n", 1)
	Error("also kept")

	recs := records(t, &buf)
	require.Len(t, recs, 2)
	assert.Equal(t, "WARN", recs[0]["level"])
	assert.Equal(t, "ERROR", recs[1]["level"])
}

func TestSetLevel_Unknown(t *testing.T) {
	defer reset()

	err := SetLevel("trace")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"debug", false},
		{"INFO", false},
		{" warn ", false},
		{"error", false},
		{"", false},
		{"verbose", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNonTerminalOutputIsJSON(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("session created", "session_id", "s1")

	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestLogger_ReturnsCurrent(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	Logger().Info("direct")

	assert.Contains(t, buf.String(), "direct")
}
