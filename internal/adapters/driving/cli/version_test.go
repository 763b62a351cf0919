package cli

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chunk-annotator/internal/adapters/driving/mcp"
)

// setVersion overrides the -ldflags version and the build info for one test.
func setVersion(t *testing.T, v string, info *debug.BuildInfo) {
	t.Helper()
	origVersion, origRead := version, readBuildInfo
	version = v
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	t.Cleanup(func() {
		version, readBuildInfo = origVersion, origRead
		versionShort = false
		versionCmd.Flags().Lookup("short").Changed = false
	})
}

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name    string
		ldflags string
		info    *debug.BuildInfo
		want    string
	}{
		{name: "ldflags wins", ldflags: "v1.4.0", info: &debug.BuildInfo{Main: debug.Module{Version: "v1.3.0"}}, want: "v1.4.0"},
		{name: "module version from go install", ldflags: "dev", info: &debug.BuildInfo{Main: debug.Module{Version: "v1.3.0"}}, want: "v1.3.0"},
		{name: "local build", ldflags: "dev", info: &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, want: "dev"},
		{name: "no build info", ldflags: "dev", info: nil, want: "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setVersion(t, tt.ldflags, tt.info)
			assert.Equal(t, tt.want, buildVersion())
		})
	}
}

func TestVersionCmd_PrintsBuildDetails(t *testing.T) {
	setupTestServices(t, nil)
	setVersion(t, "v1.4.0", nil)

	out, err := execute(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "annotator version v1.4.0")
	assert.Contains(t, out, runtime.Version())
	assert.Contains(t, out, "mcp server: "+mcp.Version)
}

func TestVersionCmd_Short(t *testing.T) {
	setupTestServices(t, nil)
	setVersion(t, "dev", &debug.BuildInfo{Main: debug.Module{Version: "v1.3.0"}})

	out, err := execute(t, "version", "--short")
	require.NoError(t, err)

	assert.Equal(t, "v1.3.0", strings.TrimSpace(out))
}
