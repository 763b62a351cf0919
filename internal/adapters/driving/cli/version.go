package cli

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunk-annotator/internal/adapters/driving/mcp"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long: `Print the annotator version, the Go toolchain it was built with and the
version the MCP server reports to clients.

Release builds set the version with -ldflags "-X ...cli.version=v1.2.3".
Binaries installed with 'go install' report their module version instead.`,
	Run: func(cmd *cobra.Command, _ []string) {
		v := buildVersion()
		if versionShort {
			cmd.Println(v)
			return
		}
		cmd.Printf("annotator version %s\n", v)
		cmd.Printf("  go:         %s\n", runtime.Version())
		cmd.Printf("  mcp server: %s\n", mcp.Version)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version")
	rootCmd.AddCommand(versionCmd)
}

// buildVersion returns the -ldflags version, or the module version recorded
// by the Go toolchain when the binary was built without one.
func buildVersion() string {
	if version != "dev" {
		return version
	}
	info, ok := readBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return version
	}
	return info.Main.Version
}
