// Command annotator serves chunk annotation sessions over MCP.
package main

import (
	"os"

	"github.com/custodia-labs/chunk-annotator/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
