package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunk-annotator/internal/adapters/driving/tui"
)

var annotateOut string

// runApp starts the TUI program. Replaced in tests.
var runApp = (*tui.App).Run

var annotateCmd = &cobra.Command{
	Use:   "annotate FILE",
	Short: "Annotate a chunk configuration interactively",
	Long: `Open a chunk configuration in the terminal annotator.

The file uses the same format as 'annotator validate'. A session is started
from it and every change goes through the same checks as the MCP tools.

Controls:
  ↑/k, ↓/j - Select chunk
  c, l, s  - Cycle category, label, subtype
  m        - Mark relation source
  t        - Cycle relation type
  r        - Relate marked chunk to selected chunk
  e        - Write export file
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVarP(&annotateOut, "out", "o", "annotations.json", "export file written by 'e'")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	config, err := readChunkConfig(args[0])
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	app, err := tui.NewApp(&tui.Ports{
		Sessions:    sessionService,
		Annotations: annotationService,
		Relations:   relationService,
		Reports:     reportService,
	}, config, annotateOut)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	return runApp(app.WithContext(cmd.Context()))
}
