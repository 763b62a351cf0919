package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a chunk configuration file",
	Long: `Check a chunk configuration the way start_session does, without starting a server.

The file holds the configuration object passed as "config":

  {"chunks": [{"chunk_id": "c1", "position": 0, "text": "..."}]}

Failures are printed as the tagged error a client would receive.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	config, err := readChunkConfig(args[0])
	if err != nil {
		return err
	}

	if err := config.Validate(); err != nil {
		if e, ok := domain.AsError(err); ok {
			data, _ := json.MarshalIndent(e, "", "  ")
			cmd.Println(string(data))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cmd.Printf("Valid configuration: %d chunk(s)\n", len(config.Chunks))
	return nil
}

func readChunkConfig(path string) (domain.ChunkConfig, error) {
	var config domain.ChunkConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return config, nil
}
