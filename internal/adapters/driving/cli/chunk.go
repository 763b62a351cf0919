package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/normalisers"
)

var (
	chunkSize     int
	chunkOverlap  int
	chunkPrefix   string
	chunkMIMEType string
	chunkOut      string
)

var chunkCmd = &cobra.Command{
	Use:   "chunk FILE",
	Short: "Split a document into a chunk configuration",
	Long: `Split a plain text, Markdown or HTML document into chunks and print the
chunk configuration that start_session and 'annotator annotate' accept.

Formatting is stripped before splitting. Chunks end at a paragraph break
where possible and are numbered from zero:

  {"chunks": [{"chunk_id": "chunk-000", "position": 0, "text": "..."}]}

Size and overlap default to chunk.size and chunk.overlap from the settings.`,
	Args: cobra.ExactArgs(1),
	RunE: runChunk,
}

func init() {
	chunkCmd.Flags().IntVar(&chunkSize, "size", 0, "maximum characters per chunk (default chunk.size)")
	chunkCmd.Flags().IntVar(&chunkOverlap, "overlap", 0, "characters shared by consecutive chunks (default chunk.overlap)")
	chunkCmd.Flags().StringVar(&chunkPrefix, "prefix", domain.DefaultChunkIDPrefix, "chunk id prefix")
	chunkCmd.Flags().StringVar(&chunkMIMEType, "type", "", "document MIME type (default detected)")
	chunkCmd.Flags().StringVarP(&chunkOut, "out", "o", "", "write the configuration to a file instead of stdout")
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	opts, err := splitOptions(cmd)
	if err != nil {
		return err
	}

	mimeType := chunkMIMEType
	if mimeType == "" {
		mimeType = normalisers.DetectMIMEType(path, content)
	}

	config, err := chunkingService.Split(cmd.Context(), &domain.RawDocument{
		URI:      path,
		MIMEType: mimeType,
		Content:  content,
	}, opts)
	if err != nil {
		return fmt.Errorf("failed to chunk %s: %w", path, err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	data = append(data, '\n')

	if chunkOut == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(chunkOut, data, 0o600); err != nil {
		return fmt.Errorf("writing configuration: %w", err)
	}
	cmd.Printf("Wrote %d chunk(s) to %s\n", len(config.Chunks), chunkOut)
	return nil
}

// splitOptions resolves the size and overlap flags against the settings.
func splitOptions(cmd *cobra.Command) (domain.SplitOptions, error) {
	opts := domain.SplitOptions{Size: chunkSize, Overlap: chunkOverlap, IDPrefix: chunkPrefix}

	if !cmd.Flags().Changed("size") || !cmd.Flags().Changed("overlap") {
		settings, err := settingsService.Get()
		if err != nil {
			return opts, fmt.Errorf("reading settings: %w", err)
		}
		if !cmd.Flags().Changed("size") {
			opts.Size = settings.Chunk.Size
		}
		if !cmd.Flags().Changed("overlap") {
			opts.Overlap = settings.Chunk.Overlap
		}
	}

	if opts.Size <= 0 {
		return opts, fmt.Errorf("%w: chunk size must be positive", domain.ErrInvalidInput)
	}
	if opts.Overlap < 0 || opts.Overlap >= opts.Size {
		return opts, fmt.Errorf("%w: chunk overlap must be at least 0 and less than the size", domain.ErrInvalidInput)
	}
	return opts, nil
}
