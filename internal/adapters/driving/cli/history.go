package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

var (
	historySession string
	historyLimit   int
	historyJSON    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived exports",
	Long: `List exports recorded in the export archive, newest first.

Exports are archived only while archive.enabled is true in config.toml.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historySession, "session", "s", "", "only list exports of this session")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of records (0 = all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output records as JSON, including payloads")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	records, err := reportService.History(cmd.Context(), historySession, historyLimit)
	if errors.Is(err, domain.ErrArchiveUnavailable) {
		return errors.New("export archive is disabled; run 'annotator config set archive.enabled true'")
	}
	if err != nil {
		return fmt.Errorf("failed to list exports: %w", err)
	}

	if historyJSON {
		return outputHistoryJSON(cmd, records)
	}
	return outputHistoryTable(cmd, records)
}

func outputHistoryJSON(cmd *cobra.Command, records []domain.ExportRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputHistoryTable(cmd *cobra.Command, records []domain.ExportRecord) error {
	if len(records) == 0 {
		cmd.Println("No exports archived.")
		return nil
	}

	for _, r := range records {
		cmd.Printf("%s  session %s  %d/%d annotated  (%s)\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.SessionID, r.AnnotatedCount, r.ChunkCount, r.ID)
	}
	return nil
}
