package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage server settings",
	Long: `View and change the settings stored in config.toml.

A running server picks up log settings changes without a restart.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a setting",
	Long: `Change a single setting and save config.toml.

Run 'annotator config keys' for the recognised keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List recognised setting keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Server]")
	if settings.HTTP.Port > 0 {
		cmd.Printf("  Transport: http on port %d\n", settings.HTTP.Port)
	} else {
		cmd.Println("  Transport: stdio")
	}
	cmd.Printf("  Rate limit: %s\n", formatRateLimit(settings.HTTP))
	cmd.Printf("  Metrics: %s\n", enabledString(settings.HTTP.MetricsEnabled))
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Level: %s\n", settings.Log.Level.Description())
	format := "text on a terminal, JSON otherwise"
	if settings.Log.JSON {
		format = "JSON"
	}
	cmd.Printf("  Format: %s\n", format)
	cmd.Println()

	cmd.Println("[Archive]")
	cmd.Printf("  Exports: %s\n", enabledString(settings.Archive.Enabled))
	dir := settings.Archive.Dir
	if dir == "" {
		dir = "(default data directory)"
	}
	cmd.Printf("  Directory: %s\n", dir)
	cmd.Println()

	cmd.Println("[Chunk]")
	cmd.Printf("  Size: %d characters\n", settings.Chunk.Size)
	cmd.Printf("  Overlap: %d characters\n", settings.Chunk.Overlap)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func formatRateLimit(h domain.HTTPSettings) string {
	if h.RateLimit <= 0 {
		return "disabled"
	}
	return fmt.Sprintf("%d req/s (burst %d)", h.RateLimit, h.Burst)
}

func enabledString(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}
