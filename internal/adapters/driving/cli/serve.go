package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunk-annotator/internal/adapters/driven/config/file"
	"github.com/custodia-labs/chunk-annotator/internal/adapters/driving/mcp"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driving"
	"github.com/custodia-labs/chunk-annotator/internal/logger"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server.

By default, the server communicates over stdio using JSON-RPC and can be
used with any MCP-compatible client.

Use --port (or server.port in config.toml) to serve HTTP instead. The MCP
endpoint is /mcp and Prometheus metrics are on /metrics unless
metrics.enabled is false. Requests above http.rate_limit per second are
rejected with 429.

Sessions live in memory and are lost when the server stops.

Examples:
  # Stdio mode (default)
  annotator serve

  # HTTP mode
  annotator serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "annotator": {
        "command": "/path/to/annotator",
        "args": ["serve"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (0 = use server.port, or stdio when unset)")
	rootCmd.AddCommand(serveCmd)
}

// newMCPServer builds the MCP server from the wired services.
func newMCPServer() (*mcp.Server, error) {
	return mcp.NewServer(&mcp.Ports{
		Sessions:    sessionService,
		Annotations: annotationService,
		Batch:       batchService,
		Relations:   relationService,
		Reports:     reportService,
	})
}

func runServe(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	server, err := newMCPServer()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	settingsSvc := settingsService
	stopWatch := watchConfig(ctx, configStore, func() { reloadLogSettings(settingsSvc) })
	defer stopWatch()

	port := settings.HTTP.Port
	if servePort > 0 {
		port = servePort
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.PrintErrf("MCP server listening on http://localhost%s/mcp\n", addr)
		return server.RunHTTP(ctx, addr, mcp.HTTPOptions{
			RateLimit: settings.HTTP.RateLimit,
			Burst:     settings.HTTP.Burst,
			Metrics:   settings.HTTP.MetricsEnabled,
		})
	}

	return server.Run(ctx)
}

// watchConfig calls onChange whenever config.toml changes. The returned stop
// function cancels the watch and waits for it to exit, so onChange never runs
// after stop returns.
func watchConfig(ctx context.Context, store *file.ConfigStore, onChange func()) (stop func()) {
	if store == nil {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		err := store.Watch(ctx, onChange)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("config watch stopped", "error", err)
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// reloadLogSettings re-applies the log level and format from settings.
func reloadLogSettings(settings driving.SettingsService) {
	current, err := settings.Get()
	if err != nil {
		logger.Warn("reloading settings failed", "error", err)
		return
	}
	applyLogSettings(current)
	logger.Info("log settings reloaded", "level", current.Log.Level, "json", current.Log.JSON)
}
