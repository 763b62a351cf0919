// Package cli provides the command-line interface for the annotator.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunk-annotator/internal/adapters/driven/config/file"
	"github.com/custodia-labs/chunk-annotator/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chunk-annotator/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/chunk-annotator/internal/core/domain"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driven"
	"github.com/custodia-labs/chunk-annotator/internal/core/ports/driving"
	"github.com/custodia-labs/chunk-annotator/internal/core/services"
	"github.com/custodia-labs/chunk-annotator/internal/logger"
	"github.com/custodia-labs/chunk-annotator/internal/normalisers"
	"github.com/custodia-labs/chunk-annotator/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configDir string
	verbose   bool
)

// Services used by the commands. Built by wireServices unless already set.
var (
	sessionService    driving.SessionService
	annotationService driving.AnnotationService
	batchService      driving.BatchService
	relationService   driving.RelationService
	reportService     driving.ReportService
	settingsService   driving.SettingsService
	chunkingService   driving.ChunkingService

	// configStore is the file-backed store behind settingsService, watched by serve.
	configStore *file.ConfigStore

	// closers release wired resources after the command finishes.
	closers []func() error

	// wired records that wireServices built the services and must drop them.
	wired bool
)

var rootCmd = &cobra.Command{
	Use:   "annotator",
	Short: "Chunk annotation server",
	Long: `annotator serves stateful annotation sessions over the Model Context Protocol.

A client starts a session from a pre-chunked document, then annotates chunks
with categories, labels and subtypes from a fixed vocabulary, records relations
between chunks, tracks progress and exports the result. The chunk command
prepares that chunk configuration from a plain text, Markdown or HTML file.`,
	SilenceUsage:       true,
	PersistentPreRunE:  wireServices,
	PersistentPostRunE: releaseServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.annotator)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command until it completes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// wireServices builds the configuration, logger and services for a command.
// Services already set (by tests) are left in place.
func wireServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if settingsService == nil {
		wired = true
		dir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		store, err := file.NewConfigStore(dir)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		configStore = store
		settingsService = services.NewSettingsService(store)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	applyLogSettings(settings)

	if chunkingService == nil {
		wired = true
		chunkingService = services.NewChunkingService(
			normalisers.NewDefaultRegistry(),
			chunker.New(chunker.WithChunkSize(settings.Chunk.Size), chunker.WithOverlap(settings.Chunk.Overlap)),
		)
	}

	if sessionService != nil {
		return nil
	}
	wired = true

	archive, err := openArchive(settings)
	if err != nil {
		return err
	}

	sessions := memory.NewSessionStore()
	annotations := services.NewAnnotationService(sessions)
	sessionService = services.NewSessionService(sessions)
	annotationService = annotations
	batchService = services.NewBatchService(annotations)
	relationService = services.NewRelationService(sessions)
	reportService = services.NewReportService(sessions, archive)
	return nil
}

// releaseServices closes resources opened by wireServices and drops the
// services it built.
func releaseServices(_ *cobra.Command, _ []string) error {
	var errs []error
	for _, closeFn := range closers {
		errs = append(errs, closeFn())
	}
	closers = nil

	if wired {
		sessionService, annotationService, batchService = nil, nil, nil
		relationService, reportService, settingsService = nil, nil, nil
		chunkingService = nil
		configStore = nil
		wired = false
	}
	return errors.Join(errs...)
}

func resolveConfigDir() (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	return file.DefaultConfigDir()
}

// openArchive opens the export archive when enabled. A nil archive disables
// recording and history.
func openArchive(settings *domain.ServerSettings) (driven.ExportArchive, error) {
	if !settings.Archive.Enabled {
		return nil, nil
	}

	dir := settings.Archive.Dir
	if dir == "" {
		base, err := resolveConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "data")
	}

	store, err := sqlite.NewStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening export archive: %w", err)
	}
	closers = append(closers, store.Close)
	logger.Debug("export archive opened", "path", store.Path())
	return store.ExportArchive(), nil
}

// applyLogSettings applies the configured log level and format.
func applyLogSettings(settings *domain.ServerSettings) {
	logger.SetJSON(settings.Log.JSON)
	if err := logger.SetLevel(settings.Log.Level.String()); err != nil {
		logger.Warn("ignoring log level", "level", settings.Log.Level, "error", err)
	}
}
