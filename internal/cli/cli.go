// Package cli implements the osicards command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/buildinfo"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/cache"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "osicards"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "osicards",
		Short:        "OSI Cards packs card sections into responsive grid layouts",
		Long:         `OSI Cards is the layout engine for AI-generated card dashboards: it estimates section heights from content signals, packs them into a responsive multi-column grid, and scores the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.packCommand())
	root.AddCommand(c.scoreCommand())
	root.AddCommand(c.genCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/osicards/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Shared Flags
// =============================================================================

// addGeometryFlags registers the container geometry and strategy flags every
// packing command shares.
func addGeometryFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.ContainerWidth, "width", pipeline.DefaultContainerWidth, "container width in pixels")
	cmd.Flags().Float64Var(&opts.Gap, "gap", pipeline.DefaultGap, "gap between columns and cards in pixels")
	cmd.Flags().Float64Var(&opts.MinColumnWidth, "min-column-width", pipeline.DefaultMinColumnWidth, "narrowest allowed column in pixels")
	cmd.Flags().IntVar(&opts.MaxColumns, "max-columns", pipeline.DefaultMaxColumns, "maximum number of columns")
	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", pipeline.DefaultStrategy, "packing strategy: row-first, skyline, legacy")
	cmd.Flags().StringVar(&opts.SizingConfig, "sizing-config", "", "TOML file overlaying the sizing coefficients")
}
