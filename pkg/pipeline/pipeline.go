// Package pipeline provides the core layout pipeline for OSI Cards.
//
// This package implements the complete estimate → resolve → pack → score
// pipeline that can be used by CLI, API, and demo components. By centralizing
// this logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Estimate: Derive section heights and span bounds from content signals
//  2. Resolve: Compute the column geometry for the container width
//  3. Pack: Place every section with the selected strategy
//  4. Score: Grade the resulting layout (utilization, gaps, balance)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Strategy:       "skyline",
//	    ContainerWidth: 1280,
//	}
//	result, err := runner.Execute(ctx, inputs, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	layout := result.Layout
//
// Run individual stages:
//
//	// Estimate only
//	sections, err := opts.BuildSections(inputs, table)
//
//	// Pack with prepared sections
//	layout, err := runner.Pack(ctx, sections, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/cache"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/pack"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/score"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Demo
// =============================================================================

const (
	// DefaultContainerWidth is the container width assumed when none is given.
	DefaultContainerWidth = 1280.0

	// DefaultGap is the spacing between columns and stacked cards, in pixels.
	DefaultGap = 12.0

	// DefaultMinColumnWidth is the narrowest column the resolver will produce.
	DefaultMinColumnWidth = 260.0

	// DefaultMaxColumns caps how many columns the resolver may use.
	DefaultMaxColumns = 4

	// DefaultHeightTolerance is the relative height change below which the
	// re-layout coordinator preserves existing placements.
	DefaultHeightTolerance = 0.05

	// DefaultCacheCapacity is the re-layout coordinator's entry limit.
	DefaultCacheCapacity = 32
)

// DefaultStrategy is the default packing strategy.
const DefaultStrategy = string(pack.DefaultStrategy)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Geometry options
	ContainerWidth float64 `json:"container_width,omitempty"`
	Gap            float64 `json:"gap,omitempty"`
	MinColumnWidth float64 `json:"min_column_width,omitempty"`
	MaxColumns     int     `json:"max_columns,omitempty"`

	// Pack options
	Strategy        string  `json:"strategy,omitempty"`
	HeightTolerance float64 `json:"height_tolerance,omitempty"`
	CacheCapacity   int     `json:"cache_capacity,omitempty"`
	Refresh         bool    `json:"refresh,omitempty"`
	NoScore         bool    `json:"no_score,omitempty"`

	// SizingConfig is a path to a TOML coefficient file overlaying the
	// built-in sizing defaults. Empty means defaults only.
	SizingConfig string `json:"sizing_config,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the packed layout with positions and notes.
	Layout grid.LayoutResult

	// Quality grades the layout. Zero value when Options.NoScore is set.
	Quality score.Quality

	// SectionsHash is the content hash of the estimated sections.
	SectionsHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SectionCount int
	Columns      int
	EstimateTime time.Duration
	PackTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PackHit bool // Whether the packed layout came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as
// calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetPackDefaults()
	if err := o.ValidateForPack(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetPackDefaults sets default values for geometry and packing.
func (o *Options) SetPackDefaults() {
	if o.ContainerWidth == 0 {
		o.ContainerWidth = DefaultContainerWidth
	}
	if o.Gap == 0 {
		o.Gap = DefaultGap
	}
	if o.MinColumnWidth == 0 {
		o.MinColumnWidth = DefaultMinColumnWidth
	}
	if o.MaxColumns == 0 {
		o.MaxColumns = DefaultMaxColumns
	}
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.HeightTolerance == 0 {
		o.HeightTolerance = DefaultHeightTolerance
	}
	if o.CacheCapacity == 0 {
		o.CacheCapacity = DefaultCacheCapacity
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForPack checks that the options describe a packable configuration.
func (o *Options) ValidateForPack() error {
	if o.Strategy != "" && !pack.Strategy(o.Strategy).Valid() {
		return fmt.Errorf("invalid strategy: %q (must be one of: row-first, skyline, legacy)", o.Strategy)
	}
	if o.Gap < 0 {
		return fmt.Errorf("gap must not be negative, got %g", o.Gap)
	}
	if o.MinColumnWidth < 0 {
		return fmt.Errorf("min_column_width must not be negative, got %g", o.MinColumnWidth)
	}
	if o.MaxColumns < 0 {
		return fmt.Errorf("max_columns must not be negative, got %d", o.MaxColumns)
	}
	if o.HeightTolerance < 0 || o.HeightTolerance >= 1 {
		return fmt.Errorf("height_tolerance must be in [0, 1), got %g", o.HeightTolerance)
	}
	return nil
}

// ResolveConfig computes the column geometry these options describe.
func (o *Options) ResolveConfig() grid.GridConfig {
	return grid.Resolve(o.ContainerWidth, o.Gap, o.MinColumnWidth, o.MaxColumns)
}

// LayoutKeyOpts returns cache key options for layout packing.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Strategy:       o.Strategy,
		ContainerWidth: o.ContainerWidth,
		Gap:            o.Gap,
		MinColumnWidth: o.MinColumnWidth,
		MaxColumns:     o.MaxColumns,
	}
}
