package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/cache"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/observability"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/pack"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/score"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/sizing"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete estimate → resolve → pack → score pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, inputs []SectionInput, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Estimate
	estimateStart := time.Now()
	observability.Pack().OnEstimateStart(ctx, len(inputs))
	table, err := sizing.LoadTable(opts.SizingConfig)
	if err != nil {
		return nil, fmt.Errorf("estimate: %w", err)
	}
	sections, err := opts.BuildSections(inputs, table)
	if err != nil {
		return nil, fmt.Errorf("estimate: %w", err)
	}
	result.Stats.EstimateTime = time.Since(estimateStart)
	result.Stats.SectionCount = len(sections)
	observability.Pack().OnEstimateComplete(ctx, len(sections), result.Stats.EstimateTime)

	opts.Logger.Info("estimated sections",
		"sections", len(sections),
		"duration", result.Stats.EstimateTime)

	// Stage 2: Resolve (pure arithmetic, not worth caching)
	cfg := opts.ResolveConfig()
	result.Stats.Columns = cfg.TotalColumns

	// Stage 3: Pack
	packStart := time.Now()
	layout, packHit, err := r.PackWithCacheInfo(ctx, sections, opts)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	result.Layout = layout
	result.Stats.PackTime = time.Since(packStart)
	result.CacheInfo.PackHit = packHit

	if data, err := json.Marshal(sections); err == nil {
		result.SectionsHash = cache.Hash(data)
	}

	opts.Logger.Info("packed layout",
		"strategy", opts.Strategy,
		"columns", cfg.TotalColumns,
		"height", layout.TotalHeight,
		"duration", result.Stats.PackTime)

	// Stage 4: Score
	if !opts.NoScore {
		result.Quality = score.Score(layout, cfg)
		opts.Logger.Info("scored layout",
			"utilization", fmt.Sprintf("%.1f%%", result.Quality.UtilizationPercent),
			"gaps", result.Quality.GapCount,
			"balance", fmt.Sprintf("%.1f", result.Quality.BalanceScore))
	}

	return result, nil
}

// PackWithCacheInfo packs sections with caching and returns cache hit info.
func (r *Runner) PackWithCacheInfo(ctx context.Context, sections []grid.Section, opts Options) (grid.LayoutResult, bool, error) {
	opts.SetPackDefaults()
	if err := opts.ValidateForPack(); err != nil {
		return grid.LayoutResult{}, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the estimated sections
	sectionsData, err := json.Marshal(sections)
	if err != nil {
		return grid.LayoutResult{}, false, fmt.Errorf("serialize sections for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(sectionsData), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := grid.UnmarshalResult(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, cacheKey)
				return cached, true, nil // Cache hit
			}
			// Undecodable entry: drop it and fall through to repack
			_ = r.Cache.Delete(ctx, cacheKey)
		}
	}
	observability.Cache().OnCacheMiss(ctx, cacheKey)

	// Pack
	packer, err := pack.New(pack.Strategy(opts.Strategy))
	if err != nil {
		return grid.LayoutResult{}, false, err
	}

	packStart := time.Now()
	observability.Pack().OnPackStart(ctx, opts.Strategy, len(sections))
	layout, err := packer.Pack(sections, opts.ResolveConfig())
	observability.Pack().OnPackComplete(ctx, opts.Strategy, len(sections), time.Since(packStart), err)
	if err != nil {
		return grid.LayoutResult{}, false, err
	}

	// Cache the result
	if data, err := grid.MarshalResult(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, cacheKey, len(data))
	}

	return layout, false, nil // Cache miss
}

// Pack is a convenience wrapper that calls PackWithCacheInfo and discards the
// cache hit info.
func (r *Runner) Pack(ctx context.Context, sections []grid.Section, opts Options) (grid.LayoutResult, error) {
	layout, _, err := r.PackWithCacheInfo(ctx, sections, opts)
	return layout, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
