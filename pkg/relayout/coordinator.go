// Package relayout provides incremental re-layout for streaming sections.
//
// As card content streams in, section height estimates change on almost
// every frame. Repacking from scratch each time makes the layout jitter:
// sections jump between columns while the user is reading them. The
// [Coordinator] wraps a [pack.Packer] with a fingerprint-keyed cache and a
// height tolerance so that:
//
//   - identical input returns the cached result untouched (an exact hit),
//   - small height drift (below the tolerance) keeps every section's column
//     and top and only updates the recorded heights,
//   - structural changes (count, order, or span constraints) invalidate the
//     previous entry and repack fully.
//
// The Coordinator owns the only mutable state in the engine. It serializes
// access internally, so a host that schedules concurrent layout requests
// gets queued, consistent packs.
package relayout

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/observability"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/pack"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/score"
)

const (
	// DefaultCapacity bounds the coordinator's cache.
	DefaultCapacity = 32

	// DefaultHeightTolerance is the relative height change below which a
	// section keeps its previous placement (5%).
	DefaultHeightTolerance = 0.05
)

// Info describes how a [Coordinator.Pack] call was served.
type Info struct {
	// CacheHit is true when the result came from the cache unchanged.
	CacheHit bool

	// Preserved is true when placements were kept and only heights updated.
	Preserved bool

	// Unchanged lists the IDs of sections whose full geometry (column,
	// span, top, height) is identical to the previous result. The rendering
	// layer can skip re-rendering these.
	Unchanged []string
}

// entry is one cached layout keyed by (section shape, config).
type entry struct {
	key     string
	shape   string
	content string
	result  grid.LayoutResult
}

// Coordinator wraps a packer with incremental re-layout.
// Construct with [New]; the zero value is not usable.
type Coordinator struct {
	mu        sync.Mutex
	packer    pack.Packer
	capacity  int
	tolerance float64
	logger    *log.Logger

	entries   map[string]*entry
	order     []string // LRU order, most recently used last
	lastShape string
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithCapacity bounds the number of cached layouts.
func WithCapacity(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithHeightTolerance sets the relative height change below which a
// section's placement is preserved across packs.
func WithHeightTolerance(t float64) Option {
	return func(c *Coordinator) {
		if t >= 0 {
			c.tolerance = t
		}
	}
}

// WithLogger sets the coordinator's logger. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Coordinator delegating to the given packer.
func New(packer pack.Packer, opts ...Option) *Coordinator {
	c := &Coordinator{
		packer:    packer,
		capacity:  DefaultCapacity,
		tolerance: DefaultHeightTolerance,
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
		entries:   make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Strategy returns the name of the wrapped packer.
func (c *Coordinator) Strategy() string { return c.packer.Name() }

// Len returns the number of cached layouts.
func (c *Coordinator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Pack lays out the sections, consulting the cache first.
//
// On an exact content match the returned result shares the cached Positions
// backing array, so callers can detect the hit by identity as well as
// through [Info]. A cached entry inconsistent with the request (position
// count or ID mismatch after a fingerprint collision) self-heals: it is
// dropped and the layout recomputed, never surfaced as an error.
func (c *Coordinator) Pack(sections []grid.Section, cfg grid.GridConfig) (grid.LayoutResult, Info, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Fail fast before touching the cache so malformed input never taints it.
	if err := grid.ValidateConfig(cfg); err != nil {
		return grid.LayoutResult{}, Info{}, fmt.Errorf("grid config: %w", err)
	}
	if err := grid.ValidateSections(sections); err != nil {
		return grid.LayoutResult{}, Info{}, fmt.Errorf("sections: %w", err)
	}

	shape := shapeFingerprint(sections)
	config := configFingerprint(cfg, c.packer.Name())
	key := entryKey(shape, config)
	content := contentFingerprint(shape, config, sections)

	// A structural change supersedes the previous shape: its entries are
	// invalidated, not left to age out. Config-only changes (e.g. a
	// container resize) keep other entries so resize round-trips still hit.
	if c.lastShape != "" && c.lastShape != shape {
		c.invalidateShape(c.lastShape)
	}
	c.lastShape = shape

	ctx := context.Background()
	if e, ok := c.entries[key]; ok {
		c.touch(key)

		switch {
		case !c.consistent(e, sections):
			c.logger.Debug("inconsistent cache entry, recomputing", "key", key)
			c.remove(key)

		case e.content == content:
			observability.Cache().OnCacheHit(ctx, "relayout")
			return e.result, Info{CacheHit: true, Unchanged: e.result.SectionIDs()}, nil

		case c.withinTolerance(e, sections):
			result, unchanged := c.preservePlacements(e, sections, cfg)
			e.result = result
			e.content = content
			observability.Cache().OnCacheHit(ctx, "relayout")
			return result, Info{Preserved: true, Unchanged: unchanged}, nil
		}
	}

	observability.Cache().OnCacheMiss(ctx, "relayout")

	result, err := c.packer.Pack(sections, cfg)
	if err != nil {
		return grid.LayoutResult{}, Info{}, err
	}

	var unchanged []string
	if prev, ok := c.entries[key]; ok {
		unchanged = unchangedIDs(prev.result, result)
	}

	c.store(&entry{key: key, shape: shape, content: content, result: result})
	return result, Info{Unchanged: unchanged}, nil
}

// consistent checks a cached entry against the request: one position per
// section, matching IDs.
func (c *Coordinator) consistent(e *entry, sections []grid.Section) bool {
	if len(e.result.Positions) != len(sections) {
		return false
	}
	byID := e.result.PositionsByID()
	for _, s := range sections {
		if _, ok := byID[s.ID]; !ok {
			return false
		}
	}
	return true
}

// withinTolerance reports whether every section's height changed by less
// than the tolerance relative to the cached placement.
func (c *Coordinator) withinTolerance(e *entry, sections []grid.Section) bool {
	byID := e.result.PositionsByID()
	for _, s := range sections {
		old := byID[s.ID].Height
		if old <= 0 {
			if s.EstimatedHeight != old {
				return false
			}
			continue
		}
		if math.Abs(s.EstimatedHeight-old) >= c.tolerance*old {
			return false
		}
	}
	return true
}

// preservePlacements keeps every section's column and top from the cached
// result, updates heights, and re-derives the aggregate metrics. Returns the
// updated result and the IDs whose geometry did not change at all.
func (c *Coordinator) preservePlacements(e *entry, sections []grid.Section, cfg grid.GridConfig) (grid.LayoutResult, []string) {
	heights := make(map[string]float64, len(sections))
	for _, s := range sections {
		heights[s.ID] = s.EstimatedHeight
	}

	result := e.result
	result.Positions = slices.Clone(e.result.Positions)

	var unchanged []string
	var totalHeight float64
	for i := range result.Positions {
		p := &result.Positions[i]
		h := heights[p.SectionID]
		if h == p.Height {
			unchanged = append(unchanged, p.SectionID)
		}
		p.Height = h
		totalHeight = max(totalHeight, p.Bottom())
	}

	result.TotalHeight = totalHeight
	q := score.Score(result, cfg)
	result.UtilizationPercent = q.UtilizationPercent
	result.GapCount = q.GapCount

	c.logger.Debug("preserved placements across height drift",
		"sections", len(sections), "unchanged", len(unchanged))
	return result, unchanged
}

// unchangedIDs lists sections whose geometry is identical in both results.
func unchangedIDs(prev, next grid.LayoutResult) []string {
	byID := prev.PositionsByID()
	var ids []string
	for _, p := range next.Positions {
		if old, ok := byID[p.SectionID]; ok && old == p {
			ids = append(ids, p.SectionID)
		}
	}
	return ids
}

// invalidateShape drops every entry cached for a section shape.
func (c *Coordinator) invalidateShape(shape string) {
	for key, e := range c.entries {
		if e.shape == shape {
			c.remove(key)
		}
	}
}

// store inserts an entry, evicting the least recently used beyond capacity.
// Must be called with the mutex held.
func (c *Coordinator) store(e *entry) {
	if old, ok := c.entries[e.key]; ok {
		*old = *e
		c.touch(e.key)
		return
	}
	c.entries[e.key] = e
	c.order = append(c.order, e.key)
	for len(c.order) > c.capacity {
		evict := c.order[0]
		c.logger.Debug("evicting cached layout", "key", evict)
		c.remove(evict)
	}
}

// touch marks a key as most recently used. Must be called with the mutex held.
func (c *Coordinator) touch(key string) {
	if i := slices.Index(c.order, key); i >= 0 {
		c.order = append(slices.Delete(c.order, i, i+1), key)
	}
}

// remove drops an entry. Must be called with the mutex held.
func (c *Coordinator) remove(key string) {
	delete(c.entries, key)
	if i := slices.Index(c.order, key); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}
