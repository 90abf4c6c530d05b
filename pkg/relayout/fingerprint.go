package relayout

import (
	"fmt"
	"math"
	"strings"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/cache"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
)

// Fingerprints split an input into two layers:
//
//   - shape: the ordered section IDs plus everything that constrains
//     placement except heights. A shape change is a structural change and
//     invalidates the previous entry.
//   - content: shape plus config, strategy, and heights rounded to the
//     nearest pixel. Two inputs with equal content fingerprints produce
//     byte-identical layouts, so a content match is an exact cache hit.
//
// The cache key combines shape and config so a container resize keys
// separately without invalidating entries for other widths.

// shapeFingerprint hashes the structural identity of a section list.
func shapeFingerprint(sections []grid.Section) string {
	var b strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&b, "%s|%d|%d|%d|%d|%t|%t|%d;",
			s.ID, s.MinColumns, s.PreferredColumns, s.MaxColumns,
			s.ColSpanOverride, s.CanGrow, s.CanShrink, s.EffectivePriority())
	}
	return cache.Hash([]byte(b.String()))
}

// configFingerprint hashes the grid geometry plus the strategy name.
func configFingerprint(cfg grid.GridConfig, strategy string) string {
	s := fmt.Sprintf("%s|%d|%g|%g|%g",
		strategy, cfg.TotalColumns, cfg.Gap, cfg.MinColumnWidth, cfg.ContainerWidth)
	return cache.Hash([]byte(s))
}

// contentFingerprint hashes shape, config, and pixel-rounded heights.
// Sub-pixel height jitter does not change the fingerprint.
func contentFingerprint(shape, config string, sections []grid.Section) string {
	var b strings.Builder
	b.WriteString(shape)
	b.WriteByte('|')
	b.WriteString(config)
	for _, s := range sections {
		fmt.Fprintf(&b, "|%d", int64(math.Round(s.EstimatedHeight)))
	}
	return cache.Hash([]byte(b.String()))
}

// entryKey is the cache key: one entry per (section shape, config) pair.
func entryKey(shape, config string) string {
	return shape + ":" + config
}
