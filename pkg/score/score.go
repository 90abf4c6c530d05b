// Package score computes quality metrics for packed layouts.
//
// The scorer is consumed in two places: the packing strategies fill
// UtilizationPercent and GapCount on every [grid.LayoutResult] they produce,
// and the test suite uses the same numbers to compare strategies against the
// legacy baseline. BalanceScore is advisory reporting only and never feeds
// back into placement decisions.
package score

import (
	"math"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
)

const (
	// bandTolerance groups position tops into row bands for gap counting.
	// Tops within this many pixels of a band's anchor count as the same band.
	bandTolerance = 10.0

	// fillThreshold is the fraction of the container width a band's
	// rightmost edge must reach to not count as a gap.
	fillThreshold = 0.95

	// gapPenalty is subtracted from BalanceScore once per counted gap.
	gapPenalty = 5.0
)

// Quality aggregates the scorer's metrics for one layout.
type Quality struct {
	UtilizationPercent float64 `json:"utilization_percent" bson:"utilization_percent"`
	GapCount           int     `json:"gap_count" bson:"gap_count"`
	BalanceScore       float64 `json:"balance_score" bson:"balance_score"`
}

// Score computes utilization, gap count, and visual balance for a layout.
//
// Utilization is the covered fraction of the packed rectangle, with the
// structural inter-section gap bands discounted from the denominator: a
// column stacking n sections necessarily spends Gap*(n-1) pixels on spacing,
// and that spacing is not wasted space. A perfectly packed layout therefore
// scores exactly 100 even with a nonzero gap. An empty layout also scores
// 100 - there is nothing to waste.
func Score(r grid.LayoutResult, cfg grid.GridConfig) Quality {
	return Quality{
		UtilizationPercent: Utilization(r, cfg),
		GapCount:           CountGaps(r, cfg),
		BalanceScore:       Balance(r, cfg),
	}
}

// Utilization returns the covered-area percentage in [0, 100].
func Utilization(r grid.LayoutResult, cfg grid.GridConfig) float64 {
	totalHeight := totalHeight(r)
	if totalHeight <= 0 || cfg.TotalColumns < 1 {
		return 100
	}

	var covered float64
	stacks := make([]int, cfg.TotalColumns)
	for _, p := range r.Positions {
		covered += float64(p.ColSpan) * p.Height
		for col := p.Column; col < p.Column+p.ColSpan && col < cfg.TotalColumns; col++ {
			if col >= 0 {
				stacks[col]++
			}
		}
	}

	// Structural spacing: each column with n stacked sections carries n-1
	// mandatory gap bands.
	var spacing float64
	for _, n := range stacks {
		if n > 1 {
			spacing += cfg.Gap * float64(n-1)
		}
	}

	denom := float64(cfg.TotalColumns)*totalHeight - spacing
	if denom <= 0 {
		return 100
	}
	return clampPercent(100 * covered / denom)
}

// CountGaps returns the number of row bands whose rightmost occupied edge
// falls short of the container width.
//
// Positions are grouped into bands by their top coordinate: a position joins
// an existing band when its top is within the band tolerance of the band's
// anchor, otherwise it opens a new band. A band counts as a gap when its
// rightmost edge is below 95% of the container width.
func CountGaps(r grid.LayoutResult, cfg grid.GridConfig) int {
	if len(r.Positions) == 0 || cfg.ContainerWidth <= 0 {
		return 0
	}

	type band struct {
		top   float64
		right float64
	}
	var bands []band

	for _, p := range r.Positions {
		right := p.RightEdge(cfg)
		placed := false
		for i := range bands {
			if math.Abs(bands[i].top-p.Top) <= bandTolerance {
				bands[i].right = max(bands[i].right, right)
				placed = true
				break
			}
		}
		if !placed {
			bands = append(bands, band{top: p.Top, right: right})
		}
	}

	gaps := 0
	for _, b := range bands {
		if b.right < fillThreshold*cfg.ContainerWidth {
			gaps++
		}
	}
	return gaps
}

// Balance returns a [0, 100] score rewarding even column heights and
// penalizing gaps. Higher is better. The score is advisory: it compares
// layouts for reporting and never gates correctness.
func Balance(r grid.LayoutResult, cfg grid.GridConfig) float64 {
	if cfg.TotalColumns < 1 {
		return 0
	}
	if totalHeight(r) <= 0 {
		return 100
	}

	heights := ColumnHeights(r, cfg)
	var sum float64
	for _, h := range heights {
		sum += h
	}
	mean := sum / float64(len(heights))
	if mean <= 0 {
		return 100
	}

	var variance float64
	for _, h := range heights {
		d := h - mean
		variance += d * d
	}
	variance /= float64(len(heights))
	cv := math.Sqrt(variance) / mean

	score := 100 - 100*cv - gapPenalty*float64(CountGaps(r, cfg))
	return clampPercent(score)
}

// ColumnHeights returns the bottom edge of the lowest section per column.
// Columns with no sections report 0.
func ColumnHeights(r grid.LayoutResult, cfg grid.GridConfig) []float64 {
	heights := make([]float64, max(cfg.TotalColumns, 1))
	for _, p := range r.Positions {
		for col := p.Column; col < p.Column+p.ColSpan; col++ {
			if col >= 0 && col < len(heights) {
				heights[col] = max(heights[col], p.Bottom())
			}
		}
	}
	return heights
}

// totalHeight derives the layout height from positions rather than trusting
// the recorded TotalHeight, so partially built results score consistently.
func totalHeight(r grid.LayoutResult) float64 {
	var h float64
	for _, p := range r.Positions {
		h = max(h, p.Bottom())
	}
	return h
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}
