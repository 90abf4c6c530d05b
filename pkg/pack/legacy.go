package pack

import "github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"

// legacy implements the original column-minimum-height placement.
//
// Each section goes into the currently shortest column (leftmost on ties) at
// its minimum viable span, shifted left when the span would overflow the
// grid edge. No multi-column optimization, no width negotiation. The
// strategy exists as the regression baseline: row-first and skyline must
// never pack worse than this on the same input.
type legacy struct{}

func (legacy) Name() string { return string(StrategyLegacy) }

func (legacy) Pack(sections []grid.Section, cfg grid.GridConfig) (grid.LayoutResult, error) {
	prep, notes, err := prepare(sections, cfg)
	if err != nil {
		return grid.LayoutResult{}, err
	}

	total := cfg.TotalColumns
	frontier := make([]float64, total)
	positions := make([]grid.Position, 0, len(prep))

	for _, p := range prep {
		span := p.min
		if p.ColSpanOverride > 0 {
			span = p.pref
		}

		col := shortestColumn(frontier)
		if col+span > total {
			col = total - span
		}

		top := frontier[col]
		for i := col; i < col+span; i++ {
			top = max(top, frontier[i])
		}

		positions = append(positions, grid.Position{
			SectionID: p.ID,
			Column:    col,
			ColSpan:   span,
			Top:       top,
			Height:    p.EstimatedHeight,
		})

		next := top + p.EstimatedHeight + cfg.Gap
		for i := col; i < col+span; i++ {
			frontier[i] = next
		}
	}

	return finalize(string(StrategyLegacy), cfg, positions, notes), nil
}

// shortestColumn returns the index of the lowest frontier, leftmost on ties.
func shortestColumn(frontier []float64) int {
	best := 0
	for i, h := range frontier {
		if h < frontier[best] {
			best = i
		}
	}
	return best
}
