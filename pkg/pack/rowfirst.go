package pack

import "github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"

// rowFirst implements greedy row-by-row packing.
//
// A cursor tracks the current row top and the next free column. Each section
// is placed at its preferred span when the remainder of the row is wide
// enough; otherwise it shrinks toward its minimum (when allowed) to fill the
// remainder, and failing that the row closes and the section starts the next
// one. Row height is the tallest section placed in the row; the next row
// opens one gap below it.
//
// The strategy favors horizontal fill over vertical density: every row is
// packed as full as constraints allow before the layout grows downward. Cost
// is a single pass over the sections.
type rowFirst struct{}

func (rowFirst) Name() string { return string(StrategyRowFirst) }

func (rowFirst) Pack(sections []grid.Section, cfg grid.GridConfig) (grid.LayoutResult, error) {
	prep, notes, err := prepare(sections, cfg)
	if err != nil {
		return grid.LayoutResult{}, err
	}

	total := cfg.TotalColumns
	positions := make([]grid.Position, 0, len(prep))

	rowTop := 0.0
	rowHeight := 0.0
	col := 0

	closeRow := func() {
		if rowHeight > 0 || col > 0 {
			rowTop += rowHeight + cfg.Gap
		}
		rowHeight = 0
		col = 0
	}

	for _, p := range prep {
		remaining := total - col

		span := p.pref
		if span > remaining {
			if p.CanShrink && p.min <= remaining {
				// Shrink just enough to fill the remainder of the row.
				span = remaining
			} else {
				closeRow()
				span = p.pref
			}
		}

		positions = append(positions, grid.Position{
			SectionID: p.ID,
			Column:    col,
			ColSpan:   span,
			Top:       rowTop,
			Height:    p.EstimatedHeight,
		})

		rowHeight = max(rowHeight, p.EstimatedHeight)
		col += span
		if col >= total {
			closeRow()
		}
	}

	return finalize(string(StrategyRowFirst), cfg, positions, notes), nil
}
