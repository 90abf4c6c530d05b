package pack

import "github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"

// skyline implements frontier-based packing, akin to 2D rectangle bin
// packing with a per-column skyline.
//
// The frontier holds, per column, the top at which the next section may be
// placed. For each section every contiguous column run wide enough for a
// candidate span is evaluated; the placement top is the frontier maximum
// over the run. Runs are ranked by (placement top, leftmost column), so each
// section drops into the lowest open spot. A non-preferred span wins only
// when it strictly lowers the resulting frontier maximum - otherwise the
// preferred width stands.
//
// # Performance
//
// O(sections x columns x spans) per pack. Column counts are small (<= ~6)
// and section counts are tens per card, so the cubic-looking bound is cheap
// in practice; the win over row-first is fewer tall gaps when section
// heights vary.
type skyline struct{}

func (skyline) Name() string { return string(StrategySkyline) }

func (skyline) Pack(sections []grid.Section, cfg grid.GridConfig) (grid.LayoutResult, error) {
	prep, notes, err := prepare(sections, cfg)
	if err != nil {
		return grid.LayoutResult{}, err
	}

	total := cfg.TotalColumns
	frontier := make([]float64, total)
	positions := make([]grid.Position, 0, len(prep))

	for _, p := range prep {
		span, col, top := bestPlacement(frontier, p, cfg)

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

	return finalize(string(StrategySkyline), cfg, positions, notes), nil
}

// bestPlacement picks the span and column run for one section.
//
// Candidate spans come in preference order (preferred, shrink, grow). The
// preferred span's best run is the benchmark; alternatives replace it only
// on a strictly lower resulting frontier maximum, so width deviations buy an
// actual gap reduction or do not happen.
func bestPlacement(frontier []float64, p placeable, cfg grid.GridConfig) (span, col int, top float64) {
	total := len(frontier)

	bestSpan, bestCol := -1, -1
	var bestTop, bestMax float64

	for _, s := range p.spanCandidates() {
		if s > total {
			continue
		}
		runCol, runTop, runMax := bestRun(frontier, s, p.EstimatedHeight, cfg.Gap)
		if bestSpan == -1 || runMax < bestMax {
			bestSpan, bestCol, bestTop, bestMax = s, runCol, runTop, runMax
		}
	}

	if bestSpan == -1 {
		// No candidate span fits the grid: the section forbids both growing
		// and shrinking and its preferred width is wider than the grid.
		// Last resort - place at the widest feasible span.
		s := min(p.min, total)
		runCol, runTop, _ := bestRun(frontier, s, p.EstimatedHeight, cfg.Gap)
		return s, runCol, runTop
	}
	return bestSpan, bestCol, bestTop
}

// bestRun evaluates every contiguous run of width span and returns the one
// with the lowest placement top, leftmost on ties. Ranking by top rather
// than by the resulting frontier maximum matters once one column towers over
// the rest: every run then yields the same maximum, and a max-based rank
// would degenerate to always-leftmost instead of filling the open columns.
func bestRun(frontier []float64, span int, height, gap float64) (col int, top, resultMax float64) {
	total := len(frontier)
	col = -1

	for c := 0; c+span <= total; c++ {
		t := frontier[c]
		for i := c + 1; i < c+span; i++ {
			t = max(t, frontier[i])
		}
		if col == -1 || t < top {
			col, top = c, t
		}
	}

	// Frontier maximum after placing at (col, top); bestPlacement gates
	// width deviations on it.
	resultMax = top + height + gap
	for i := range total {
		if i < col || i >= col+span {
			resultMax = max(resultMax, frontier[i])
		}
	}
	return col, top, resultMax
}
