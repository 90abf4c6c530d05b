package pack

import (
	"fmt"
	"slices"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/score"
)

// placeable is a section with its span constraints resolved against a
// concrete grid. min <= pref <= max always holds after normalization, and
// all three are within [1, TotalColumns].
type placeable struct {
	grid.Section
	index int // original input position, tie-break for equal priorities
	min   int
	pref  int
	max   int
}

// prepare runs the pre-pass shared by every strategy: validation, stable
// ordering, and span normalization.
//
// Validation is all-or-nothing. Ordering sorts by effective priority
// ascending, preserving input order among equals - priority is a hint that
// moves sections earlier in the packing sequence, not a hard partition.
// Normalization clamps declared constraints into the grid and records a
// [grid.ConstraintNote] per clamp instead of failing.
func prepare(sections []grid.Section, cfg grid.GridConfig) ([]placeable, []grid.ConstraintNote, error) {
	if err := grid.ValidateConfig(cfg); err != nil {
		return nil, nil, fmt.Errorf("grid config: %w", err)
	}
	if err := grid.ValidateSections(sections); err != nil {
		return nil, nil, fmt.Errorf("sections: %w", err)
	}

	total := cfg.TotalColumns
	var notes []grid.ConstraintNote
	note := func(id, format string, args ...any) {
		notes = append(notes, grid.ConstraintNote{
			SectionID: id,
			Message:   fmt.Sprintf(format, args...),
		})
	}

	prepared := make([]placeable, len(sections))
	for i, s := range sections {
		p := placeable{Section: s, index: i}

		if s.ColSpanOverride > 0 {
			span := s.ColSpanOverride
			if span > total {
				note(s.ID, "span override %d exceeds %d columns, clamped to full width", span, total)
				span = total
			}
			p.min, p.pref, p.max = span, span, span
			prepared[i] = p
			continue
		}

		p.min = s.MinColumns
		if p.min < 1 {
			p.min = 1
		}
		if p.min > total {
			note(s.ID, "min columns %d exceeds %d columns, clamped to full width", p.min, total)
			p.min = total
		}

		p.max = s.MaxColumns
		if p.max < 1 || p.max > total {
			p.max = total
		}
		if p.max < p.min {
			p.max = p.min
		}

		p.pref = s.PreferredColumns
		if p.pref < 1 {
			p.pref = p.min
		}
		if p.pref < p.min || p.pref > p.max {
			clamped := min(max(p.pref, p.min), p.max)
			if s.PreferredColumns > 0 {
				note(s.ID, "preferred columns %d outside [%d, %d], clamped to %d", p.pref, p.min, p.max, clamped)
			}
			p.pref = clamped
		}

		prepared[i] = p
	}

	slices.SortStableFunc(prepared, func(a, b placeable) int {
		if d := a.EffectivePriority() - b.EffectivePriority(); d != 0 {
			return d
		}
		return a.index - b.index
	})

	return prepared, notes, nil
}

// spanCandidates returns the spans a strategy may try for a section, in
// preference order: the preferred span first, then shrinking toward min when
// CanShrink, then growing toward max when CanGrow.
func (p placeable) spanCandidates() []int {
	spans := []int{p.pref}
	if p.CanShrink {
		for s := p.pref - 1; s >= p.min; s-- {
			spans = append(spans, s)
		}
	}
	if p.CanGrow {
		for s := p.pref + 1; s <= p.max; s++ {
			spans = append(spans, s)
		}
	}
	return spans
}

// finalize assembles a scored LayoutResult from placed positions.
func finalize(strategy string, cfg grid.GridConfig, positions []grid.Position, notes []grid.ConstraintNote) grid.LayoutResult {
	var totalHeight float64
	for _, p := range positions {
		totalHeight = max(totalHeight, p.Bottom())
	}

	r := grid.LayoutResult{
		Strategy:    strategy,
		Config:      cfg,
		Positions:   positions,
		TotalHeight: totalHeight,
		Conflicts:   notes,
	}

	q := score.Score(r, cfg)
	r.UtilizationPercent = q.UtilizationPercent
	r.GapCount = q.GapCount
	return r
}
