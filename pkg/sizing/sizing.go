// Package sizing estimates section heights and span constraints from
// declared content volume, before any DOM measurement exists.
//
// Estimates come from a coefficient [Table]: a base height per section
// kind plus per-field and per-item increments, with long item lists capped
// at a visible-row ceiling (the rest scrolls inside the card). Tables are
// data, not code: [DefaultTable] holds the tuned defaults and [LoadTable]
// overlays a TOML file on top of them.
package sizing

import (
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
)

// Signals describes the declared content volume of a section: how many
// label/value fields and list items it renders, and whether it hosts a
// chart body. Signals are known before render time, which is the point -
// heights must be estimable while the real content is still streaming in.
type Signals struct {
	Fields   int  `json:"fields,omitempty" bson:"fields,omitempty"`
	Items    int  `json:"items,omitempty" bson:"items,omitempty"`
	HasChart bool `json:"has_chart,omitempty" bson:"has_chart,omitempty"`
}

// EstimateHeight computes the estimated pixel height for a section kind
// and its content signals.
//
// The estimate is monotonic: more fields or items never yields a smaller
// height. Item lists stop contributing past MaxVisibleItems.
func (t Table) EstimateHeight(kind string, sig Signals) float64 {
	h := t.BaseHeight
	if base, ok := t.KindBase[kind]; ok {
		h = base
	}
	h += t.HeaderHeight

	h += float64(max(sig.Fields, 0)) * t.FieldHeight

	items := max(sig.Items, 0)
	if t.MaxVisibleItems > 0 && items > t.MaxVisibleItems {
		items = t.MaxVisibleItems
	}
	h += float64(items) * t.ItemHeight

	if sig.HasChart {
		h += t.ChartHeight
	}
	return h
}

// Estimate fills the derived layout fields of a section: estimated height
// and column bounds. Declared values win over estimates.
//
//   - EstimatedHeight is computed from the signals only when the input
//     height is not already positive.
//   - Zero MinColumns defaults to 1; zero MaxColumns defaults to
//     totalColumns; zero PreferredColumns defaults to the kind's preference
//     clamped into [min, max].
//   - A positive ColSpanOverride pins min = preferred = max to the override
//     clamped to [1, totalColumns].
//
// Declared bounds that exceed the grid are left as-is here; the packers
// clamp them and report a constraint note, since that is a per-layout
// concern rather than a sizing one.
func (t Table) Estimate(sec grid.Section, sig Signals, totalColumns int) grid.Section {
	if totalColumns < 1 {
		totalColumns = 1
	}

	out := sec
	if out.EstimatedHeight <= 0 {
		out.EstimatedHeight = t.EstimateHeight(sec.Kind, sig)
	}

	if out.ColSpanOverride > 0 {
		span := min(max(out.ColSpanOverride, 1), totalColumns)
		out.MinColumns = span
		out.PreferredColumns = span
		out.MaxColumns = span
		return out
	}

	if out.MinColumns < 1 {
		out.MinColumns = 1
	}
	if out.MaxColumns < 1 {
		out.MaxColumns = totalColumns
	}
	if out.PreferredColumns < 1 {
		pref := 1
		if p, ok := t.KindPreferred[out.Kind]; ok && p > 0 {
			pref = p
		}
		out.PreferredColumns = min(max(pref, out.MinColumns), out.MaxColumns)
	}
	return out
}

// EstimateAll maps Estimate over a batch, returning a new slice.
func (t Table) EstimateAll(sections []grid.Section, signals []Signals, totalColumns int) []grid.Section {
	out := make([]grid.Section, len(sections))
	for i, sec := range sections {
		var sig Signals
		if i < len(signals) {
			sig = signals[i]
		}
		out[i] = t.Estimate(sec, sig, totalColumns)
	}
	return out
}
