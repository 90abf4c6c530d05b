package pack

import (
	"testing"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
)

func TestSkylineFillsShortestColumn(t *testing.T) {
	cfg := testConfig()
	sections := []grid.Section{
		{ID: "tall", EstimatedHeight: 300, PreferredColumns: 1},
		{ID: "short-a", EstimatedHeight: 80, PreferredColumns: 1},
		{ID: "short-b", EstimatedHeight: 80, PreferredColumns: 1},
		{ID: "short-c", EstimatedHeight: 80, PreferredColumns: 1},
		// Columns 1-3 now end at 80, column 0 at 300. The next section
		// belongs under one of the short columns, not under the tall one.
		{ID: "filler", EstimatedHeight: 80, PreferredColumns: 1},
	}

	packer, _ := New(StrategySkyline)
	r, err := packer.Pack(sections, cfg)
	if err != nil {
		t.Fatal(err)
	}

	filler := r.PositionsByID()["filler"]
	if filler.Column == 0 {
		t.Errorf("filler stacked under the tall column, want a short column")
	}
	wantTop := 80 + cfg.Gap
	if filler.Top != wantTop {
		t.Errorf("filler top = %g, want %g", filler.Top, wantTop)
	}
}

func TestSkylineSpreadsAcrossOpenColumns(t *testing.T) {
	cfg := testConfig()
	// One tall column dominates the skyline, so every candidate run yields
	// the same global maximum. The short sections must still fan out into
	// the open columns at top 0 rather than stack leftmost.
	sections := []grid.Section{
		{ID: "tall", EstimatedHeight: 300, PreferredColumns: 1},
		{ID: "short-a", EstimatedHeight: 80, PreferredColumns: 1},
		{ID: "short-b", EstimatedHeight: 80, PreferredColumns: 1},
		{ID: "short-c", EstimatedHeight: 80, PreferredColumns: 1},
	}

	packer, _ := New(StrategySkyline)
	r, err := packer.Pack(sections, cfg)
	if err != nil {
		t.Fatal(err)
	}

	byID := r.PositionsByID()
	for i, id := range []string{"short-a", "short-b", "short-c"} {
		p := byID[id]
		if p.Column != i+1 || p.Top != 0 {
			t.Errorf("%s at (col %d, top %g), want (col %d, top 0)", id, p.Column, p.Top, i+1)
		}
	}
}

func TestSkylineLeftmostTieBreak(t *testing.T) {
	cfg := testConfig()
	sections := []grid.Section{
		{ID: "a", EstimatedHeight: 100, PreferredColumns: 1},
		{ID: "b", EstimatedHeight: 100, PreferredColumns: 1},
	}

	packer, _ := New(StrategySkyline)
	r, err := packer.Pack(sections, cfg)
	if err != nil {
		t.Fatal(err)
	}

	byID := r.PositionsByID()
	if byID["a"].Column != 0 {
		t.Errorf("a at column %d, want 0", byID["a"].Column)
	}
	if byID["b"].Column != 1 {
		t.Errorf("b at column %d, want 1 (leftmost free run on equal heights)", byID["b"].Column)
	}
}

func TestSkylineShrinksIntoGap(t *testing.T) {
	cfg := testConfig()
	sections := []grid.Section{
		{ID: "block", EstimatedHeight: 200, ColSpanOverride: 3},
		// Prefers 2 columns but only column 3 is open at top 0. Shrinking
		// to 1 avoids stacking below the block, which would raise the
		// skyline maximum.
		{ID: "flex", EstimatedHeight: 200, MinColumns: 1, PreferredColumns: 2, MaxColumns: 2, CanShrink: true},
	}

	packer, _ := New(StrategySkyline)
	r, err := packer.Pack(sections, cfg)
	if err != nil {
		t.Fatal(err)
	}

	flex := r.PositionsByID()["flex"]
	if flex.Column != 3 || flex.ColSpan != 1 || flex.Top != 0 {
		t.Errorf("flex at (col %d, span %d, top %g), want shrunk into (col 3, span 1, top 0)",
			flex.Column, flex.ColSpan, flex.Top)
	}
}

func TestSkylineKeepsPreferredWithoutStrictWin(t *testing.T) {
	cfg := testConfig()
	// An empty grid: growing or shrinking cannot lower the skyline maximum,
	// so the preferred span must stand even with both flags allowed.
	sections := []grid.Section{
		{ID: "a", EstimatedHeight: 100, MinColumns: 1, PreferredColumns: 2, MaxColumns: 4, CanGrow: true, CanShrink: true},
	}

	packer, _ := New(StrategySkyline)
	r, err := packer.Pack(sections, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if got := r.Positions[0].ColSpan; got != 2 {
		t.Errorf("span = %d, want preferred 2", got)
	}
}

func TestSkylineGrowGated(t *testing.T) {
	cfg := testConfig()
	base := []grid.Section{
		{ID: "left", EstimatedHeight: 400, ColSpanOverride: 1},
		{ID: "probe", EstimatedHeight: 100, MinColumns: 1, PreferredColumns: 1, MaxColumns: 3},
	}

	// Without CanGrow the probe stays at one column.
	packer, _ := New(StrategySkyline)
	r, err := packer.Pack(base, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.PositionsByID()["probe"].ColSpan; got != 1 {
		t.Errorf("span without CanGrow = %d, want 1", got)
	}
}

func TestSkylineDenserThanRowFirstOnVariedHeights(t *testing.T) {
	cfg := testConfig()
	sections := []grid.Section{
		{ID: "a", EstimatedHeight: 320, PreferredColumns: 1},
		{ID: "b", EstimatedHeight: 60, PreferredColumns: 1},
		{ID: "c", EstimatedHeight: 60, PreferredColumns: 1},
		{ID: "d", EstimatedHeight: 60, PreferredColumns: 1},
		{ID: "e", EstimatedHeight: 60, PreferredColumns: 1},
		{ID: "f", EstimatedHeight: 60, PreferredColumns: 1},
		{ID: "g", EstimatedHeight: 60, PreferredColumns: 1},
	}

	skylinePacker, _ := New(StrategySkyline)
	rowPacker, _ := New(StrategyRowFirst)

	sr, err := skylinePacker.Pack(sections, cfg)
	if err != nil {
		t.Fatal(err)
	}
	rr, err := rowPacker.Pack(sections, cfg)
	if err != nil {
		t.Fatal(err)
	}

	// Row-first closes its first row at the 320px section's height and opens
	// a second row for the overflow; skyline backfills the short columns
	// instead, so it must come out strictly shorter here.
	if sr.TotalHeight >= rr.TotalHeight {
		t.Errorf("skyline height %g not below row-first height %g on varied heights",
			sr.TotalHeight, rr.TotalHeight)
	}
}
