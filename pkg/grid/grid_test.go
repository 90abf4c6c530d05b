package grid

import (
	"math"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSpanWidth(t *testing.T) {
	cfg := GridConfig{TotalColumns: 4, Gap: 12, ColumnWidth: 300, ContainerWidth: 1236}

	tests := []struct {
		name string
		span int
		want float64
	}{
		{"Zero", 0, 0},
		{"Single", 1, 300},
		{"Double", 2, 612},
		{"Full", 4, 1236},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.SpanWidth(tt.span); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SpanWidth(%d) = %g, want %g", tt.span, got, tt.want)
			}
		})
	}

	// A full-width span covers the container exactly.
	if got := cfg.SpanWidth(cfg.TotalColumns); math.Abs(got-cfg.ContainerWidth) > 1e-9 {
		t.Errorf("full span = %g, want container width %g", got, cfg.ContainerWidth)
	}
}

func TestColumnOffset(t *testing.T) {
	cfg := GridConfig{TotalColumns: 4, Gap: 12, ColumnWidth: 300}

	if got := cfg.ColumnOffset(0); got != 0 {
		t.Errorf("ColumnOffset(0) = %g, want 0", got)
	}
	if got := cfg.ColumnOffset(2); got != 624 {
		t.Errorf("ColumnOffset(2) = %g, want 624", got)
	}
}

func TestEffectivePriority(t *testing.T) {
	tests := []struct {
		name     string
		priority int
		want     int
	}{
		{"ZeroDefaults", 0, PriorityNormal},
		{"NegativeDefaults", -3, PriorityNormal},
		{"High", 1, 1},
		{"Low", 3, 3},
		{"AboveLowClamps", 9, PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Section{Priority: tt.priority}
			if got := s.EffectivePriority(); got != tt.want {
				t.Errorf("EffectivePriority() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPositionHelpers(t *testing.T) {
	cfg := GridConfig{TotalColumns: 4, Gap: 12, ColumnWidth: 300, ContainerWidth: 1236}
	p := Position{SectionID: "a", Column: 1, ColSpan: 2, Top: 50, Height: 120}

	if got := p.Bottom(); got != 170 {
		t.Errorf("Bottom() = %g, want 170", got)
	}
	// Column 1 starts at 312; two columns plus one gap is 612 wide.
	if got := p.RightEdge(cfg); math.Abs(got-924) > 1e-9 {
		t.Errorf("RightEdge() = %g, want 924", got)
	}
}

func TestResultLookups(t *testing.T) {
	r := LayoutResult{
		Positions: []Position{
			{SectionID: "a", Column: 0, ColSpan: 1, Top: 0, Height: 100},
			{SectionID: "b", Column: 1, ColSpan: 2, Top: 0, Height: 80},
		},
	}

	byID := r.PositionsByID()
	if len(byID) != 2 {
		t.Fatalf("PositionsByID len = %d, want 2", len(byID))
	}
	if byID["b"].ColSpan != 2 {
		t.Errorf("byID[b].ColSpan = %d, want 2", byID["b"].ColSpan)
	}

	ids := r.SectionIDs()
	if !reflect.DeepEqual(ids, []string{"a", "b"}) {
		t.Errorf("SectionIDs = %v, want [a b]", ids)
	}
}

func TestResultFileRoundTrip(t *testing.T) {
	r := LayoutResult{
		Strategy: "row-first",
		Config:   Resolve(1280, 12, 260, 4),
		Positions: []Position{
			{SectionID: "a", Column: 0, ColSpan: 2, Top: 0, Height: 140},
			{SectionID: "b", Column: 2, ColSpan: 2, Top: 0, Height: 90},
		},
		TotalHeight:        140,
		UtilizationPercent: 82.5,
		GapCount:           1,
		Conflicts:          []ConstraintNote{{SectionID: "a", Message: "span clamped to 2"}},
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteResultFile(r, path); err != nil {
		t.Fatalf("WriteResultFile: %v", err)
	}

	got, err := ReadResultFile(path)
	if err != nil {
		t.Fatalf("ReadResultFile: %v", err)
	}
	if !reflect.DeepEqual(got, r) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, r)
	}
}

func TestUnmarshalResultRejectsBadConfig(t *testing.T) {
	if _, err := UnmarshalResult([]byte(`{"config":{"total_columns":0}}`)); err == nil {
		t.Fatal("expected error for layout without columns")
	}
	if _, err := UnmarshalResult([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
