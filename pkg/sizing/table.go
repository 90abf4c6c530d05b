package sizing

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
)

// Table holds the height coefficients and span preferences the estimator
// works from. All heights are pixels. The zero value is not usable; start
// from [DefaultTable] or [LoadTable].
type Table struct {
	// BaseHeight is the fallback base for kinds without a KindBase entry.
	BaseHeight float64 `toml:"base_height"`
	// HeaderHeight covers the title row every card renders.
	HeaderHeight float64 `toml:"header_height"`
	// FieldHeight is added once per label/value field.
	FieldHeight float64 `toml:"field_height"`
	// ItemHeight is added once per visible list item.
	ItemHeight float64 `toml:"item_height"`
	// ChartHeight is added when the section hosts a chart body.
	ChartHeight float64 `toml:"chart_height"`
	// MaxVisibleItems caps how many items contribute height; longer lists
	// scroll inside the card instead of growing it.
	MaxVisibleItems int `toml:"max_visible_items"`

	// KindBase overrides BaseHeight per section kind.
	KindBase map[string]float64 `toml:"kind_base"`
	// KindPreferred seeds PreferredColumns per section kind.
	KindPreferred map[string]int `toml:"kind_preferred"`
}

// DefaultTable returns the tuned default coefficients.
func DefaultTable() Table {
	return Table{
		BaseHeight:      32,
		HeaderHeight:    48,
		FieldHeight:     28,
		ItemHeight:      36,
		ChartHeight:     220,
		MaxVisibleItems: 6,
		KindBase: map[string]float64{
			grid.KindInfo:    32,
			grid.KindList:    24,
			grid.KindChart:   40,
			grid.KindContact: 36,
			grid.KindTable:   56,
		},
		KindPreferred: map[string]int{
			grid.KindInfo:    1,
			grid.KindList:    1,
			grid.KindChart:   2,
			grid.KindContact: 1,
			grid.KindTable:   2,
		},
	}
}

// LoadTable reads a TOML coefficient file and overlays it on the defaults,
// so a file only needs the keys it wants to change. An empty path returns
// the defaults unchanged.
func LoadTable(path string) (Table, error) {
	t := DefaultTable()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read sizing table %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("parse sizing table %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Table{}, fmt.Errorf("sizing table %s: %w", path, err)
	}
	return t, nil
}

// Validate checks that every coefficient is finite and non-negative and
// that the item ceiling is at least one.
func (t Table) Validate() error {
	coeffs := []struct {
		name  string
		value float64
	}{
		{"base_height", t.BaseHeight},
		{"header_height", t.HeaderHeight},
		{"field_height", t.FieldHeight},
		{"item_height", t.ItemHeight},
		{"chart_height", t.ChartHeight},
	}
	for _, c := range coeffs {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) || c.value < 0 {
			return fmt.Errorf("coefficient %s must be a non-negative finite number, got %g", c.name, c.value)
		}
	}
	if t.MaxVisibleItems < 1 {
		return fmt.Errorf("max_visible_items must be at least 1, got %d", t.MaxVisibleItems)
	}
	for kind, base := range t.KindBase {
		if math.IsNaN(base) || math.IsInf(base, 0) || base < 0 {
			return fmt.Errorf("kind_base %q must be a non-negative finite number, got %g", kind, base)
		}
	}
	for kind, pref := range t.KindPreferred {
		if pref < 1 {
			return fmt.Errorf("kind_preferred %q must be at least 1, got %d", kind, pref)
		}
	}
	return nil
}
