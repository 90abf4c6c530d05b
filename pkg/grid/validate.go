package grid

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoColumns is returned by [ValidateConfig] when TotalColumns is
	// less than one. Every grid has at least a single column.
	ErrNoColumns = errors.New("grid must have at least one column")

	// ErrNegativeWidth is returned by [ValidateConfig] when a width field
	// (container, column, or minimum column width) is negative.
	ErrNegativeWidth = errors.New("width must not be negative")

	// ErrNegativeGap is returned by [ValidateConfig] when the gap is negative.
	ErrNegativeGap = errors.New("gap must not be negative")

	// ErrNotFinite is returned by [ValidateConfig] and [ValidateSections]
	// when a dimension is NaN or infinite. Non-finite geometry poisons
	// every downstream computation, so it is rejected up front.
	ErrNotFinite = errors.New("dimension must be finite")

	// ErrEmptySectionID is returned by [ValidateSections] when a section
	// has no ID. IDs key positions, cache entries, and diff reports.
	ErrEmptySectionID = errors.New("section ID must not be empty")

	// ErrDuplicateSectionID is returned by [ValidateSections] when two
	// sections share an ID. Placement is keyed by ID, so duplicates would
	// silently collapse into one rectangle.
	ErrDuplicateSectionID = errors.New("duplicate section ID")

	// ErrNegativeHeight is returned by [ValidateSections] when a section's
	// estimated height is negative.
	ErrNegativeHeight = errors.New("estimated height must not be negative")

	// ErrSpanBounds is returned by [ValidateSections] when declared span
	// constraints are contradictory (negative values, or MinColumns greater
	// than MaxColumns with both set). Conflicts that have a sane clamp are
	// handled by the packers as constraint notes instead.
	ErrSpanBounds = errors.New("invalid span bounds")
)

// ValidateConfig checks a GridConfig for malformed geometry. Packers call
// this before any placement work; a failed validation produces no partial
// layout.
func ValidateConfig(c GridConfig) error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"gap", c.Gap},
		{"min_column_width", c.MinColumnWidth},
		{"container_width", c.ContainerWidth},
		{"column_width", c.ColumnWidth},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s", ErrNotFinite, v.name)
		}
	}
	if c.TotalColumns < 1 {
		return fmt.Errorf("%w: got %d", ErrNoColumns, c.TotalColumns)
	}
	if c.Gap < 0 {
		return fmt.Errorf("%w: got %g", ErrNegativeGap, c.Gap)
	}
	if c.ContainerWidth < 0 {
		return fmt.Errorf("%w: container_width %g", ErrNegativeWidth, c.ContainerWidth)
	}
	if c.MinColumnWidth < 0 {
		return fmt.Errorf("%w: min_column_width %g", ErrNegativeWidth, c.MinColumnWidth)
	}
	if c.ColumnWidth < 0 {
		return fmt.Errorf("%w: column_width %g", ErrNegativeWidth, c.ColumnWidth)
	}
	return nil
}

// ValidateSections checks layout participants for malformed input. The
// check is all-or-nothing: one bad section fails the whole batch so no
// section is ever silently dropped.
func ValidateSections(sections []Section) error {
	seen := make(map[string]struct{}, len(sections))
	for i, s := range sections {
		if s.ID == "" {
			return fmt.Errorf("%w: index %d", ErrEmptySectionID, i)
		}
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateSectionID, s.ID)
		}
		seen[s.ID] = struct{}{}

		if math.IsNaN(s.EstimatedHeight) || math.IsInf(s.EstimatedHeight, 0) {
			return fmt.Errorf("%w: section %q height", ErrNotFinite, s.ID)
		}
		if s.EstimatedHeight < 0 {
			return fmt.Errorf("%w: section %q has height %g", ErrNegativeHeight, s.ID, s.EstimatedHeight)
		}
		if s.MinColumns < 0 || s.MaxColumns < 0 || s.PreferredColumns < 0 || s.ColSpanOverride < 0 {
			return fmt.Errorf("%w: section %q has negative column bounds", ErrSpanBounds, s.ID)
		}
		if s.MinColumns > 0 && s.MaxColumns > 0 && s.MinColumns > s.MaxColumns {
			return fmt.Errorf("%w: section %q declares min %d > max %d",
				ErrSpanBounds, s.ID, s.MinColumns, s.MaxColumns)
		}
	}
	return nil
}
