package grid

import "math"

// Resolve computes the column geometry for a container width.
//
// Resolution starts at maxColumns and decrements until each column is at
// least minColumnWidth wide, flooring at a single column. The column width
// for a candidate count n is (containerWidth - gap*(n-1)) / n.
//
// # Guarantees
//
//   - Never fails. Degenerate inputs (non-positive or non-finite widths,
//     negative gaps, maxColumns < 1) collapse to safe values instead of
//     returning an error.
//   - containerWidth <= 0 resolves to a single column with ColumnWidth 0.
//   - Monotonic: a wider container never resolves to fewer columns when the
//     other parameters are held fixed.
//
// # Algorithm
//
// The candidate count only ever decreases, so the loop runs at most
// maxColumns-1 times. Widths are clamped to zero at the end so callers can
// do pixel math without re-checking signs.
func Resolve(containerWidth, gap, minColumnWidth float64, maxColumns int) GridConfig {
	containerWidth = sanitize(containerWidth)
	gap = sanitize(gap)
	minColumnWidth = sanitize(minColumnWidth)

	cols := maxColumns
	if cols < 1 {
		cols = 1
	}
	if containerWidth <= 0 {
		cols = 1
	}

	for cols > 1 && columnWidthFor(containerWidth, gap, cols) < minColumnWidth {
		cols--
	}

	width := columnWidthFor(containerWidth, gap, cols)
	if width < 0 {
		width = 0
	}

	return GridConfig{
		TotalColumns:   cols,
		Gap:            gap,
		MinColumnWidth: minColumnWidth,
		ContainerWidth: containerWidth,
		ColumnWidth:    width,
	}
}

// columnWidthFor returns the per-column width for a candidate column count.
func columnWidthFor(containerWidth, gap float64, cols int) float64 {
	return (containerWidth - gap*float64(cols-1)) / float64(cols)
}

// sanitize maps NaN, infinities, and negative values to 0 so resolution
// arithmetic stays finite.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
