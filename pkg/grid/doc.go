// Package grid defines the core data model for card grid layouts.
//
// This package is the canonical vocabulary shared by every layer of the
// engine: sizing, packing, scoring, incremental re-layout, the CLI, and the
// HTTP API all speak these types.
//
// # Core Types
//
//   - [GridConfig]: resolved column geometry for a container width
//   - [Section]: one layout participant with its span constraints
//   - [Position]: a placed rectangle (column, span, top, height)
//   - [LayoutResult]: the full output of a packing pass, self-describing
//     (the config that produced it is embedded)
//
// # Config Resolution
//
// [Resolve] turns raw container geometry into a GridConfig:
//
//	cfg := grid.Resolve(1280, 12, 260, 4)
//	// cfg.TotalColumns == 4, cfg.ColumnWidth == 311
//
// Resolution never fails: degenerate inputs collapse to a single column
// with non-negative widths.
//
// # Validation
//
// [ValidateConfig] and [ValidateSections] reject malformed input before any
// packing work happens. Errors wrap the package sentinel errors so callers
// can test with errors.Is.
//
// # Serialization
//
// LayoutResult marshals to pretty-printed JSON with snake_case keys and
// carries bson tags for document storage. The quartet
// [MarshalResult]/[UnmarshalResult]/[ReadResultFile]/[WriteResultFile]
// covers bytes and files.
//
// # Concurrency
//
// All functions are pure and safe for concurrent use. Values are plain data
// with no hidden sharing; callers own what they pass in and get back.
package grid
