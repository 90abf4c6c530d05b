// Package pack places sections into a multi-column masonry grid.
//
// Three interchangeable strategies implement the same [Packer] contract:
//
//   - [StrategyRowFirst]: greedy left-to-right, row-by-row placement
//     prioritizing horizontal fill. Near-linear and predictable.
//   - [StrategySkyline]: per-column height frontier with gap-minimizing
//     placement, akin to 2D rectangle bin packing. Denser when section
//     heights vary.
//   - [StrategyLegacy]: minimum-height column placement. Kept as the
//     regression baseline - new strategies must not pack worse than it.
//
// All strategies share one pre-pass: input validation (fail fast, no partial
// layout), a stable ordering by priority then input order, and span
// normalization against the grid. Constraint conflicts that have a sane
// clamp never abort a layout; they surface as [grid.ConstraintNote] entries
// on the result for the caller to log.
//
// Pack calls are pure functions: no I/O, no shared state, deterministic for
// a given input. Callers that want caching or incremental stability wrap a
// Packer in a relayout.Coordinator.
package pack
