package pack

import (
	"errors"
	"fmt"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
)

// Strategy names a packing algorithm.
type Strategy string

const (
	// StrategyRowFirst packs greedily left to right, row by row.
	StrategyRowFirst Strategy = "row-first"

	// StrategySkyline packs against a per-column height frontier,
	// minimizing introduced gaps.
	StrategySkyline Strategy = "skyline"

	// StrategyLegacy packs into the currently shortest column. Baseline.
	StrategyLegacy Strategy = "legacy"
)

// DefaultStrategy is used when callers do not pick one.
const DefaultStrategy = StrategySkyline

// ErrUnknownStrategy is returned by [New] for unrecognized strategy names.
var ErrUnknownStrategy = errors.New("unknown packing strategy")

// Strategies lists every available strategy.
func Strategies() []Strategy {
	return []Strategy{StrategyRowFirst, StrategySkyline, StrategyLegacy}
}

// Valid reports whether s names an available strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyRowFirst, StrategySkyline, StrategyLegacy:
		return true
	}
	return false
}

// Packer is the shared contract of all packing strategies.
//
// Pack is pure and deterministic: the same sections and config always yield
// the same result, caller-owned sections are never mutated, and every input
// section appears in the output exactly once or the call errors. Packers are
// stateless and safe for concurrent use.
type Packer interface {
	// Name returns the strategy name recorded on produced results.
	Name() string

	// Pack places the sections into the grid.
	Pack(sections []grid.Section, cfg grid.GridConfig) (grid.LayoutResult, error)
}

// New returns the packer for a strategy name. An empty strategy selects
// [DefaultStrategy].
func New(s Strategy) (Packer, error) {
	switch s {
	case StrategyRowFirst:
		return rowFirst{}, nil
	case StrategySkyline, "":
		return skyline{}, nil
	case StrategyLegacy:
		return legacy{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}
