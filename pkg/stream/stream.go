// Package stream simulates progressively arriving card sections.
//
// Real deployments feed the layout engine from a streaming parser: sections
// appear one by one and their content signals grow as fields and items are
// parsed. The [Simulator] reproduces that shape deterministically for demos
// and re-layout tests, staggering arrivals across a fixed number of steps and
// ramping each section's signals toward its final values. Estimated heights
// therefore only ever grow, matching how streamed content behaves.
//
// The layout engine itself never imports this package.
package stream

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/sizing"
)

// Spec is the final state of one simulated section: what it will look like
// once fully streamed in.
type Spec struct {
	ID       string `json:"id"`
	Kind     string `json:"kind,omitempty"`
	Fields   int    `json:"fields,omitempty"`
	Items    int    `json:"items,omitempty"`
	HasChart bool   `json:"has_chart,omitempty"`
	Priority int    `json:"priority,omitempty"`
}

// Simulator replays a set of specs as a deterministic stream. The same specs,
// step count, and seed always produce the same sequence.
type Simulator struct {
	specs        []Spec
	table        sizing.Table
	steps        int
	totalColumns int
	arrivals     []int

	step int
}

// New creates a simulator that reveals the given specs over steps steps,
// estimating span bounds against a grid of totalColumns columns. Arrival
// order is randomized from the seed but fixed for the simulator's lifetime;
// Reset replays the identical sequence.
func New(specs []Spec, table sizing.Table, steps, totalColumns int, seed uint64) *Simulator {
	if steps < 1 {
		steps = 1
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	// Every section arrives in the first half of the stream so each one has
	// room to ramp before the stream ends.
	arrivals := make([]int, len(specs))
	window := max(steps/2, 1)
	for i := range specs {
		arrivals[i] = rng.IntN(window)
	}

	return &Simulator{
		specs:        specs,
		table:        table,
		steps:        steps,
		totalColumns: totalColumns,
		arrivals:     arrivals,
	}
}

// Step advances the stream by one tick and returns the sections visible so
// far, estimated at their current signal levels. The boolean reports whether
// the stream has finished: once true, further calls return the final state
// unchanged.
func (s *Simulator) Step() ([]grid.Section, bool) {
	if s.step < s.steps {
		s.step++
	}

	var sections []grid.Section
	for i, spec := range s.specs {
		if s.arrivals[i] >= s.step {
			continue
		}
		sig := s.signalsAt(i, s.step)
		sec := grid.Section{
			ID:        spec.ID,
			Kind:      spec.Kind,
			Priority:  spec.Priority,
			CanShrink: true,
			CanGrow:   spec.Kind == grid.KindChart,
		}
		sections = append(sections, s.table.Estimate(sec, sig, s.totalColumns))
	}
	return sections, s.step >= s.steps
}

// Reset rewinds the stream to the beginning without changing arrivals.
func (s *Simulator) Reset() {
	s.step = 0
}

// Steps returns the configured stream length.
func (s *Simulator) Steps() int { return s.steps }

// signalsAt ramps spec i's signals linearly from arrival to the final step.
// Counts round up so a section with any content shows it immediately, and
// never decrease between consecutive steps.
func (s *Simulator) signalsAt(i, step int) sizing.Signals {
	spec := s.specs[i]
	arrival := s.arrivals[i]

	span := s.steps - arrival
	progress := 1.0
	if span > 0 {
		progress = min(float64(step-arrival)/float64(span), 1.0)
	}

	return sizing.Signals{
		Fields:   int(math.Ceil(progress * float64(spec.Fields))),
		Items:    int(math.Ceil(progress * float64(spec.Items))),
		HasChart: spec.HasChart,
	}
}

var specKinds = []string{
	grid.KindInfo,
	grid.KindList,
	grid.KindChart,
	grid.KindContact,
	grid.KindTable,
}

// RandomSpecs builds n plausible card specs from the given source: a mix of
// kinds, content volumes, and priorities. IDs are fresh UUIDs.
func RandomSpecs(rng *rand.Rand, n int) []Spec {
	specs := make([]Spec, n)
	for i := range specs {
		kind := specKinds[rng.IntN(len(specKinds))]
		spec := Spec{
			ID:       uuid.NewString(),
			Kind:     kind,
			Priority: 1 + rng.IntN(3),
		}
		switch kind {
		case grid.KindChart:
			spec.HasChart = true
			spec.Fields = rng.IntN(3)
		case grid.KindList, grid.KindContact:
			spec.Items = 1 + rng.IntN(9)
		case grid.KindTable:
			spec.Items = 2 + rng.IntN(8)
			spec.Fields = rng.IntN(4)
		default:
			spec.Fields = 1 + rng.IntN(8)
		}
		specs[i] = spec
	}
	return specs
}
