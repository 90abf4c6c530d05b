package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	oserrors "github.com/Inutilepat83/OSI-Cards-sub011/pkg/errors"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/sizing"
)

// SectionInput is the wire and file form of a section before estimation:
// declared content signals plus optional layout overrides. Flag fields use
// pointers so that "not set" is distinguishable from an explicit false; the
// defaults (shrinkable, growable only for charts) are applied during
// BuildSections.
type SectionInput struct {
	ID   string `json:"id"`
	Kind string `json:"kind,omitempty"`

	// Content signals feeding the height estimator.
	Fields   int  `json:"fields,omitempty"`
	Items    int  `json:"items,omitempty"`
	HasChart bool `json:"has_chart,omitempty"`

	// Declared overrides. Zero values defer to the estimator.
	EstimatedHeight  float64 `json:"estimated_height,omitempty"`
	MinColumns       int     `json:"min_columns,omitempty"`
	PreferredColumns int     `json:"preferred_columns,omitempty"`
	MaxColumns       int     `json:"max_columns,omitempty"`
	ColSpanOverride  int     `json:"col_span_override,omitempty"`

	CanGrow   *bool `json:"can_grow,omitempty"`
	CanShrink *bool `json:"can_shrink,omitempty"`

	Priority int `json:"priority,omitempty"`
}

// Signals extracts the content signals for the height estimator.
func (in SectionInput) Signals() sizing.Signals {
	return sizing.Signals{
		Fields:   in.Fields,
		Items:    in.Items,
		HasChart: in.HasChart || in.Kind == grid.KindChart,
	}
}

// BuildSections runs the sizing estimator over a batch of inputs, producing
// sections ready for packing. IDs are validated up front; flexibility flags
// get their kind-based defaults here.
func (o *Options) BuildSections(inputs []SectionInput, table sizing.Table) ([]grid.Section, error) {
	o.SetPackDefaults()

	sections := make([]grid.Section, len(inputs))
	signals := make([]sizing.Signals, len(inputs))
	for i, in := range inputs {
		if err := oserrors.ValidateSectionID(in.ID); err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}

		sec := grid.Section{
			ID:               in.ID,
			Kind:             in.Kind,
			EstimatedHeight:  in.EstimatedHeight,
			MinColumns:       in.MinColumns,
			PreferredColumns: in.PreferredColumns,
			MaxColumns:       in.MaxColumns,
			ColSpanOverride:  in.ColSpanOverride,
			Priority:         in.Priority,
		}

		// Sections shrink unless told otherwise; only charts grow by default.
		sec.CanShrink = in.CanShrink == nil || *in.CanShrink
		if in.CanGrow != nil {
			sec.CanGrow = *in.CanGrow
		} else {
			sec.CanGrow = in.Kind == grid.KindChart
		}

		sections[i] = sec
		signals[i] = in.Signals()
	}

	return table.EstimateAll(sections, signals, o.MaxColumns), nil
}

// ReadSectionsFile reads a JSON array of section inputs from a file.
func ReadSectionsFile(path string) ([]SectionInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sections %s: %w", path, err)
	}
	var inputs []SectionInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parse sections %s: %w", path, err)
	}
	return inputs, nil
}

// WriteSectionsFile writes section inputs to a pretty-printed JSON file.
func WriteSectionsFile(inputs []SectionInput, path string) error {
	data, err := json.MarshalIndent(inputs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
