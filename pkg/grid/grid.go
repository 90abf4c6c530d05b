package grid

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Section kinds. Kinds seed the sizing estimator's base heights and span
// preferences; unknown kinds fall back to the generic coefficients.
const (
	KindInfo    = "info"
	KindList    = "list"
	KindChart   = "chart"
	KindContact = "contact"
	KindTable   = "table"
)

// Priority bounds. Lower values order earlier; the value is an ordering hint
// only and never causes a section to be dropped.
const (
	PriorityHigh    = 1
	PriorityNormal  = 2
	PriorityLow     = 3
	DefaultPriority = PriorityNormal
)

// =============================================================================
// GridConfig - Resolved Column Geometry
// =============================================================================

// GridConfig describes the resolved column geometry for one container width.
// Build it with [Resolve] rather than by hand; the ColumnWidth field is
// derived as (ContainerWidth - Gap*(TotalColumns-1)) / TotalColumns.
type GridConfig struct {
	TotalColumns   int     `json:"total_columns" bson:"total_columns"`
	Gap            float64 `json:"gap" bson:"gap"`
	MinColumnWidth float64 `json:"min_column_width" bson:"min_column_width"`
	ContainerWidth float64 `json:"container_width" bson:"container_width"`
	ColumnWidth    float64 `json:"column_width" bson:"column_width"`
}

// SpanWidth returns the pixel width of a span covering n columns,
// including the gaps between them.
func (c GridConfig) SpanWidth(n int) float64 {
	if n < 1 {
		return 0
	}
	return float64(n)*c.ColumnWidth + float64(n-1)*c.Gap
}

// ColumnOffset returns the x coordinate of a column's left edge.
func (c GridConfig) ColumnOffset(col int) float64 {
	if col < 1 {
		return 0
	}
	return float64(col) * (c.ColumnWidth + c.Gap)
}

// =============================================================================
// Section - Layout Participant
// =============================================================================

// Section is one layout participant: an estimated height plus the span
// constraints the packer must honor. Sections are inputs only - packers copy
// before normalizing and never mutate what the caller handed in.
//
// Column bounds are in columns, not pixels. A zero MinColumns/MaxColumns
// means "unconstrained" and defaults to [1, TotalColumns] during
// normalization. ColSpanOverride, when positive, pins the span exactly
// (min = preferred = max = override, clamped to the grid).
type Section struct {
	ID              string  `json:"id" bson:"id"`
	Kind            string  `json:"kind,omitempty" bson:"kind,omitempty"`
	EstimatedHeight float64 `json:"estimated_height" bson:"estimated_height"`

	MinColumns       int `json:"min_columns,omitempty" bson:"min_columns,omitempty"`
	PreferredColumns int `json:"preferred_columns,omitempty" bson:"preferred_columns,omitempty"`
	MaxColumns       int `json:"max_columns,omitempty" bson:"max_columns,omitempty"`
	ColSpanOverride  int `json:"col_span_override,omitempty" bson:"col_span_override,omitempty"`

	CanGrow   bool `json:"can_grow,omitempty" bson:"can_grow,omitempty"`
	CanShrink bool `json:"can_shrink,omitempty" bson:"can_shrink,omitempty"`

	// Priority orders sections before placement (1 = highest, 3 = lowest).
	// Zero means unset and is treated as DefaultPriority.
	Priority int `json:"priority,omitempty" bson:"priority,omitempty"`
}

// EffectivePriority returns the priority clamped to [PriorityHigh,
// PriorityLow], with the zero value mapping to DefaultPriority.
func (s Section) EffectivePriority() int {
	switch {
	case s.Priority <= 0:
		return DefaultPriority
	case s.Priority < PriorityHigh:
		return PriorityHigh
	case s.Priority > PriorityLow:
		return PriorityLow
	default:
		return s.Priority
	}
}

// =============================================================================
// Position - Placed Rectangle
// =============================================================================

// Position is a placed section: a column index (0-based), the span it
// occupies, and its vertical extent in pixels.
type Position struct {
	SectionID string  `json:"section_id" bson:"section_id"`
	Column    int     `json:"column" bson:"column"`
	ColSpan   int     `json:"col_span" bson:"col_span"`
	Top       float64 `json:"top" bson:"top"`
	Height    float64 `json:"height" bson:"height"`
}

// Bottom returns the y coordinate of the rectangle's lower edge.
func (p Position) Bottom() float64 { return p.Top + p.Height }

// RightEdge returns the x coordinate of the rectangle's right edge under
// the given grid geometry.
func (p Position) RightEdge(c GridConfig) float64 {
	return c.ColumnOffset(p.Column) + c.SpanWidth(p.ColSpan)
}

// =============================================================================
// LayoutResult - Packing Output
// =============================================================================

// ConstraintNote records a recoverable constraint conflict: the engine
// clamped something to keep the section placeable instead of failing the
// layout. Callers decide whether to log or surface these.
type ConstraintNote struct {
	SectionID string `json:"section_id" bson:"section_id"`
	Message   string `json:"message" bson:"message"`
}

// LayoutResult is the complete output of one packing pass.
//
// The result is self-describing: the config that produced it is embedded so
// a stored layout can be re-scored or rendered without outside context.
// Positions appear in placement order and contain every input section
// exactly once.
type LayoutResult struct {
	Strategy  string     `json:"strategy,omitempty" bson:"strategy,omitempty"`
	Config    GridConfig `json:"config" bson:"config"`
	Positions []Position `json:"positions" bson:"positions"`

	TotalHeight        float64 `json:"total_height" bson:"total_height"`
	UtilizationPercent float64 `json:"utilization_percent" bson:"utilization_percent"`
	GapCount           int     `json:"gap_count" bson:"gap_count"`

	Conflicts []ConstraintNote `json:"conflicts,omitempty" bson:"conflicts,omitempty"`
}

// PositionsByID returns the positions indexed by section ID.
func (r LayoutResult) PositionsByID() map[string]Position {
	m := make(map[string]Position, len(r.Positions))
	for _, p := range r.Positions {
		m[p.SectionID] = p
	}
	return m
}

// SectionIDs returns the placed section IDs in placement order.
func (r LayoutResult) SectionIDs() []string {
	ids := make([]string, len(r.Positions))
	for i, p := range r.Positions {
		ids[i] = p.SectionID
	}
	return ids
}
