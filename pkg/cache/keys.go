package cache

// Keyer builds cache keys for the pipeline stages. Implementations must be
// deterministic: identical inputs always produce identical keys.
type Keyer interface {
	// SectionsKey keys an estimated-section batch by the hash of its raw
	// inputs plus the sizing options that shaped the estimates.
	SectionsKey(inputsHash string, opts SectionsKeyOpts) string

	// LayoutKey keys a pack result by the hash of its estimated sections
	// plus the geometry and strategy options.
	LayoutKey(sectionsHash string, opts LayoutKeyOpts) string
}

// SectionsKeyOpts are the options hashed into a sections key.
type SectionsKeyOpts struct {
	TableHash  string `json:"table_hash,omitempty"`
	MaxColumns int    `json:"max_columns,omitempty"`
}

// LayoutKeyOpts are the options hashed into a layout key. Every field that
// changes packing output belongs here.
type LayoutKeyOpts struct {
	Strategy       string  `json:"strategy"`
	ContainerWidth float64 `json:"container_width"`
	Gap            float64 `json:"gap"`
	MinColumnWidth float64 `json:"min_column_width"`
	MaxColumns     int     `json:"max_columns"`
}

// DefaultKeyer is the standard key builder.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SectionsKey generates a key for estimated-section caching.
func (k *DefaultKeyer) SectionsKey(inputsHash string, opts SectionsKeyOpts) string {
	return hashKey("sections", inputsHash, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(sectionsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sectionsHash, opts)
}
