package cache

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey identifies a settled layout computed from input data.
	LayoutKey(dataHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered output of a layout.
	ArtifactKey(layoutID string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the engine settings that affect a layout.
type LayoutKeyOpts struct {
	Width     float64 `json:"w"`
	Height    float64 `json:"h"`
	MinRadius float64 `json:"rmin"`
	MaxRadius float64 `json:"rmax"`
	Seed      uint64  `json:"seed"`
	MaxTicks  int     `json:"ticks"`

	// Params is a hash of the force parameters.
	Params string `json:"params,omitempty"`
}

// ArtifactKeyOpts are the render settings that affect an artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Palette  string  `json:"palette,omitempty"`
	Margin   float64 `json:"margin,omitempty"`
	NoLabels bool    `json:"no_labels,omitempty"`
	Legend   bool    `json:"legend,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Graphviz bool    `json:"graphviz,omitempty"`
}

// DefaultKeyer hashes all key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(dataHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", dataHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutID string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutID, opts)
}
