package cache

// Keyer derives cache keys for build artifacts.
type Keyer interface {
	// MeshKey is the key of an exported mesh.
	MeshKey(specHash string, opts MeshKeyOpts) string
	// PreviewKey is the key of a rendered preview image.
	PreviewKey(specHash string, opts PreviewKeyOpts) string
	// LayoutKey is the key of an assembly sheet over a set of keys.
	LayoutKey(setHash string, opts LayoutKeyOpts) string
}

// MeshKeyOpts are the export options that change a mesh.
type MeshKeyOpts struct {
	Format      string `json:"format"`
	Cells       int    `json:"cells"`
	SupportLegs bool   `json:"support_legs,omitempty"`
}

// PreviewKeyOpts are the render options that change a preview.
type PreviewKeyOpts struct {
	Format string  `json:"format"`
	Size   int     `json:"size"`
	Yaw    float64 `json:"yaw"`
	Pitch  float64 `json:"pitch"`
}

// LayoutKeyOpts are the options that change an assembly sheet.
type LayoutKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer builds keys of the form "mesh:<spec>:<options>", keeping the
// first 16 hex digits of each hash.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) MeshKey(specHash string, opts MeshKeyOpts) string {
	return artifactKey("mesh", specHash, opts)
}

func (DefaultKeyer) PreviewKey(specHash string, opts PreviewKeyOpts) string {
	return artifactKey("preview", specHash, opts)
}

func (DefaultKeyer) LayoutKey(setHash string, opts LayoutKeyOpts) string {
	return artifactKey("layout", setHash, opts)
}
