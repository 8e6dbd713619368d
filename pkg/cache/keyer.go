package cache

// Key type prefixes, also reported to cache hooks.
const (
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)

// Keyer generates cache keys for the artifact types arbor caches.
type Keyer interface {
	// LayoutKey identifies the computed layout (DOT and flattened nodes) of a tree.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered diagram.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the inputs that change a layout.
type LayoutKeyOpts struct {
	Mode     string `json:"mode"`
	Selected string `json:"selected,omitempty"`
}

// ArtifactKeyOpts holds the inputs that change a rendered diagram.
// Selected is part of the key because the selected node is highlighted.
type ArtifactKeyOpts struct {
	Mode     string `json:"mode"`
	Format   string `json:"format"`
	Selected string `json:"selected,omitempty"`
}

// DefaultKeyer builds keys of the form "type:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, treeHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, treeHash, opts)
}
