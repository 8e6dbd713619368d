package editor

import (
	"github.com/matzehuels/arbor/pkg/tree"
)

// ChangeKind identifies the mutation that produced a [Change].
type ChangeKind string

// Change kinds.
const (
	ChangeAdded    ChangeKind = "added"
	ChangeReplaced ChangeKind = "replaced"
	ChangeSelected ChangeKind = "selected"
)

// Snapshot is an immutable view of the editor state at one revision.
type Snapshot struct {
	// Revision increases by one with every successful mutation.
	Revision uint64
	// Root is a deep copy of the tree; node IDs match the live tree.
	Root *tree.Node
	// Selected is the ID of the selected node.
	Selected string
	// Preview is the serializer text of Root.
	Preview string
}

// SelectedNode returns the selected node within the snapshot's tree.
func (s Snapshot) SelectedNode() *tree.Node {
	return s.Root.Find(s.Selected)
}

// Change describes one committed mutation.
type Change struct {
	Kind     ChangeKind
	Snapshot Snapshot
	// Node is the ID of the node the change is about: the added node, the new
	// root, or the newly selected node.
	Node string
}
