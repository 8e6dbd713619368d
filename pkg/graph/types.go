package graph

import (
	"github.com/matzehuels/arbor/pkg/tree"
)

// Visualization types, one per layout mode.
const (
	VizTypeTree   = "tree"
	VizTypeRadial = "radial"
)

// Graphviz layout engines used per visualization type.
const (
	EngineDot   = "dot"
	EngineTwopi = "twopi"
)

// Node is one tree node in flattened form.
type Node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Parent   string `json:"parent,omitempty"` // empty for the root
	Depth    int    `json:"depth"`
	Index    int    `json:"index"` // position among siblings
	Selected bool   `json:"selected,omitempty"`
}

// Edge is a parent to child link.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Flatten lists the nodes of root in depth-first child order together with
// one edge per parent/child pair. The node whose ID equals selected is flagged.
func Flatten(root *tree.Node, selected string) ([]Node, []Edge) {
	if root == nil {
		return nil, nil
	}
	nodes := make([]Node, 0, root.Len())
	var edges []Edge

	var visit func(n *tree.Node, parent string, depth, index int)
	visit = func(n *tree.Node, parent string, depth, index int) {
		nodes = append(nodes, Node{
			ID:       n.ID,
			Name:     n.Name,
			Parent:   parent,
			Depth:    depth,
			Index:    index,
			Selected: selected != "" && n.ID == selected,
		})
		for i, c := range n.Children {
			edges = append(edges, Edge{From: n.ID, To: c.ID})
			visit(c, n.ID, depth+1, i)
		}
	}
	visit(root, "", 0, 0)
	return nodes, edges
}

// View is a node with its ID, nested the same way as the interchange format.
type View struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Children []View `json:"children"`
}

// ViewOf converts a tree into its nested view. Children is never nil.
func ViewOf(n *tree.Node) View {
	v := View{ID: n.ID, Name: n.Name, Children: make([]View, 0, len(n.Children))}
	for _, c := range n.Children {
		v.Children = append(v.Children, ViewOf(c))
	}
	return v
}
