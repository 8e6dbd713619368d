package tree

import (
	"github.com/google/uuid"
)

// Node is a labeled vertex with an ordered list of owned children.
type Node struct {
	ID       string
	Name     string
	Children []*Node
}

// New creates a node with a fresh ID and no children.
func New(name string) *Node {
	return &Node{ID: uuid.NewString(), Name: name}
}

// Add appends a new child named name at the end of n's children and returns it.
// Add does not check name; callers reject blank names before mutating.
func (n *Node) Add(name string) *Node {
	child := New(name)
	n.Children = append(n.Children, child)
	return child
}

// Find returns the node with the given ID in the subtree rooted at n, or nil.
func (n *Node) Find(id string) *Node {
	if n == nil || id == "" {
		return nil
	}
	var found *Node
	n.Walk(func(c *Node, _ int) bool {
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// Walk visits n and its descendants depth-first in child order, passing each
// node's depth (the root is 0). Returning false from fn stops the walk.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	if n == nil {
		return
	}
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) bool {
	if !fn(n, depth) {
		return false
	}
	for _, c := range n.Children {
		if !walk(c, depth+1, fn) {
			return false
		}
	}
	return true
}

// Len returns the number of nodes in the subtree rooted at n.
func (n *Node) Len() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Depth returns the number of levels below n; a leaf has depth 0.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	deepest := 0
	n.Walk(func(_ *Node, d int) bool {
		if d > deepest {
			deepest = d
		}
		return true
	})
	return deepest
}

// Clone returns a deep copy of n that keeps node IDs.
// The copy shares no memory with n and can be handed to readers as a snapshot.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{ID: n.ID, Name: n.Name}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Equal reports whether a and b have the same names in the same shape and
// child order. IDs are ignored. A nil and an empty children list are equal.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
