// Package query selects tree nodes with JSONPath expressions.
//
// Expressions are evaluated against the tree's interchange document, so
// they are written in terms of "name" and "children":
//
//	$.children[*]                     top-level nodes
//	$..children[?(@.name == 'src')]   every node named src
//	$.children[0].children[-1:]       last child of the first top-level node
package query

import (
	"github.com/ohler55/ojg/jp"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
)

// idKey carries node IDs through the document. It cannot collide with
// interchange keys because the document is built here, not parsed.
const idKey = "\x00id"

// Compile parses a JSONPath expression.
func Compile(expr string) (jp.Expr, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid jsonpath %q", expr)
	}
	return x, nil
}

// Find returns the nodes matched by expr, in match order.
// Matches that are not node objects (a bare name string, for example) are skipped.
func Find(root *tree.Node, expr string) ([]*tree.Node, error) {
	x, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}

	index := make(map[string]*tree.Node, root.Len())
	root.Walk(func(n *tree.Node, _ int) bool {
		index[n.ID] = n
		return true
	})

	var out []*tree.Node
	for _, v := range x.Get(document(root)) {
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		id, _ := obj[idKey].(string)
		if n, ok := index[id]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// Names returns the names of the nodes matched by expr, in match order.
func Names(root *tree.Node, expr string) ([]string, error) {
	nodes, err := Find(root, expr)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	return names, nil
}

// document builds the generic JSON form of n, tagged with node IDs.
func document(n *tree.Node) map[string]any {
	children := make([]any, len(n.Children))
	for i, c := range n.Children {
		children[i] = document(c)
	}
	return map[string]any{
		idKey:      n.ID,
		"name":     n.Name,
		"children": children,
	}
}
