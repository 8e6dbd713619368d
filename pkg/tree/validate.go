package tree

import (
	"fmt"

	"github.com/matzehuels/arbor/pkg/errors"
)

// ValidationError locates the first node that does not have the shape
// {name: non-empty string, children?: array of nodes}.
type ValidationError struct {
	// Path is a JSONPath-style locator of the offending node, e.g. "$.children[2]".
	Path string
	// Reason describes what is wrong with the node at Path.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Validate checks an untyped JSON value (as produced by encoding/json into an
// any) and converts it into a tree with fresh IDs.
//
// The rules:
//   - the value must be an object
//   - "name" must be present, a string, and not empty
//   - "children", when present and not null, must be an array whose elements
//     all satisfy these rules recursively
//   - other keys are ignored and dropped
//
// Validation stops at the first failure. The returned error has code
// [errors.ErrCodeInvalidTree] and wraps a [*ValidationError].
func Validate(candidate any) (*Node, error) {
	n, verr := validate(candidate, "$")
	if verr != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, verr,
			`Invalid tree structure. JSON must contain "name" and optional "children" properties.`)
	}
	return n, nil
}

// Check verifies a tree that was built in memory rather than decoded: every
// node is non-nil, named, and has an ID unique within the tree, and no node
// appears twice (which also rules out cycles). Failures have code
// [errors.ErrCodeInvalidTree] and wrap a [*ValidationError].
func Check(root *Node) error {
	c := checker{ids: map[string]bool{}, seen: map[*Node]bool{}}
	if verr := c.check(root, "$"); verr != nil {
		return errors.Wrap(errors.ErrCodeInvalidTree, verr, "invalid tree: %s", verr.Reason)
	}
	return nil
}

type checker struct {
	ids  map[string]bool
	seen map[*Node]bool
}

func (c *checker) check(n *Node, path string) *ValidationError {
	switch {
	case n == nil:
		return &ValidationError{Path: path, Reason: "node is nil"}
	case c.seen[n]:
		return &ValidationError{Path: path, Reason: "node appears more than once"}
	case n.Name == "":
		return &ValidationError{Path: path, Reason: "name cannot be empty"}
	case n.ID == "":
		return &ValidationError{Path: path, Reason: "id cannot be empty"}
	case c.ids[n.ID]:
		return &ValidationError{Path: path, Reason: fmt.Sprintf("duplicate id %q", n.ID)}
	}
	c.seen[n] = true
	c.ids[n.ID] = true
	for i, child := range n.Children {
		if verr := c.check(child, fmt.Sprintf("%s.children[%d]", path, i)); verr != nil {
			return verr
		}
	}
	return nil
}

// Valid reports whether candidate passes [Validate].
func Valid(candidate any) bool {
	_, verr := validate(candidate, "$")
	return verr == nil
}

func validate(candidate any, path string) (*Node, *ValidationError) {
	obj, ok := candidate.(map[string]any)
	if !ok {
		return nil, &ValidationError{Path: path, Reason: fmt.Sprintf("node must be an object, got %s", kindOf(candidate))}
	}

	raw, ok := obj["name"]
	if !ok {
		return nil, &ValidationError{Path: path, Reason: "name is required"}
	}
	name, ok := raw.(string)
	if !ok {
		return nil, &ValidationError{Path: path, Reason: fmt.Sprintf("name must be a string, got %s", kindOf(raw))}
	}
	if name == "" {
		return nil, &ValidationError{Path: path, Reason: "name cannot be empty"}
	}

	n := New(name)

	raw, ok = obj["children"]
	if !ok || raw == nil {
		return n, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, &ValidationError{Path: path, Reason: fmt.Sprintf("children must be an array, got %s", kindOf(raw))}
	}
	if len(items) > 0 {
		n.Children = make([]*Node, 0, len(items))
	}
	for i, item := range items {
		child, verr := validate(item, fmt.Sprintf("%s.children[%d]", path, i))
		if verr != nil {
			return nil, verr
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
