package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/arbor/pkg/tree"
)

// DefaultExportName is the filename offered for downloaded trees.
const DefaultExportName = "tree-structure.json"

// ContentType is the media type of exported documents.
const ContentType = "application/json"

// document fixes the field order of the interchange format.
type document struct {
	Name     string     `json:"name"`
	Children []document `json:"children"`
}

func toDocument(n *tree.Node) document {
	d := document{Name: n.Name, Children: make([]document, len(n.Children))}
	for i, c := range n.Children {
		d.Children[i] = toDocument(c)
	}
	return d
}

// Marshal returns the interchange text of the tree rooted at root.
func Marshal(root *tree.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(root, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes the tree rooted at root and writes it to w.
func WriteJSON(root *tree.Node, w io.Writer) error {
	if root == nil {
		return fmt.Errorf("encode: nil tree")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(toDocument(root)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the tree to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(root *tree.Node, path string) error {
	data, err := Marshal(root)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ToDocument returns the interchange form of the tree as generic JSON values
// (map[string]any and []any), suitable for JSONPath evaluation.
func ToDocument(root *tree.Node) map[string]any {
	children := make([]any, len(root.Children))
	for i, c := range root.Children {
		children[i] = ToDocument(c)
	}
	return map[string]any{"name": root.Name, "children": children}
}
