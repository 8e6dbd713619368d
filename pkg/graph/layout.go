package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// Layout is the serialization format for a rendered tree.
//
// Graphviz computes node positions during rendering, so the layout carries
// the DOT source and the engine that will lay it out rather than coordinates.
// Nodes and Edges give clients the structure without parsing DOT.
type Layout struct {
	VizType string `json:"viz_type"`
	Engine  string `json:"engine"`
	DOT     string `json:"dot"`

	Root     string `json:"root,omitempty"`
	Selected string `json:"selected,omitempty"`
	Nodes    []Node `json:"nodes"`
	Edges    []Edge `json:"edges"`
}

// IsRadial returns true if this is a radial layout.
func (l *Layout) IsRadial() bool { return l.VizType == VizTypeRadial }

// Node returns the flattened node with the given ID.
func (l *Layout) Node(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// A missing viz type defaults to tree; the DOT source is required.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	switch l.VizType {
	case "":
		l.VizType = VizTypeTree
	case VizTypeTree, VizTypeRadial:
	default:
		return Layout{}, fmt.Errorf("unknown viz_type %q", l.VizType)
	}
	if l.DOT == "" {
		return Layout{}, fmt.Errorf("layout must contain DOT string")
	}
	if l.Engine == "" {
		l.Engine = EngineDot
		if l.IsRadial() {
			l.Engine = EngineTwopi
		}
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
