// Package graph provides serialization types for rendered tree layouts.
//
// This package defines the wire format handed to clients of the render
// adapter: the browser editor fetches it from /api/layout and uses the node
// list to map clicks on the diagram back to node IDs. The render command
// writes the same document to disk with --layout.
//
// # Core Types
//
//   - [Layout]: a rendered tree, with the Graphviz DOT source and flattened nodes
//   - [Node], [Edge]: flattened structure with IDs, depths and the selection flag
//   - [View]: the nested tree with IDs, as returned by /api/tree
//
// # Constants
//
//	graph.VizTypeTree    // "tree"
//	graph.VizTypeRadial  // "radial"
//
// # Layout Serialization
//
//	{
//	  "viz_type": "tree",
//	  "engine": "dot",
//	  "dot": "digraph G { ... }",
//	  "nodes": [{"id": "…", "name": "Root", "depth": 0}],
//	  "edges": [{"from": "…", "to": "…"}]
//	}
//
// Node IDs are assigned when a tree is built or loaded. They never appear in
// exported tree JSON, only in these client-facing views.
package graph
