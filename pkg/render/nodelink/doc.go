// Package nodelink renders trees as node-link diagrams using Graphviz.
//
// # Overview
//
// Each tree node becomes a rounded box labelled with its name, and each
// parent/child pair becomes an edge. Siblings keep their child order.
// Graphviz computes positions and renders in one step:
//
//	tree.Node → ToDOT() → DOT → RenderSVG() → SVG
//
// The DOT source is also the layout's serialisable form (see [Export]), so a
// client can re-render without the tree.
//
// # Layout Engines
//
//   - dot: used for tree mode, ranked left to right
//   - twopi: used for radial mode, rooted at the tree root
//
// # Selection
//
// The selected node is drawn with a highlighted fill. Every node carries an
// SVG element ID of the form "node-<id>" so that the browser editor can map a
// click on the diagram back to a selection event.
//
// # Usage
//
//	r := nodelink.New()
//	res, err := r.Render(ctx, root, render.Options{Mode: render.ModeRadial, Selected: id})
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and PNG
// rendering. PDF conversion requires librsvg (rsvg-convert).
package nodelink
