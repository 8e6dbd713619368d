// Package render turns trees into diagrams.
//
// # Overview
//
// A [Renderer] takes an immutable tree snapshot and produces a [Result]:
// the serialisable [graph.Layout] plus the diagram bytes in the requested
// [Format]. Two layout modes are supported:
//
//   - [ModeTree]: a layered left-to-right tree (Graphviz dot)
//   - [ModeRadial]: the root at the centre, one ring per depth (Graphviz twopi)
//
// The Graphviz-backed implementation lives in the [nodelink] subpackage.
// [Cached] wraps any Renderer with a [cache.Cache].
//
// # Format Conversion
//
// [ToPDF] converts SVG using the external rsvg-convert tool (from librsvg).
// [HasConverter] reports whether it is installed.
//
//	res, err := nodelink.New().Render(ctx, root, render.Options{Mode: render.ModeRadial})
//	pdf, err := render.ToPDF(ctx, res.Data)
//
// [nodelink]: github.com/matzehuels/arbor/pkg/render/nodelink
package render
