// Package pkg provides the core libraries for arbor, an editor for
// hierarchical name trees.
//
// # Overview
//
// A tree is a root node with a name and an ordered list of children. Arbor
// edits one live tree at a time, keeps a JSON preview of it in sync, and
// draws it as a left-to-right tree or a radial diagram. The pkg directory
// is organized into three areas:
//
//  1. Domain: [tree], [io], [editor], [query]
//  2. Visualization: [graph], [render], [render/nodelink]
//  3. Infrastructure: [cache], [config], [watch], [observability], [errors]
//
// # Architecture
//
// The typical data flow through arbor:
//
//	JSON text (file, upload, editor action)
//	         ↓
//	    [io] package (parse + validate)
//	         ↓
//	    [editor] package (tree + selection, change notification)
//	         ↓
//	    [render] package (cached layout + drawing)
//	         ↓
//	    SVG/PNG/PDF/DOT output
//
// # Quick Start
//
// Build a tree and render it:
//
//	ed := editor.New()
//	ed.AddNode(ctx, "src")
//	snap, _ := ed.AddNode(ctx, "docs")
//
//	r := nodelink.New()
//	res, _ := r.Render(ctx, snap.Root, render.Options{Mode: render.ModeRadial})
//	os.WriteFile("tree.svg", res.Data, 0644)
//
// # Main Packages
//
// [tree] - The node model, structural validation of decoded JSON, and tree
// queries (Find, Walk, Depth).
//
// [io] - The canonical serializer and the parser that feeds [tree.Validate].
//
// [editor] - The single mutable editor state. Every mutation bumps a revision
// and notifies listeners with an immutable snapshot.
//
// [query] - JSONPath selection over trees.
//
// [graph] - Flattened node/edge views and the layout JSON document.
//
// [render] - Layout modes, output formats, and a cache-backed renderer.
//
// [render/nodelink] - Graphviz drawing for tree and radial layouts.
//
// [cache] - File, Redis and no-op cache backends with key derivation.
//
// [config] - TOML configuration.
//
// [watch] - Debounced file watching for live reload.
//
// [observability] - Hooks for editor, render and cache events.
//
// [errors] - Coded errors shared by the CLI, terminal editor and HTTP API.
//
// # Testing
//
//	go test ./...            # All tests
//	go test ./pkg/tree/...   # Specific package
//	go test -run Example     # Examples only
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/tree
// [io]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/io
// [editor]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/editor
// [query]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/query
// [graph]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/config
// [watch]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/watch
// [observability]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/errors
// [tree.Validate]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/tree#Validate
package pkg
