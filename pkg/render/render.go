package render

import (
	"context"

	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Options configures a render.
type Options struct {
	Mode     Mode
	Format   Format
	Selected string // ID of the node to highlight, if any
}

// Normalize fills unset fields with ModeTree and FormatSVG.
func (o Options) Normalize() Options {
	if o.Mode == "" {
		o.Mode = ModeTree
	}
	if o.Format == "" {
		o.Format = FormatSVG
	}
	return o
}

// Result is a rendered diagram.
type Result struct {
	Layout      graph.Layout `json:"layout"`
	Data        []byte       `json:"data"`
	ContentType string       `json:"content_type"`
}

// Renderer turns a tree into a diagram. Implementations must not modify root.
type Renderer interface {
	Render(ctx context.Context, root *tree.Node, opts Options) (*Result, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, root *tree.Node, opts Options) (*Result, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, root *tree.Node, opts Options) (*Result, error) {
	return f(ctx, root, opts)
}
