package nodelink

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Export packages a DOT string and the tree structure into a serialisable
// layout. Graphviz computes positions during rendering, so the layout holds
// no coordinates.
func Export(dot string, root *tree.Node, opts Options) graph.Layout {
	mode := opts.Mode
	if mode == "" {
		mode = render.ModeTree
	}
	l := graph.Layout{
		VizType:  string(mode),
		Engine:   string(engine(mode)),
		DOT:      dot,
		Selected: opts.Selected,
	}
	if root != nil {
		l.Root = root.ID
		l.Nodes, l.Edges = graph.Flatten(root, opts.Selected)
	}
	return l
}

// Renderer renders trees through Graphviz.
type Renderer struct {
	logger *log.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Graphviz renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render implements render.Renderer. root is only read.
func (r *Renderer) Render(ctx context.Context, root *tree.Node, opts render.Options) (*render.Result, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to render")
	}
	opts = opts.Normalize()

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, string(opts.Mode), string(opts.Format), root.Len())
	start := time.Now()

	res, err := r.render(ctx, root, opts)
	hooks.OnRenderComplete(ctx, string(opts.Mode), string(opts.Format), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("rendered", "mode", opts.Mode, "format", opts.Format, "bytes", len(res.Data))
	return res, nil
}

func (r *Renderer) render(ctx context.Context, root *tree.Node, opts render.Options) (*render.Result, error) {
	dopts := Options{Mode: opts.Mode, Selected: opts.Selected}
	dot := ToDOT(root, dopts)
	res := &render.Result{
		Layout:      Export(dot, root, dopts),
		ContentType: opts.Format.ContentType(),
	}

	var err error
	switch opts.Format {
	case render.FormatDOT:
		res.Data = []byte(dot)
	case render.FormatSVG:
		res.Data, err = RenderSVG(ctx, dot, opts.Mode)
	case render.FormatPNG:
		res.Data, err = RenderPNG(ctx, dot, opts.Mode)
	case render.FormatPDF:
		res.Data, err = RenderPDF(ctx, dot, opts.Mode)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", opts.Format)
	}
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", opts.Format)
	}
	return res, nil
}

var _ render.Renderer = (*Renderer)(nil)
