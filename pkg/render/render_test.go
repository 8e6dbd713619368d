package render

import (
	"context"
	"errors"
	"testing"

	"github.com/matzehuels/arbor/pkg/cache"
	arborerrors "github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/tree"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeTree, false},
		{"tree", ModeTree, false},
		{"Radial", ModeRadial, false},
		{" radial ", ModeRadial, false},
		{"tower", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) err = %v", tt.in, err)
			continue
		}
		if tt.wantErr && !arborerrors.Is(err, arborerrors.ErrCodeInvalidLayout) {
			t.Errorf("ParseMode(%q) code = %s", tt.in, arborerrors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestModeNext(t *testing.T) {
	if ModeTree.Next() != ModeRadial || ModeRadial.Next() != ModeTree {
		t.Error("Next should toggle between tree and radial")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		ctype   string
		wantErr bool
	}{
		{"", FormatSVG, "image/svg+xml", false},
		{"SVG", FormatSVG, "image/svg+xml", false},
		{"png", FormatPNG, "image/png", false},
		{"pdf", FormatPDF, "application/pdf", false},
		{"dot", FormatDOT, "text/vnd.graphviz; charset=utf-8", false},
		{"gif", "", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) err = %v", tt.in, err)
			continue
		}
		if tt.wantErr {
			if !arborerrors.Is(err, arborerrors.ErrCodeInvalidFormat) {
				t.Errorf("ParseFormat(%q) code = %s", tt.in, arborerrors.GetCode(err))
			}
			continue
		}
		if got != tt.want || got.ContentType() != tt.ctype {
			t.Errorf("ParseFormat(%q) = %q (%s)", tt.in, got, got.ContentType())
		}
		if got.Ext() != "."+string(tt.want) {
			t.Errorf("Ext() = %q", got.Ext())
		}
	}
}

func TestOptionsNormalize(t *testing.T) {
	o := Options{}.Normalize()
	if o.Mode != ModeTree || o.Format != FormatSVG {
		t.Errorf("Normalize() = %+v", o)
	}
	o = Options{Mode: ModeRadial, Format: FormatDOT}.Normalize()
	if o.Mode != ModeRadial || o.Format != FormatDOT {
		t.Errorf("Normalize() overrode set fields: %+v", o)
	}
}

type countingRenderer struct {
	calls int
	err   error
}

func (r *countingRenderer) Render(_ context.Context, root *tree.Node, opts Options) (*Result, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	nodes, edges := graph.Flatten(root, opts.Selected)
	return &Result{
		Layout:      graph.Layout{VizType: string(opts.Mode), DOT: "digraph G {}", Nodes: nodes, Edges: edges},
		Data:        []byte("<svg/>"),
		ContentType: opts.Format.ContentType(),
	}, nil
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	inner := &countingRenderer{}
	r := NewCached(inner, c)

	root := &tree.Node{ID: "r", Name: "Root", Children: []*tree.Node{{ID: "a", Name: "A"}}}

	first, err := r.Render(ctx, root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Render(ctx, root, Options{Mode: ModeTree, Format: FormatSVG})
	if err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Errorf("inner renderer called %d times, want 1", inner.calls)
	}
	if string(second.Data) != string(first.Data) || len(second.Layout.Nodes) != 2 {
		t.Errorf("cached result differs: %+v", second)
	}

	// Selection, mode and IDs are part of the key.
	if _, err := r.Render(ctx, root, Options{Selected: "a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Render(ctx, root, Options{Mode: ModeRadial}); err != nil {
		t.Fatal(err)
	}
	other := &tree.Node{ID: "x", Name: "Root", Children: []*tree.Node{{ID: "a", Name: "A"}}}
	if _, err := r.Render(ctx, other, Options{}); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 4 {
		t.Errorf("inner renderer called %d times, want 4", inner.calls)
	}
}

func TestCachedErrorNotStored(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	inner := &countingRenderer{err: errors.New("graphviz exploded")}
	r := NewCached(inner, c)
	root := tree.New("Root")

	for range 2 {
		if _, err := r.Render(ctx, root, Options{}); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls != 2 {
		t.Errorf("failed renders should not be cached, calls = %d", inner.calls)
	}
}

func TestCachedNilCache(t *testing.T) {
	inner := &countingRenderer{}
	r := NewCached(inner, nil)
	root := tree.New("Root")
	for range 2 {
		if _, err := r.Render(context.Background(), root, Options{}); err != nil {
			t.Fatal(err)
		}
	}
	if inner.calls != 2 {
		t.Errorf("nil cache should disable caching, calls = %d", inner.calls)
	}
}

func TestCachedLayoutKeyedSeparately(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	inner := &countingRenderer{}
	r := NewCached(inner, c, WithKeyer(cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1:")))
	root := &tree.Node{ID: "r", Name: "Root"}

	for _, f := range []Format{FormatDOT, FormatSVG, FormatDOT, FormatSVG} {
		if _, err := r.Render(ctx, root, Options{Format: f}); err != nil {
			t.Fatal(err)
		}
	}
	if inner.calls != 2 {
		t.Errorf("inner renderer called %d times, want 2", inner.calls)
	}
}
