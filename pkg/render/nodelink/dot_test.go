package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/tree"
)

func sample() *tree.Node {
	return &tree.Node{ID: "r", Name: "Root", Children: []*tree.Node{
		{ID: "a", Name: "A", Children: []*tree.Node{{ID: "a1", Name: "A1"}}},
		{ID: "b", Name: "B"},
	}}
}

func TestToDOT_Tree(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		"digraph G",
		"rankdir=LR",
		`"r" [id="node-r", label="Root"]`,
		`"r" -> "a"`,
		`"a" -> "a1"`,
		`"r" -> "b"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "root=") {
		t.Error("tree mode should not set a twopi root")
	}
}

func TestToDOT_EdgesInChildOrder(t *testing.T) {
	dot := ToDOT(sample(), Options{})
	ia := strings.Index(dot, `"r" -> "a"`)
	ib := strings.Index(dot, `"r" -> "b"`)
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("edges out of child order:\n%s", dot)
	}
}

func TestToDOT_Radial(t *testing.T) {
	dot := ToDOT(sample(), Options{Mode: render.ModeRadial})

	if !strings.Contains(dot, `root="r"`) {
		t.Error("radial mode missing root attribute")
	}
	if !strings.Contains(dot, "overlap=false") {
		t.Error("radial mode missing overlap=false")
	}
	if strings.Contains(dot, "rankdir") {
		t.Error("radial mode should not set rankdir")
	}
}

func TestToDOT_Selected(t *testing.T) {
	dot := ToDOT(sample(), Options{Selected: "a1"})

	if !strings.Contains(dot, `"a1" [id="node-a1", label="A1", fillcolor="#ffd54f", penwidth=2]`) {
		t.Errorf("selected node not highlighted:\n%s", dot)
	}
	if strings.Count(dot, "#ffd54f") != 1 {
		t.Error("only the selected node should be highlighted")
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines", `"two\nlines"`},
		{"", `""`},
		{"ünïcödé", `"ünïcödé"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	ctx := context.Background()
	for _, mode := range render.Modes {
		t.Run(string(mode), func(t *testing.T) {
			svg, err := RenderSVG(ctx, ToDOT(sample(), Options{Mode: mode}), mode)
			if err != nil {
				t.Fatalf("RenderSVG() error: %v", err)
			}
			out := string(svg)
			if !strings.Contains(out, "<svg") {
				t.Error("RenderSVG() output missing <svg> tag")
			}
			if !strings.Contains(out, `id="node-a1"`) {
				t.Error("RenderSVG() output missing node element ID")
			}
		})
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`, render.ModeTree)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}

func TestRenderer(t *testing.T) {
	ctx := context.Background()
	root := sample()
	before := root.Clone()

	res, err := New().Render(ctx, root, render.Options{Format: render.FormatDOT, Selected: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if res.ContentType != render.FormatDOT.ContentType() {
		t.Errorf("ContentType = %q", res.ContentType)
	}
	if string(res.Data) != res.Layout.DOT {
		t.Error("DOT output should equal the layout's DOT source")
	}
	if res.Layout.VizType != "tree" || res.Layout.Engine != "dot" || res.Layout.Root != "r" {
		t.Errorf("layout header = %+v", res.Layout)
	}
	if len(res.Layout.Nodes) != 4 || len(res.Layout.Edges) != 3 {
		t.Errorf("layout has %d nodes, %d edges", len(res.Layout.Nodes), len(res.Layout.Edges))
	}
	if n, ok := res.Layout.Node("b"); !ok || !n.Selected {
		t.Errorf("selected node not flagged: %+v", n)
	}
	if !tree.Equal(before, root) {
		t.Error("Render modified the tree")
	}
}

func TestRendererSVG(t *testing.T) {
	res, err := New().Render(context.Background(), sample(), render.Options{Mode: render.ModeRadial})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(res.Data), "<svg") {
		t.Error("expected SVG output")
	}
	if res.Layout.Engine != "twopi" {
		t.Errorf("Engine = %q, want twopi", res.Layout.Engine)
	}
}

func TestRendererNilTree(t *testing.T) {
	_, err := New().Render(context.Background(), nil, render.Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestRendererUnknownFormat(t *testing.T) {
	_, err := New().Render(context.Background(), sample(), render.Options{Format: "gif"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestRendererPDFWithoutConverter(t *testing.T) {
	if render.HasConverter() {
		t.Skip("rsvg-convert installed")
	}
	root := tree.New("Root")
	_, err := New().Render(context.Background(), root, render.Options{Format: render.FormatPDF})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Render(pdf) = %v, want UNSUPPORTED", err)
	}
}
