package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Options configures DOT generation.
type Options struct {
	Mode     render.Mode
	Selected string // ID of the node to highlight
}

// ElementID returns the SVG element ID Graphviz assigns to a tree node.
func ElementID(nodeID string) string {
	return "node-" + nodeID
}

// ToDOT converts a tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(root *tree.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Mode == render.ModeRadial {
		fmt.Fprintf(&buf, "  root=%s;\n", quote(root.ID))
		buf.WriteString("  overlap=false;\n")
		buf.WriteString("  ranksep=1.2;\n")
	} else {
		buf.WriteString("  rankdir=LR;\n")
		buf.WriteString("  ranksep=0.6;\n")
		buf.WriteString("  nodesep=0.25;\n")
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#555555\"];\n")
	buf.WriteString("\n")

	root.Walk(func(n *tree.Node, _ int) bool {
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(fmtAttrs(n, n.ID == opts.Selected), ", "))
		return true
	})

	buf.WriteString("\n")
	root.Walk(func(n *tree.Node, _ int) bool {
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  %s -> %s;\n", quote(n.ID), quote(c.ID))
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n *tree.Node, selected bool) []string {
	attrs := []string{
		"id=" + quote(ElementID(n.ID)),
		"label=" + quote(n.Name),
	}
	if selected {
		attrs = append(attrs, "fillcolor=\"#ffd54f\"", "penwidth=2")
	}
	return attrs
}

// quote renders s as a DOT double-quoted string. Names are user text, so
// backslashes are escaped to stop Graphviz reading them as label escapes.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`, "\r", `\n`)
	return `"` + r.Replace(s) + `"`
}

// engine maps a mode to its Graphviz layout engine.
func engine(m render.Mode) graphviz.Layout {
	if m == render.ModeRadial {
		return graphviz.TWOPI
	}
	return graphviz.DOT
}

// RenderSVG lays out and renders a DOT graph to SVG with the engine for mode.
func RenderSVG(ctx context.Context, dot string, mode render.Mode) ([]byte, error) {
	svg, err := run(ctx, dot, mode, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG lays out and renders a DOT graph to PNG with the engine for mode.
func RenderPNG(ctx context.Context, dot string, mode render.Mode) ([]byte, error) {
	return run(ctx, dot, mode, graphviz.PNG)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string, mode render.Mode) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, mode)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

func run(ctx context.Context, dot string, mode render.Mode, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(engine(mode))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the diagram scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
