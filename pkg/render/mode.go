package render

import (
	"strings"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/graph"
)

// Mode selects how the tree is laid out.
type Mode string

// Layout modes.
const (
	ModeTree   Mode = graph.VizTypeTree
	ModeRadial Mode = graph.VizTypeRadial
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModeTree, ModeRadial}

// ParseMode parses a mode name case-insensitively. The empty string is ModeTree.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeTree:
		return ModeTree, nil
	case ModeRadial:
		return ModeRadial, nil
	}
	return "", errors.New(errors.ErrCodeInvalidLayout, "unknown layout mode %q (want tree or radial)", s)
}

// Next returns the other mode, for toggling.
func (m Mode) Next() Mode {
	if m == ModeRadial {
		return ModeTree
	}
	return ModeRadial
}

// Format is a diagram output format.
type Format string

// Output formats.
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
	FormatDOT Format = "dot"
)

// ParseFormat parses a format name case-insensitively. The empty string is FormatSVG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatSVG, nil
	case FormatSVG, FormatPNG, FormatPDF, FormatDOT:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want svg, png, pdf or dot)", s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "image/svg+xml"
	}
}

// Ext returns the file extension for the format, with the leading dot.
func (f Format) Ext() string {
	if f == "" {
		return ".svg"
	}
	return "." + string(f)
}
