package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/graph"
	arborio "github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/query"
	"github.com/matzehuels/arbor/pkg/render"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	mode    string
	format  string
	output  string
	selectQ string
	layout  string
	noCache bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a tree file as a diagram",
		Long: `Render a tree file as a tree or radial diagram.

The node to highlight is chosen with a JSONPath expression, for example
--select '$.children[0]'. The first match is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "layout mode: tree or radial (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, png, pdf or dot (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format's extension)")
	cmd.Flags().StringVar(&opts.selectQ, "select", "", "JSONPath of the node to highlight")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "also write the layout JSON (DOT source and flattened nodes) to this file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	if opts.mode == "" {
		opts.mode = c.cfg.Render.Mode
	}
	if opts.format == "" {
		opts.format = c.cfg.Render.Format
	}
	mode, err := render.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	root, err := arborio.ImportJSON(input)
	if err != nil {
		return err
	}

	ropts := render.Options{Mode: mode, Format: format}
	if opts.selectQ != "" {
		nodes, err := query.Find(root, opts.selectQ)
		if err != nil {
			return err
		}
		if len(nodes) == 0 {
			return errors.New(errors.ErrCodeNodeNotFound, "no node matches %s", opts.selectQ)
		}
		ropts.Selected = nodes[0].ID
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + format.Ext()
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}
	if opts.layout != "" {
		if err := errors.ValidateOutputPath(opts.layout); err != nil {
			return err
		}
	}

	renderer, closeRenderer, err := c.newRenderer(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize renderer: %w", err)
	}
	defer closeRenderer()

	prog := newProgress(c.Logger)
	spinner := c.newSpinner(ctx, fmt.Sprintf("Rendering %s diagram...", mode))
	spinner.Start()

	res, err := renderer.Render(ctx, root, ropts)
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if err := os.WriteFile(output, res.Data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	prog.done("Rendered " + output)
	if opts.layout != "" {
		if err := graph.WriteLayoutFile(res.Layout, opts.layout); err != nil {
			return fmt.Errorf("write layout %s: %w", opts.layout, err)
		}
	}

	c.out.success("Rendered %s diagram", mode)
	c.out.file(output)
	if opts.layout != "" {
		c.out.file(opts.layout)
	}
	if n, ok := res.Layout.Node(ropts.Selected); ok {
		c.out.keyValue("Selected", n.Name)
	}
	c.out.treeStats(root, string(format))
	return nil
}
