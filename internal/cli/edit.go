package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/watch"
)

// editCommand creates the edit command for the terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	var (
		watchFile bool
		noCache   bool
		outDir    string
	)

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a tree in the terminal",
		Long: `Edit a tree in the terminal.

Exports and rendered diagrams are written to the output directory
(the current directory by default).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			if outDir == "" {
				outDir = "."
			}
			return c.runEdit(cmd.Context(), file, outDir, watchFile, noCache)
		},
	}

	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "reload the file when it changes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().StringVarP(&outDir, "output-dir", "o", "", "directory for exports and diagrams")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, file, outDir string, watchFile, noCache bool) error {
	if info, err := os.Stat(outDir); err != nil || !info.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", outDir)
	}

	ed := c.newEditor()
	if file != "" {
		if err := loadFile(ctx, ed, file); err != nil {
			return err
		}
	}

	renderer, closeRenderer, err := c.newRenderer(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize renderer: %w", err)
	}
	defer closeRenderer()

	mode, _ := render.ParseMode(c.cfg.Render.Mode)
	p := tea.NewProgram(NewEditorModel(ctx, ed, renderer, mode, outDir), tea.WithContext(ctx))
	ed.Subscribe(ChangeListener(p))

	if watchFile && file != "" {
		w, err := watch.New(file,
			watch.WithDebounce(c.cfg.Watch.Debounce.Duration),
			watch.WithOnChange(func(data []byte) {
				if _, err := ed.Load(ctx, data); err != nil {
					c.Logger.Debug("reload rejected", "file", file, "err", err)
				}
			}),
		)
		if err != nil {
			return err
		}
		wctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() { _ = w.Run(wctx) }()
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}
