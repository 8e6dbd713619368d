package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/arbor/internal/server"
	"github.com/matzehuels/arbor/pkg/editor"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/watch"
)

// serveCommand creates the serve command for the browser editor.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		watchFile bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Start the browser tree editor",
		Long: `Start the browser tree editor.

If a file is given, it is loaded as the initial tree. With --watch, the
tree is reloaded whenever the file changes on disk.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			if watchFile && file == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--watch needs a file")
			}
			return c.runServe(cmd.Context(), addr, file, watchFile, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "reload the file when it changes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, file string, watchFile, noCache bool) error {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetEditorHooks(hooks)
	observability.SetRenderHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

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
	format, _ := render.ParseFormat(c.cfg.Render.Format)
	srv := server.New(ed, renderer,
		server.WithLogger(c.Logger.WithPrefix("http")),
		server.WithDefaults(mode, format),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, addr)
	})

	if watchFile {
		w, err := watch.New(file,
			watch.WithDebounce(c.cfg.Watch.Debounce.Duration),
			watch.WithOnChange(func(data []byte) {
				if _, err := ed.Load(gctx, data); err != nil {
					c.Logger.Warn("reload rejected", "file", file, "err", err)
					return
				}
				c.Logger.Info("reloaded", "file", file)
			}),
			watch.WithOnError(func(err error) {
				c.Logger.Warn("watch error", "err", err)
			}),
		)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return w.Run(gctx)
		})
	}

	c.out.success("Editor running")
	c.out.keyValue("URL", StyleLink.Render(browserURL(addr)))
	if file != "" {
		c.out.keyValue("File", file)
		if watchFile {
			c.out.keyValue("Watching", "yes")
		}
	}
	c.out.line("")
	c.out.hint("Stop", "ctrl+c")

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// loadFile reads path and loads it into ed.
func loadFile(ctx context.Context, ed *editor.Editor, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return err
	}
	if _, err := ed.Load(ctx, data); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// browserURL turns a listen address into a URL a browser can open.
func browserURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	if strings.HasPrefix(addr, "0.0.0.0:") {
		return "http://localhost" + strings.TrimPrefix(addr, "0.0.0.0")
	}
	return "http://" + addr
}
