package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/config"
)

const smallTree = `{"name":"Root","children":[{"name":"a","children":[]},{"name":"b","children":[]}]}`

// newTestCLI returns a CLI whose log and result streams are captured.
func newTestCLI() (c *CLI, logs, out *bytes.Buffer) {
	logs, out = &bytes.Buffer{}, &bytes.Buffer{}
	c = New(logs, LogInfo)
	c.out = newPrinter(out)
	return c, logs, out
}

func TestRenderCancelled(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tree.json")
	writeFile(t, input, smallTree)

	c, logs, out := newTestCLI()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.runRender(ctx, input, renderOpts{format: "dot", noCache: true})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("runRender() = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tree.dot")); !os.IsNotExist(err) {
		t.Error("cancelled render wrote an output file")
	}
	if out.Len() != 0 {
		t.Errorf("cancelled render printed %q", out.String())
	}
	if !strings.Contains(logs.String(), "Rendering tree diagram...") {
		t.Errorf("spinner line missing from %q", logs.String())
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	keys := []string{"0.1.0:layout:abc", "0.1.0:artifact:abc"}
	for _, k := range keys {
		if err := fc.Set(ctx, k, []byte("<svg/>"), 0); err != nil {
			t.Fatal(err)
		}
	}
	notes := filepath.Join(dir, "notes.txt")
	writeFile(t, notes, "keep me")

	c, _, out := newTestCLI()
	c.cfg.Cache.Backend = config.BackendFile
	c.cfg.Cache.Dir = dir

	cmd := c.cacheClearCommand()
	cmd.SetContext(ctx)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	for _, k := range keys {
		if _, ok, _ := fc.Get(ctx, k); ok {
			t.Errorf("%s survived cache clear", k)
		}
	}
	if _, err := os.Stat(notes); err != nil {
		t.Errorf("cache clear removed an unrelated file: %v", err)
	}
	for _, want := range []string{"Cleared render cache", dir} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output %q missing %q", out.String(), want)
		}
	}
}

func TestCacheClearRedisBackend(t *testing.T) {
	c, _, out := newTestCLI()
	c.cfg.Cache.Backend = config.BackendRedis

	cmd := c.cacheClearCommand()
	cmd.SetContext(context.Background())
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "nothing to clear locally") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSpinnerStop(t *testing.T) {
	c, logs, out := newTestCLI()
	s := c.newSpinner(context.Background(), "Clearing render cache...")
	s.Start()
	if s.Cancelled() {
		t.Fatal("Cancelled() before Stop")
	}

	s.StopWithSuccess("Cleared render cache")
	s.Stop()

	if !s.Cancelled() {
		t.Error("Cancelled() = false after Stop")
	}
	if got := strings.Count(out.String(), "\n"); got != 1 {
		t.Errorf("printed %d lines, want 1: %q", got, out.String())
	}
	if !strings.HasSuffix(logs.String(), "\r") {
		t.Errorf("spinner line not cleared: %q", logs.String())
	}
}

func TestSpinnerParentCancel(t *testing.T) {
	c, _, _ := newTestCLI()
	ctx, cancel := context.WithCancel(context.Background())
	s := c.newSpinner(ctx, "Rendering radial diagram...")
	s.Start()

	cancel()
	<-s.stopped
	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent cancel")
	}
	s.Stop()
}
