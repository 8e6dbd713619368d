package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, path string, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(path, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return w
}

func TestWatcherDeliversWholeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.json")
	if err := os.WriteFile(path, []byte(`{"name":"Root"}`), 0644); err != nil {
		t.Fatal(err)
	}

	got := make(chan []byte, 4)
	startWatcher(t, path,
		WithDebounce(50*time.Millisecond),
		WithOnChange(func(data []byte) { got <- data }),
	)

	// Several writes inside the debounce window collapse into one delivery
	// with the final contents.
	for _, body := range []string{`{"name":"A"`, `{"name":"AB"`, `{"name":"ABC"}`} {
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case data := <-got:
		if string(data) != `{"name":"ABC"}` {
			t.Errorf("onChange got %q", data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change delivered")
	}

	select {
	case data := <-got:
		t.Errorf("unexpected second delivery %q", data)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	got := make(chan []byte, 1)
	startWatcher(t, path,
		WithDebounce(10*time.Millisecond),
		WithOnChange(func(data []byte) { got <- data }),
	)

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case data := <-got:
		t.Errorf("change to another file delivered %q", data)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.json")
	if err := os.WriteFile(path, []byte(`{"name":"old"}`), 0644); err != nil {
		t.Fatal(err)
	}

	got := make(chan []byte, 4)
	startWatcher(t, path,
		WithDebounce(20*time.Millisecond),
		WithOnChange(func(data []byte) { got <- data }),
	)

	tmp := filepath.Join(dir, ".tree.json.tmp")
	if err := os.WriteFile(tmp, []byte(`{"name":"new"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	select {
	case data := <-got:
		if string(data) != `{"name":"new"}` {
			t.Errorf("onChange got %q", data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("rename-over save not delivered")
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "tree.json"))
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "tree.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}
