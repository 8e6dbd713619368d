package cli

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/var/cache/alice")
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join("/var/cache/alice", "arbor"); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", "")
		t.Setenv("HOME", home)
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(home, ".cache", "arbor"); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestCacheDirFor(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/var/cache/alice")

	tests := []struct {
		name string
		dir  string // cache.dir from the config file
		want string
	}{
		{"default", "", filepath.Join("/var/cache/alice", "arbor")},
		{"configured", "/srv/arbor/renders", "/srv/arbor/renders"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.cfg.Cache.Dir = tt.dir
			got, err := c.cacheDirFor()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("cacheDirFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheDirForLoadedConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	cacheDir := filepath.Join(dir, "renders")
	writeFile(t, cfgPath, "[cache]\ndir = "+quoteTOML(cacheDir)+"\n")

	c := New(io.Discard, LogInfo)
	c.configPath = cfgPath
	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	got, err := c.cacheDirFor()
	if err != nil {
		t.Fatal(err)
	}
	if got != cacheDir {
		t.Errorf("cacheDirFor() = %q, want %q", got, cacheDir)
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func quoteTOML(s string) string { return strconv.Quote(s) }
