// Package config loads arbor's TOML configuration.
//
// The default location is $XDG_CONFIG_HOME/arbor/config.toml (or
// ~/.config/arbor/config.toml). A missing default file is not an error:
// every field has a default, and a file only needs the keys it overrides.
//
//	[server]
//	addr = ":8080"
//
//	[editor]
//	root_name = "Root"
//	export_filename = "tree-structure.json"
//
//	[render]
//	mode = "tree"     # tree | radial
//	format = "svg"    # svg | png | pdf | dot
//
//	[cache]
//	backend = "file"  # none | file | redis
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//
//	[watch]
//	debounce = "300ms"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/render"
)

const appName = "arbor"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the full configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Editor EditorConfig `toml:"editor"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Watch  WatchConfig  `toml:"watch"`
}

// ServerConfig configures the HTTP editor.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// EditorConfig configures the tree editor.
type EditorConfig struct {
	RootName       string `toml:"root_name"`
	ExportFilename string `toml:"export_filename"`
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	Mode   string `toml:"mode"`
	Format string `toml:"format"`
}

// CacheConfig selects and configures the render cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"` // empty means the XDG cache dir
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
}

// WatchConfig configures file watching.
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration that reads and writes as a Go duration string.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Editor: EditorConfig{RootName: "Root", ExportFilename: "tree-structure.json"},
		Render: RenderConfig{Mode: string(render.ModeTree), Format: string(render.FormatSVG)},
		Cache: CacheConfig{
			Backend:   BackendFile,
			TTL:       Duration{24 * time.Hour},
			RedisAddr: "localhost:6379",
		},
		Watch: WatchConfig{Debounce: Duration{300 * time.Millisecond}},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config at path over the defaults and validates the result.
// An empty path loads the default location, where a missing file is fine.
// An explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
			}
			return Default(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if _, err := render.ParseMode(c.Render.Mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.mode")
	}
	if _, err := render.ParseFormat(c.Render.Format); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.format")
	}
	switch c.Cache.Backend {
	case BackendNone, BackendFile, BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend: unknown backend %q (want none, file or redis)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Watch.Debounce.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "watch.debounce must not be negative")
	}
	if err := errors.ValidateExportFilename(c.Editor.ExportFilename); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "editor.export_filename")
	}
	if strings.TrimSpace(c.Editor.RootName) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "editor.root_name cannot be blank")
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	return nil
}

// Write saves the configuration as TOML.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}
