package render

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Cached wraps a Renderer with a cache. Entries are keyed on the tree
// including node IDs, because IDs end up in the diagram as element IDs.
// Cache failures are logged and fall through to the inner renderer.
type Cached struct {
	inner  Renderer
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
}

// CachedOption configures a Cached renderer.
type CachedOption func(*Cached)

// WithKeyer sets the key builder. The default is cache.NewDefaultKeyer().
func WithKeyer(k cache.Keyer) CachedOption {
	return func(c *Cached) {
		if k != nil {
			c.keyer = k
		}
	}
}

// WithTTL sets the entry lifetime. Zero means entries never expire.
func WithTTL(ttl time.Duration) CachedOption {
	return func(c *Cached) { c.ttl = ttl }
}

// WithLogger sets the logger for cache failures.
func WithLogger(l *log.Logger) CachedOption {
	return func(c *Cached) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCached wraps inner with c. A nil cache disables caching.
func NewCached(inner Renderer, c cache.Cache, opts ...CachedOption) *Cached {
	if c == nil {
		c = cache.NewNullCache()
	}
	r := &Cached{
		inner:  inner,
		cache:  c,
		keyer:  cache.NewDefaultKeyer(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns a cached result when one exists and renders otherwise.
func (c *Cached) Render(ctx context.Context, root *tree.Node, opts Options) (*Result, error) {
	if root == nil {
		return c.inner.Render(ctx, root, opts)
	}
	opts = opts.Normalize()

	key, keyType, err := c.key(root, opts)
	if err != nil {
		return nil, err
	}

	data, hit, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", "err", err)
	}
	if hit {
		var res Result
		if err := json.Unmarshal(data, &res); err == nil {
			observability.Cache().OnCacheHit(ctx, keyType)
			return &res, nil
		}
		c.logger.Warn("dropping corrupt cache entry", "key", key)
		_ = c.cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, keyType)

	res, err := c.inner.Render(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyType, len(data))
		}
	}
	return res, nil
}

// key returns the cache key and its key type. DOT output is the layout
// itself and is keyed as a layout; drawn formats are artifacts.
func (c *Cached) key(root *tree.Node, opts Options) (string, string, error) {
	view, err := json.Marshal(graph.ViewOf(root))
	if err != nil {
		return "", "", err
	}
	h := cache.Hash(view)
	if opts.Format == FormatDOT {
		return c.keyer.LayoutKey(h, cache.LayoutKeyOpts{
			Mode:     string(opts.Mode),
			Selected: opts.Selected,
		}), cache.KeyTypeLayout, nil
	}
	return c.keyer.ArtifactKey(h, cache.ArtifactKeyOpts{
		Mode:     string(opts.Mode),
		Format:   string(opts.Format),
		Selected: opts.Selected,
	}), cache.KeyTypeArtifact, nil
}

var _ Renderer = (*Cached)(nil)
