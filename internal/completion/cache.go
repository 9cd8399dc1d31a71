package completion

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Cache stores completion responses as YAML files keyed by a hash of the
// model and prompts. Read and write failures are logged and ignored.
type Cache struct {
	dir   string
	model string
	log   *slog.Logger
}

type cacheEntry struct {
	Model     string    `yaml:"model"`
	System    string    `yaml:"system"`
	Prompt    string    `yaml:"prompt"`
	Response  string    `yaml:"response"`
	CreatedAt time.Time `yaml:"created_at"`
}

// NewCache creates dir if needed.
func NewCache(dir, model string, log *slog.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Cache{dir: dir, model: model, log: log.With("component", "completion_cache")}, nil
}

func (c *Cache) path(req Request) string {
	sum := sha1.Sum([]byte(c.model + "\x00" + req.System + "\x00" + req.Prompt))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".yaml")
}

// Lookup returns a cached response for req.
func (c *Cache) Lookup(req Request) (string, bool) {
	path := c.path(req)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Warn("read cache entry", slog.String("path", path), slog.String("error", err.Error()))
		}
		return "", false
	}

	var e cacheEntry
	if err := yaml.Unmarshal(data, &e); err != nil {
		c.log.Warn("decode cache entry", slog.String("path", path), slog.String("error", err.Error()))
		return "", false
	}
	if e.Response == "" || e.Prompt != req.Prompt || e.System != req.System {
		return "", false
	}
	return e.Response, true
}

// Add stores response for req.
func (c *Cache) Add(req Request, response string) {
	data, err := yaml.Marshal(cacheEntry{
		Model:     c.model,
		System:    req.System,
		Prompt:    req.Prompt,
		Response:  response,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		c.log.Warn("encode cache entry", slog.String("error", err.Error()))
		return
	}
	path := c.path(req)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.log.Warn("write cache entry", slog.String("path", path), slog.String("error", err.Error()))
	}
}

type cachedCompleter struct {
	next  Completer
	cache *Cache
}

// NewCachedCompleter serves repeated requests from cache and only calls
// next on a miss. Failed calls are not cached.
func NewCachedCompleter(next Completer, cache *Cache) Completer {
	return &cachedCompleter{next: next, cache: cache}
}

func (c *cachedCompleter) Complete(ctx context.Context, req Request) (string, error) {
	if resp, ok := c.cache.Lookup(req); ok {
		return resp, nil
	}
	resp, err := c.next.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	c.cache.Add(req, resp)
	return resp, nil
}
