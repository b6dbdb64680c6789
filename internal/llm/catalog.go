package llm

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// DefaultCacheTTL is how long a cached model listing stays fresh.
const DefaultCacheTTL = 5 * time.Minute

// Catalog serves the provider's model list through a small on-disk TTL
// cache. The listing is idempotently derived from the provider, so
// concurrent refreshes are merely redundant work: read-then-write,
// last-writer-wins.
type Catalog struct {
	client Client
	path   string
	ttl    time.Duration
	now    func() time.Time
}

// NewCatalog creates a catalog caching into dir/models.json.
func NewCatalog(client Client, dir string, ttl time.Duration) *Catalog {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	return &Catalog{
		client: client,
		path:   filepath.Join(dir, "models.json"),
		ttl:    ttl,
		now:    time.Now,
	}
}

type cacheFile struct {
	Timestamp int64       `json:"timestamp"`
	Models    []ModelInfo `json:"models"`
}

// Models returns the available models, from cache when fresh, otherwise from
// the provider (refreshing the cache on success).
func (c *Catalog) Models(ctx context.Context) ([]ModelInfo, error) {
	if models, ok := c.readCache(); ok {
		return models, nil
	}

	models, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	c.writeCache(models)
	return models, nil
}

func (c *Catalog) readCache() ([]ModelInfo, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, false
	}

	var cached cacheFile
	if err := json.Unmarshal(data, &cached); err != nil {
		// A corrupt cache file is treated as a miss and overwritten on the
		// next successful refresh.
		return nil, false
	}
	if c.now().Unix()-cached.Timestamp >= int64(c.ttl.Seconds()) {
		return nil, false
	}
	return cached.Models, true
}

func (c *Catalog) writeCache(models []ModelInfo) {
	data, err := json.Marshal(cacheFile{Timestamp: c.now().Unix(), Models: models})
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return
	}
	// Best effort: a failed cache write only costs the next caller a refresh.
	_ = os.WriteFile(c.path, data, 0o644)
}
