package pubstatic

import (
	"context"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
)

// SiteCache is an in-memory cache of the last successfully built Site with
// TTL. A failed rebuild keeps serving the previous site.
type SiteCache struct {
	mu      sync.RWMutex
	site    *Site
	fetched time.Time
	stale   bool
	ttl     time.Duration
	builder *Builder
	logger  *log.Logger
}

// NewSiteCache creates a SiteCache backed by the given Builder.
func NewSiteCache(b *Builder, ttl time.Duration) *SiteCache {
	return &SiteCache{builder: b, ttl: ttl, logger: b.logger}
}

func (c *SiteCache) valid() bool {
	return c.site != nil && !c.stale && time.Since(c.fetched) < c.ttl
}

// Invalidate marks the cache stale so the next read triggers a rebuild. The
// current site stays available until the rebuild succeeds.
func (c *SiteCache) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

func (c *SiteCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	site, err := c.builder.Build(ctx)
	if err != nil {
		if c.site == nil {
			return err
		}
		c.logger.Errorf("rebuild failed, serving previous site: %v", err)
	} else {
		c.site = site
	}
	c.fetched = time.Now()
	c.stale = false
	return nil
}

// Site returns the cached site after ensuring it is fresh. It tries a read
// lock first; only takes a write lock if a rebuild is needed.
func (c *SiteCache) Site(ctx context.Context) (*Site, error) {
	c.mu.RLock()
	if c.valid() {
		site := c.site
		c.mu.RUnlock()
		return site, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c.site, nil
}
