// Package cache holds the single most recent "list all" result so repeated
// recent-memory views do not hit the network.
package cache

import (
	"sync"
	"time"

	"github.com/papercomputeco/cogniz/pkg/memory"
)

const (
	// DefaultTTL is how long an entry is served.
	DefaultTTL = 10 * time.Second

	// Wildcard is the query meaning "every memory in the project".
	Wildcard = "*"
)

// Generation orders cache writers. A writer reserves one before its request
// and presents it when storing the result.
type Generation uint64

// Entry is the cached listing.
type Entry struct {
	Items     []memory.Record
	Timestamp time.Time
	ProjectID string
	Query     string

	generation Generation
}

// Cache is a single-slot store. Entries are only accepted from writers whose
// generation is newer than both the current entry and the last invalidation.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu          sync.Mutex
	entry       *Entry
	next        Generation
	invalidated Generation
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New returns an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL is the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Reserve hands out a generation newer than every one issued before.
func (c *Cache) Reserve() Generation {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.next++
	return c.next
}

// Put stores items for projectID and query. It reports false, and keeps the
// current entry, when gen is older than the stored entry or than the last
// Invalidate.
func (c *Cache) Put(gen Generation, projectID, query string, items []memory.Record) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen <= c.invalidated {
		return false
	}
	if c.entry != nil && gen <= c.entry.generation {
		return false
	}

	c.entry = &Entry{
		Items:      append([]memory.Record(nil), items...),
		Timestamp:  c.now(),
		ProjectID:  projectID,
		Query:      query,
		generation: gen,
	}
	return true
}

// Lookup returns up to limit cached items for projectID when the entry is
// non-empty, younger than the TTL, for the same project, and was stored for
// the wildcard (or an empty) query. limit <= 0 returns every item.
func (c *Cache) Lookup(projectID string, limit int) ([]memory.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entry
	if e == nil || len(e.Items) == 0 {
		return nil, false
	}
	if c.now().Sub(e.Timestamp) >= c.ttl {
		return nil, false
	}
	if e.ProjectID != projectID {
		return nil, false
	}
	if e.Query != "" && e.Query != Wildcard {
		return nil, false
	}

	items := e.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return append([]memory.Record(nil), items...), true
}

// Invalidate drops the entry and rejects every generation reserved so far.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = nil
	c.invalidated = c.next
}

// Snapshot returns a copy of the current entry, or nil.
func (c *Cache) Snapshot() *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil {
		return nil
	}
	e := *c.entry
	e.Items = append([]memory.Record(nil), c.entry.Items...)
	return &e
}
