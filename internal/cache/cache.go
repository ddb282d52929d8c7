package cache

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache is a keyed read-through cache for list/detail queries. A key is the
// resource name plus the ordered parameter tuple of the read; structurally
// equal tuples share one in-flight fetch and one cached result. Entries
// never expire on their own — a key is refreshed only when a mutation
// invalidates its resource or the caller's parameter tuple changes.
type Cache struct {
	mu    sync.Mutex
	store *gocache.Cache
	group singleflight.Group

	// tag index: resource -> keys seen under it, so invalidation deletes
	// exactly those keys instead of sweeping the whole store
	keys map[string]map[string]struct{}

	// per-key generation, bumped on invalidation; a fetch that began
	// before the bump must not install its result afterwards
	gens map[string]uint64

	log *zap.Logger
}

type entry struct {
	data      any
	fetchedAt time.Time
}

func New(log *zap.Logger) *Cache {
	return &Cache{
		store: gocache.New(gocache.NoExpiration, 0),
		keys:  make(map[string]map[string]struct{}),
		gens:  make(map[string]uint64),
		log:   log,
	}
}

// Key renders the resource and parameter tuple canonically. Parameters are
// escaped so a separator inside a free-text value cannot collide with
// another tuple.
func Key(resource string, params ...string) string {
	if len(params) == 0 {
		return resource
	}
	esc := make([]string, len(params))
	for i, p := range params {
		esc[i] = url.QueryEscape(p)
	}
	return resource + "|" + strings.Join(esc, "|")
}

// Get returns the cached value for the tuple, or runs fetch through a
// single flight shared by all concurrent structurally-equal reads. Errors
// are surfaced to every waiter and never cached.
func (c *Cache) Get(ctx context.Context, resource string, params []string, fetch func(ctx context.Context) (any, error)) (any, error) {
	key := Key(resource, params...)

	c.mu.Lock()
	if e, ok := c.store.Get(key); ok {
		c.mu.Unlock()
		return e.(*entry).data, nil
	}
	c.index(resource, key)
	gen := c.gens[key]
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.commit(key, gen, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate drops every key recorded under the given resources, forcing
// the next read of each to refetch. Keys under other resources are
// untouched. Callers invoke this only after a mutation's success response.
func (c *Cache) Invalidate(resources ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, res := range resources {
		n := len(c.keys[res])
		for key := range c.keys[res] {
			c.store.Delete(key)
			c.gens[key]++
			c.group.Forget(key)
		}
		delete(c.keys, res)
		c.log.Debug("cache: invalidated", zap.String("resource", res), zap.Int("keys", n))
	}
}

// Contains reports whether the tuple currently holds a committed value.
func (c *Cache) Contains(resource string, params ...string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store.Get(Key(resource, params...))
	return ok
}

// index must be called with c.mu held.
func (c *Cache) index(resource, key string) {
	set, ok := c.keys[resource]
	if !ok {
		set = make(map[string]struct{})
		c.keys[resource] = set
	}
	set[key] = struct{}{}
}

// commit installs a fetch result unless the key was invalidated after the
// fetch began, in which case the late result is discarded and the next
// read refetches.
func (c *Cache) commit(key string, gen uint64, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gens[key] != gen {
		c.log.Debug("cache: discarding stale result", zap.String("key", key))
		return
	}
	c.store.Set(key, &entry{data: data, fetchedAt: time.Now()}, gocache.NoExpiration)
}
