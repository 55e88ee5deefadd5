// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package querycache is the keyed query store behind every read in the client layer.

Queries are registered under a [Key] together with the function that fetches them.
Mutation sets never touch cached values directly: after a successful write they call
[Cache.Refresh] with the keys derived from the owning entity id, and every subscriber
of those keys receives the refetched value.

Architecture:

  - Keys: pure functions of an entity id ([KeyFunc]), built by each entity package.
  - Laziness: a refreshed key without subscribers is only marked stale and refetched on next read.
  - Fan-out: with a [Bus] attached, refreshes are broadcast so other processes sharing
    the key space refetch as well.
*/
package querycache

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// # Keys

// Key identifies one cached query result.
type Key string

// KeyFunc derives a [Key] from an entity id.
type KeyFunc func(id string) Key

// Compose joins key segments with ":" (e.g. "organization:images:org-123").
func Compose(segments ...string) Key {
	return Key(strings.Join(segments, ":"))
}

// # Contracts

// Refresher is the only capability mutation sets need from the cache.
type Refresher interface {
	Refresh(context stdctx.Context, key Key) error
}

// Fetcher loads the current value of a query.
type Fetcher func(context stdctx.Context) (any, error)

// Observer receives one event per local refresh (metrics).
type Observer interface {
	ObserveRefresh(key Key, err error)
}

// Bus broadcasts refreshed keys between processes.
type Bus interface {
	Publish(context stdctx.Context, key Key) error
	// Subscribe blocks, calling handler for keys published by other processes, until context ends.
	Subscribe(context stdctx.Context, handler func(Key)) error
}

// # Cache

// Options configures a [Cache].
type Options struct {
	// TTL marks values stale after this duration. Zero keeps values until refreshed.
	TTL      time.Duration
	Bus      Bus
	Observer Observer
	Logger   *slog.Logger
}

// Cache stores query results by key. It is safe for concurrent use.
type Cache struct {
	mu          sync.Mutex
	entries     map[Key]*entry
	nextHandle  int
	ttl         time.Duration
	bus         Bus
	observer    Observer
	logger      *slog.Logger
	currentTime func() time.Time
}

type entry struct {
	fetch       Fetcher
	value       any
	err         error
	loaded      bool
	stale       bool
	fetchedAt   time.Time
	generation  uint64
	subscribers map[int]func(any, error)
}

// New constructs an empty [Cache].
func New(options Options) *Cache {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		entries:     make(map[Key]*entry),
		ttl:         options.TTL,
		bus:         options.Bus,
		observer:    options.Observer,
		logger:      logger,
		currentTime: time.Now,
	}
}

/*
Query returns the cached value for key, fetching it when missing or stale.

Description: the first call registers fetch as the key's fetcher; later refreshes reuse it.
Fetch errors are returned and cached so subscribers see them too.

Parameters:
  - context: context.Context
  - key: Key
  - fetch: Fetcher

Returns:
  - any: Cached or freshly fetched value
  - error: Fetch failure
*/
func (cache *Cache) Query(context stdctx.Context, key Key, fetch Fetcher) (any, error) {
	cache.mu.Lock()
	item, found := cache.entries[key]
	if !found {
		item = &entry{fetch: fetch, subscribers: make(map[int]func(any, error))}
		cache.entries[key] = item
	}
	if item.fetch == nil {
		item.fetch = fetch
	}
	if item.loaded && !item.stale && !cache.expired(item) {
		value, err := item.value, item.err
		cache.mu.Unlock()
		return value, err
	}
	cache.mu.Unlock()

	return cache.load(context, key)
}

// Get is the typed form of [Cache.Query].
func Get[T any](context stdctx.Context, cache *Cache, key Key, fetch func(stdctx.Context) (T, error)) (T, error) {
	value, err := cache.Query(context, key, func(context stdctx.Context) (any, error) {
		return fetch(context)
	})

	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("querycache: key %s holds %T", key, value)
	}
	return typed, nil
}

// Peek returns the cached value without fetching.
func (cache *Cache) Peek(key Key) (any, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	item, found := cache.entries[key]
	if !found || !item.loaded {
		return nil, false
	}
	return item.value, true
}

// Subscribe registers fn for every value (or error) produced by a refresh of key.
// The returned function removes the subscription.
func (cache *Cache) Subscribe(key Key, fn func(value any, err error)) (unsubscribe func()) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	item, found := cache.entries[key]
	if !found {
		item = &entry{subscribers: make(map[int]func(any, error))}
		cache.entries[key] = item
	}

	cache.nextHandle++
	handle := cache.nextHandle
	item.subscribers[handle] = fn

	return func() {
		cache.mu.Lock()
		defer cache.mu.Unlock()
		delete(item.subscribers, handle)
	}
}

/*
Refresh forces subscribers of key to refetch and broadcasts the key on the bus.

Description: unknown keys are a no-op. Keys without subscribers are marked stale and
refetched on their next read. Refresh is idempotent.

Parameters:
  - context: context.Context
  - key: Key

Returns:
  - error: Fetch failure of an eager refetch, or bus publish failure
*/
func (cache *Cache) Refresh(context stdctx.Context, key Key) error {
	err := cache.refreshLocal(context, key)

	if cache.bus != nil {
		if publishErr := cache.bus.Publish(context, key); publishErr != nil {
			cache.logger.WarnContext(context, "cache_refresh_publish_failed",
				slog.String("key", string(key)),
				slog.Any("error", publishErr),
			)
			if err == nil {
				err = publishErr
			}
		}
	}

	return err
}

// Listen applies refreshes broadcast by other processes until context ends.
func (cache *Cache) Listen(context stdctx.Context) error {
	if cache.bus == nil {
		<-context.Done()
		return nil
	}

	return cache.bus.Subscribe(context, func(key Key) {
		if err := cache.refreshLocal(context, key); err != nil {
			cache.logger.WarnContext(context, "cache_remote_refresh_failed",
				slog.String("key", string(key)),
				slog.Any("error", err),
			)
		}
	})
}

// # Internals

func (cache *Cache) refreshLocal(context stdctx.Context, key Key) error {
	cache.mu.Lock()
	item, found := cache.entries[key]
	if !found {
		cache.mu.Unlock()
		return nil
	}

	item.stale = true
	eager := len(item.subscribers) > 0 && item.fetch != nil
	cache.mu.Unlock()

	if !eager {
		cache.observe(key, nil)
		return nil
	}

	_, err := cache.load(context, key)
	return err
}

func (cache *Cache) load(context stdctx.Context, key Key) (any, error) {
	cache.mu.Lock()
	item := cache.entries[key]
	item.generation++
	generation := item.generation
	fetch := item.fetch
	cache.mu.Unlock()

	value, err := fetch(context)

	cache.mu.Lock()
	if item.generation != generation {
		// A newer load has started; its result wins.
		cache.mu.Unlock()
		return value, err
	}
	item.value, item.err = value, err
	item.loaded = true
	item.stale = err != nil
	item.fetchedAt = cache.currentTime()

	subscribers := make([]func(any, error), 0, len(item.subscribers))
	for _, subscriber := range item.subscribers {
		subscribers = append(subscribers, subscriber)
	}
	cache.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber(value, err)
	}

	cache.observe(key, err)
	cache.logger.DebugContext(context, "cache_refreshed",
		slog.String("key", string(key)),
		slog.Int("subscribers", len(subscribers)),
		slog.Bool("ok", err == nil),
	)

	return value, err
}

func (cache *Cache) expired(item *entry) bool {
	return cache.ttl > 0 && cache.currentTime().Sub(item.fetchedAt) > cache.ttl
}

func (cache *Cache) observe(key Key, err error) {
	if cache.observer != nil {
		cache.observer.ObserveRefresh(key, err)
	}
}
