// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package querycache_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicdesk/internal/platform/querycache"
)

// counter returns a fetcher that yields 1, 2, 3... and the number of calls so far.
func counter() (querycache.Fetcher, func() int) {
	var mu sync.Mutex
	calls := 0
	fetch := func(context.Context) (any, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return calls, nil
	}
	return fetch, func() int {
		mu.Lock()
		defer mu.Unlock()
		return calls
	}
}

/*
TestCache_QueryCachesUntilRefresh verifies that reads are served from cache until a refresh.
*/
func TestCache_QueryCachesUntilRefresh(t *testing.T) {
	cache := querycache.New(querycache.Options{})
	key := querycache.Compose("organization", "detail", "org-123")
	fetch, calls := counter()

	value, err := cache.Query(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	value, _ = cache.Query(context.Background(), key, fetch)
	assert.Equal(t, 1, value)
	assert.Equal(t, 1, calls())

	// Lazy refresh: no subscribers, so the fetch happens on the next read.
	require.NoError(t, cache.Refresh(context.Background(), key))
	assert.Equal(t, 1, calls())

	value, _ = cache.Query(context.Background(), key, fetch)
	assert.Equal(t, 2, value)
}

/*
TestCache_RefreshNotifiesSubscribers verifies the eager refetch path.
*/
func TestCache_RefreshNotifiesSubscribers(t *testing.T) {
	cache := querycache.New(querycache.Options{})
	key := querycache.Key("event:detail:event-123")
	fetch, calls := counter()

	_, err := cache.Query(context.Background(), key, fetch)
	require.NoError(t, err)

	var received []any
	unsubscribe := cache.Subscribe(key, func(value any, err error) {
		received = append(received, value)
	})

	require.NoError(t, cache.Refresh(context.Background(), key))
	assert.Equal(t, 2, calls())
	assert.Equal(t, []any{2}, received)

	unsubscribe()
	require.NoError(t, cache.Refresh(context.Background(), key))
	assert.Equal(t, []any{2}, received)
}

/*
TestCache_RefreshUnknownKey verifies that refreshing a key nobody queried is a no-op.
*/
func TestCache_RefreshUnknownKey(t *testing.T) {
	cache := querycache.New(querycache.Options{})
	assert.NoError(t, cache.Refresh(context.Background(), "group:detail:nobody"))

	_, found := cache.Peek("group:detail:nobody")
	assert.False(t, found)
}

/*
TestCache_FetchErrorsPropagate verifies that eager refetch failures reach the caller and subscribers.
*/
func TestCache_FetchErrorsPropagate(t *testing.T) {
	cache := querycache.New(querycache.Options{})
	key := querycache.Key("group:images:group-123")
	failing := errors.New("backend down")
	fail := false

	_, err := cache.Query(context.Background(), key, func(context.Context) (any, error) {
		if fail {
			return nil, failing
		}
		return "ok", nil
	})
	require.NoError(t, err)

	var seen error
	cache.Subscribe(key, func(_ any, err error) { seen = err })

	fail = true
	err = cache.Refresh(context.Background(), key)
	assert.ErrorIs(t, err, failing)
	assert.ErrorIs(t, seen, failing)
}

/*
TestGet_Typed verifies the generic accessor and its type check.
*/
func TestGet_Typed(t *testing.T) {
	cache := querycache.New(querycache.Options{})

	names, err := querycache.Get(context.Background(), cache, "organization:list", func(context.Context) ([]string, error) {
		return []string{"Climate Now"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Climate Now"}, names)

	_, err = querycache.Get(context.Background(), cache, "organization:list", func(context.Context) (int, error) {
		return 0, nil
	})
	assert.Error(t, err)
}

// fakeBus records publishes and lets the test push remote keys.
type fakeBus struct {
	published []querycache.Key
	remote    chan querycache.Key
}

func (bus *fakeBus) Publish(_ context.Context, key querycache.Key) error {
	bus.published = append(bus.published, key)
	return nil
}

func (bus *fakeBus) Subscribe(ctx context.Context, handler func(querycache.Key)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case key := <-bus.remote:
			handler(key)
		}
	}
}

/*
TestCache_BusFanOut verifies publishing on refresh and applying remote refreshes in Listen.
*/
func TestCache_BusFanOut(t *testing.T) {
	bus := &fakeBus{remote: make(chan querycache.Key)}
	cache := querycache.New(querycache.Options{Bus: bus})
	key := querycache.Key("organization:detail:org-123")
	fetch, calls := counter()

	_, err := cache.Query(context.Background(), key, fetch)
	require.NoError(t, err)

	refreshed := make(chan any, 1)
	cache.Subscribe(key, func(value any, _ error) { refreshed <- value })

	require.NoError(t, cache.Refresh(context.Background(), key))
	assert.Equal(t, []querycache.Key{key}, bus.published)
	assert.Equal(t, 2, <-refreshed)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = cache.Listen(ctx)
		close(done)
	}()

	bus.remote <- key
	assert.Equal(t, 3, <-refreshed)
	assert.Equal(t, 3, calls())

	// Remote refreshes are applied locally only, never re-published.
	assert.Len(t, bus.published, 1)

	cancel()
	<-done
}
