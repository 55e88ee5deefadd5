// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package mutationtest provides recording fakes for mutation set tests.
package mutationtest

import (
	stdctx "context"
	"sync"

	"github.com/taibuivan/civicdesk/internal/mutation"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
	"github.com/taibuivan/civicdesk/internal/platform/toast"
)

// Cache records every refreshed key.
type Cache struct {
	mu   sync.Mutex
	keys []querycache.Key
	// Err is returned by every Refresh when set.
	Err error
}

func (cache *Cache) Refresh(_ stdctx.Context, key querycache.Key) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.keys = append(cache.keys, key)
	return cache.Err
}

// Keys returns the refreshed keys in call order.
func (cache *Cache) Keys() []querycache.Key {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return append([]querycache.Key(nil), cache.keys...)
}

// Harness bundles the fakes wired into [mutation.Dependencies].
type Harness struct {
	Cache  *Cache
	Toasts *toast.Recorder
	Ref    *mutation.Ref
	Deps   mutation.Dependencies
}

// New returns a harness whose ref holds entityID.
func New(entityID string) *Harness {
	harness := &Harness{
		Cache:  &Cache{},
		Toasts: &toast.Recorder{},
		Ref:    mutation.NewRef(entityID),
	}
	harness.Deps = mutation.Dependencies{Cache: harness.Cache, Notifier: harness.Toasts}
	return harness
}
