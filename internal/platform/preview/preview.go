// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package preview hands out temporary URLs for staged local files.

Every URL created must be released exactly once: when the file is removed,
after it was uploaded, or when its owner is closed. [Registry.Count] lets
owners and tests assert that nothing leaked.
*/
package preview

import (
	"strings"
	"sync"

	"github.com/taibuivan/civicdesk/pkg/uuid"
)

// Scheme prefixes every preview URL.
const Scheme = "preview:"

// Registry tracks live preview URLs. The zero value is not usable; call [NewRegistry].
type Registry struct {
	mu   sync.Mutex
	live map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{live: make(map[string]struct{})}
}

// Create registers a preview for the file called name and returns its URL ("preview:<uuid>/<name>").
func (registry *Registry) Create(name string) string {
	url := Scheme + uuid.New() + "/" + name

	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.live[url] = struct{}{}
	return url
}

// Revoke releases url. It reports false for unknown or already released URLs.
func (registry *Registry) Revoke(url string) bool {
	if !strings.HasPrefix(url, Scheme) {
		return false
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, found := registry.live[url]; !found {
		return false
	}
	delete(registry.live, url)
	return true
}

// Count is the number of URLs created and not yet revoked.
func (registry *Registry) Count() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	return len(registry.live)
}
