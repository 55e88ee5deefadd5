// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mutation

import "sync"

// Ref holds the id of the entity a mutation set operates on.
//
// The id may change over the lifetime of the set (e.g. the user navigates to
// another organization); every operation reads it when it starts. An empty id
// means no entity is selected.
type Ref struct {
	mu sync.RWMutex
	id string
}

// NewRef returns a [Ref] holding id.
func NewRef(id string) *Ref {
	return &Ref{id: id}
}

// ID returns the current entity id.
func (ref *Ref) ID() string {
	if ref == nil {
		return ""
	}
	ref.mu.RLock()
	defer ref.mu.RUnlock()
	return ref.id
}

// Set replaces the entity id.
func (ref *Ref) Set(id string) {
	ref.mu.Lock()
	defer ref.mu.Unlock()
	ref.id = id
}
