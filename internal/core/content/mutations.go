// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/platform/apperr"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
)

// # Bindings

// Binding ties the mutation sets of one entity kind to its cache keys.
type Binding struct {
	Kind entity.Kind

	// DetailKey is the query holding the entity and its FAQ, resources, links and texts.
	DetailKey querycache.KeyFunc

	// ImagesKey is the gallery query. Nil for kinds without a gallery.
	ImagesKey querycache.KeyFunc

	// EntityDataKeys are refreshed by RefreshEntityData. Defaults to DetailKey.
	EntityDataKeys []querycache.KeyFunc
}

func (binding Binding) detail() []querycache.KeyFunc {
	return []querycache.KeyFunc{binding.DetailKey}
}

func (binding Binding) images() []querycache.KeyFunc {
	if binding.ImagesKey == nil {
		return nil
	}
	return []querycache.KeyFunc{binding.ImagesKey}
}

func (binding Binding) entityData() []querycache.KeyFunc {
	if len(binding.EntityDataKeys) > 0 {
		return binding.EntityDataKeys
	}
	return binding.detail()
}

// operation names an operation for logs and metrics ("group.create_faq").
func (binding Binding) operation(action string) string {
	return binding.Kind.String() + "." + action
}

// # Preconditions

func requireChildID(field, id string) func() error {
	return func() error {
		if id == "" {
			return apperr.Precondition(field + " is required")
		}
		return nil
	}
}

func requireItems(field string, count int) func() error {
	return func() error {
		if count == 0 {
			return apperr.Precondition(field + " must not be empty")
		}
		return nil
	}
}
