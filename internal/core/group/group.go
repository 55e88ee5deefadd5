// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package group binds the shared content mutation sets to community groups.

# Core Responsibility

  - Keys: The detail and gallery queries of a group.
  - Mutation sets: FAQ, resources, social links, texts and images, refreshing those keys.

Group gallery writes refresh the images query, and so does RefreshEntityData on
the image set; the other sets refresh the detail query.
*/
package group

import (
	"github.com/taibuivan/civicdesk/internal/core/content"
	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/platform/constants"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
)

// # Query Keys

// DetailKey identifies the group detail query.
func DetailKey(groupID string) querycache.Key {
	return querycache.Compose(constants.CachePrefixGroup, constants.CacheScopeDetail, groupID)
}

// ImagesKey identifies the group gallery query.
func ImagesKey(groupID string) querycache.Key {
	return querycache.Compose(constants.CachePrefixGroup, constants.CacheScopeImages, groupID)
}

// # Bindings

func binding() content.Binding {
	return content.Binding{
		Kind:      entity.Group,
		DetailKey: DetailKey,
		ImagesKey: ImagesKey,
	}
}

func imageBinding() content.Binding {
	images := binding()
	images.EntityDataKeys = []querycache.KeyFunc{ImagesKey}
	return images
}
