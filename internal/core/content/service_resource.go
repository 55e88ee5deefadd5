// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	stdctx "context"

	"github.com/taibuivan/civicdesk/pkg/slice"
)

// # Resources

// CreateResource adds a resource to the entity.
func (service *Service) CreateResource(context stdctx.Context, entityID string, input ResourceInput) error {
	body, err := service.owned(entityID, input)
	if err != nil {
		return err
	}
	if err := service.client.Post(context, service.kind.CollectionPath(ResourceResources), body, nil); err != nil {
		return service.wrap("create resource", err)
	}
	return nil
}

// UpdateResource replaces an existing resource.
func (service *Service) UpdateResource(context stdctx.Context, entityID string, resource Resource) error {
	if err := requireIDs(map[string]string{"resource_id": resource.ID}); err != nil {
		return err
	}

	body, err := service.owned(entityID, resource)
	if err != nil {
		return err
	}
	if err := service.client.Put(context, service.kind.ItemPath(ResourceResources, resource.ID), body, nil); err != nil {
		return service.wrap("update resource", err)
	}
	return nil
}

// ReorderResources persists the order of the given resources.
func (service *Service) ReorderResources(context stdctx.Context, entityID string, resources []Resource) error {
	items := slice.Map(resources, func(resource Resource) orderItem { return orderItem{ID: resource.ID, Order: resource.Order} })
	return service.reorder(context, ResourceResources, entityID, items)
}

// DeleteResource removes a resource.
func (service *Service) DeleteResource(context stdctx.Context, entityID, resourceID string) error {
	if err := requireIDs(map[string]string{"resource_id": resourceID}); err != nil {
		return err
	}
	if err := service.client.Delete(context, service.kind.ItemPath(ResourceResources, resourceID)); err != nil {
		return service.wrap("delete resource", err)
	}
	return nil
}
