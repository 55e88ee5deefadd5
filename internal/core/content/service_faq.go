// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	stdctx "context"

	"github.com/taibuivan/civicdesk/pkg/slice"
)

// # FAQ Entries

// CreateFAQ adds an FAQ entry to the entity.
func (service *Service) CreateFAQ(context stdctx.Context, entityID string, input FAQInput) error {
	body, err := service.owned(entityID, input)
	if err != nil {
		return err
	}
	if err := service.client.Post(context, service.kind.CollectionPath(ResourceFAQs), body, nil); err != nil {
		return service.wrap("create faq", err)
	}
	return nil
}

// UpdateFAQ replaces an existing FAQ entry.
func (service *Service) UpdateFAQ(context stdctx.Context, entityID string, entry FAQEntry) error {
	if err := requireIDs(map[string]string{"faq_id": entry.ID}); err != nil {
		return err
	}

	body, err := service.owned(entityID, entry)
	if err != nil {
		return err
	}
	if err := service.client.Put(context, service.kind.ItemPath(ResourceFAQs, entry.ID), body, nil); err != nil {
		return service.wrap("update faq", err)
	}
	return nil
}

/*
ReorderFAQs persists the order of the given entries.

Parameters:
  - context: stdctx.Context
  - entityID: string
  - entries: []FAQEntry (only ID and Order are sent)

Returns:
  - error
*/
func (service *Service) ReorderFAQs(context stdctx.Context, entityID string, entries []FAQEntry) error {
	items := slice.Map(entries, func(entry FAQEntry) orderItem { return orderItem{ID: entry.ID, Order: entry.Order} })
	return service.reorder(context, ResourceFAQs, entityID, items)
}

// DeleteFAQ removes an FAQ entry.
func (service *Service) DeleteFAQ(context stdctx.Context, entityID, faqID string) error {
	if err := requireIDs(map[string]string{"faq_id": faqID}); err != nil {
		return err
	}
	if err := service.client.Delete(context, service.kind.ItemPath(ResourceFAQs, faqID)); err != nil {
		return service.wrap("delete faq", err)
	}
	return nil
}

// # Ordering

type orderItem struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

func (service *Service) reorder(context stdctx.Context, resource, entityID string, items []orderItem) error {
	if items == nil {
		items = []orderItem{}
	}
	body := map[string]any{
		service.kind.OwnerField(): entityID,
		"items":                   items,
	}
	if err := service.client.Put(context, service.kind.CollectionPath(resource)+"reorder/", body, nil); err != nil {
		return service.wrap("reorder "+resource, err)
	}
	return nil
}
