// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import stdctx "context"

// # Social Links

// CreateSocialLinks adds links to the entity in one batch request.
func (service *Service) CreateSocialLinks(context stdctx.Context, entityID string, links []SocialLinkInput) error {
	body := map[string]any{
		service.kind.OwnerField(): entityID,
		"links":                   links,
	}
	if err := service.client.Post(context, service.kind.CollectionPath(ResourceSocialLinks), body, nil); err != nil {
		return service.wrap("create social links", err)
	}
	return nil
}

// UpdateSocialLink replaces one link.
func (service *Service) UpdateSocialLink(context stdctx.Context, entityID, linkID string, input SocialLinkInput) error {
	if err := requireIDs(map[string]string{"link_id": linkID}); err != nil {
		return err
	}

	body, err := service.owned(entityID, input)
	if err != nil {
		return err
	}
	if err := service.client.Put(context, service.kind.ItemPath(ResourceSocialLinks, linkID), body, nil); err != nil {
		return service.wrap("update social link", err)
	}
	return nil
}

// DeleteSocialLink removes one link.
func (service *Service) DeleteSocialLink(context stdctx.Context, entityID, linkID string) error {
	if err := requireIDs(map[string]string{"link_id": linkID}); err != nil {
		return err
	}
	if err := service.client.Delete(context, service.kind.ItemPath(ResourceSocialLinks, linkID)); err != nil {
		return service.wrap("delete social link", err)
	}
	return nil
}

// ReplaceSocialLinks swaps the full link list of the entity. An empty list clears it.
func (service *Service) ReplaceSocialLinks(context stdctx.Context, entityID string, links []SocialLinkInput) error {
	if links == nil {
		links = []SocialLinkInput{}
	}
	body := map[string]any{"links": links}
	if err := service.client.Put(context, service.kind.EntityPath(entityID)+ResourceSocialLinks+"/", body, nil); err != nil {
		return service.wrap("replace social links", err)
	}
	return nil
}
