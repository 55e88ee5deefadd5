// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package group

import (
	stdctx "context"

	"github.com/taibuivan/civicdesk/internal/core/content"
	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/mutation"
	"github.com/taibuivan/civicdesk/internal/platform/httpclient"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
)

// NewService returns the content service for groups.
func NewService(client *httpclient.Client) *content.Service {
	return content.NewService(client, entity.Group)
}

// # Mutation Sets

func NewFAQMutations(ref *mutation.Ref, dependencies mutation.Dependencies, service content.FAQService) *content.FAQMutations {
	return content.NewFAQMutations(ref, dependencies, service, binding())
}

func NewResourceMutations(ref *mutation.Ref, dependencies mutation.Dependencies, service content.ResourceService) *content.ResourceMutations {
	return content.NewResourceMutations(ref, dependencies, service, binding())
}

func NewSocialLinkMutations(ref *mutation.Ref, dependencies mutation.Dependencies, service content.SocialLinkService) *content.SocialLinkMutations {
	return content.NewSocialLinkMutations(ref, dependencies, service, binding())
}

func NewTextMutations(ref *mutation.Ref, dependencies mutation.Dependencies, service content.TextService) *content.TextMutations {
	return content.NewTextMutations(ref, dependencies, service, binding())
}

// NewImageMutations returns the gallery set; its RefreshEntityData refreshes [ImagesKey].
func NewImageMutations(ref *mutation.Ref, dependencies mutation.Dependencies, service content.ImageService) *content.ImageMutations {
	return content.NewImageMutations(ref, dependencies, service, imageBinding())
}

// # Queries

// Get reads the group detail through the query cache.
func Get(context stdctx.Context, cache *querycache.Cache, service *content.Service, groupID string) (*content.Detail, error) {
	return querycache.Get(context, cache, DetailKey(groupID), func(context stdctx.Context) (*content.Detail, error) {
		return service.GetDetail(context, groupID)
	})
}

// GetImages reads the group gallery through the query cache.
func GetImages(context stdctx.Context, cache *querycache.Cache, service *content.Service, groupID string) ([]content.ContentImage, error) {
	return querycache.Get(context, cache, ImagesKey(groupID), func(context stdctx.Context) ([]content.ContentImage, error) {
		return service.ListImages(context, groupID)
	})
}
