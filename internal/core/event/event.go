// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package event binds the shared content mutation sets to events.

Events have no gallery: every write, icon uploads included, refreshes the event
detail query.
*/
package event

import (
	stdctx "context"

	"github.com/taibuivan/civicdesk/internal/core/content"
	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/mutation"
	"github.com/taibuivan/civicdesk/internal/platform/constants"
	"github.com/taibuivan/civicdesk/internal/platform/httpclient"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
)

// DetailKey identifies the event detail query.
func DetailKey(eventID string) querycache.Key {
	return querycache.Compose(constants.CachePrefixEvent, constants.CacheScopeDetail, eventID)
}

func binding() content.Binding {
	return content.Binding{Kind: entity.Event, DetailKey: DetailKey}
}

// NewService returns the content service for events.
func NewService(client *httpclient.Client) *content.Service {
	return content.NewService(client, entity.Event)
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

// NewImageIconMutations returns the icon set of an event.
func NewImageIconMutations(ref *mutation.Ref, dependencies mutation.Dependencies, service content.IconService) *content.IconMutations {
	return content.NewIconMutations(ref, dependencies, service, binding())
}

// Get reads the event detail through the query cache.
func Get(context stdctx.Context, cache *querycache.Cache, service *content.Service, eventID string) (*content.Detail, error) {
	return querycache.Get(context, cache, DetailKey(eventID), func(context stdctx.Context) (*content.Detail, error) {
		return service.GetDetail(context, eventID)
	})
}
