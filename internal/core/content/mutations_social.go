// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	stdctx "context"

	"github.com/taibuivan/civicdesk/internal/mutation"
)

// SocialLinkService is the backend surface used by [SocialLinkMutations].
type SocialLinkService interface {
	CreateSocialLinks(context stdctx.Context, entityID string, links []SocialLinkInput) error
	UpdateSocialLink(context stdctx.Context, entityID, linkID string, input SocialLinkInput) error
	DeleteSocialLink(context stdctx.Context, entityID, linkID string) error
	ReplaceSocialLinks(context stdctx.Context, entityID string, links []SocialLinkInput) error
}

// SocialLinkMutations edits the social links of one entity.
type SocialLinkMutations struct {
	mutation.State

	runner  *mutation.Runner
	service SocialLinkService
	binding Binding
}

func NewSocialLinkMutations(ref *mutation.Ref, dependencies mutation.Dependencies, service SocialLinkService, binding Binding) *SocialLinkMutations {
	runner := mutation.NewRunner(ref, dependencies)
	return &SocialLinkMutations{State: runner.State(), runner: runner, service: service, binding: binding}
}

func (mutations *SocialLinkMutations) UpdateLink(context stdctx.Context, linkID string, input SocialLinkInput) bool {
	return mutations.runner.Run(context, mutation.Operation{
		Name:  mutations.binding.operation("update_social_link"),
		Check: requireChildID("link_id", linkID),
		Keys:  mutations.binding.detail(),
		Call: func(context stdctx.Context, entityID string) error {
			return mutations.service.UpdateSocialLink(context, entityID, linkID, input)
		},
	})
}

// CreateLinks adds links in one request. An empty list returns false without a call.
func (mutations *SocialLinkMutations) CreateLinks(context stdctx.Context, links []SocialLinkInput) bool {
	return mutations.runner.Run(context, mutation.Operation{
		Name:  mutations.binding.operation("create_social_links"),
		Check: requireItems("links", len(links)),
		Keys:  mutations.binding.detail(),
		Call: func(context stdctx.Context, entityID string) error {
			return mutations.service.CreateSocialLinks(context, entityID, links)
		},
	})
}

func (mutations *SocialLinkMutations) DeleteLink(context stdctx.Context, linkID string) bool {
	return mutations.runner.Run(context, mutation.Operation{
		Name:  mutations.binding.operation("delete_social_link"),
		Check: requireChildID("link_id", linkID),
		Keys:  mutations.binding.detail(),
		Call: func(context stdctx.Context, entityID string) error {
			return mutations.service.DeleteSocialLink(context, entityID, linkID)
		},
	})
}

// ReplaceAllLinks swaps the full list. An empty list clears every link.
func (mutations *SocialLinkMutations) ReplaceAllLinks(context stdctx.Context, links []SocialLinkInput) bool {
	return mutations.runner.Run(context, mutation.Operation{
		Name: mutations.binding.operation("replace_social_links"),
		Keys: mutations.binding.detail(),
		Call: func(context stdctx.Context, entityID string) error {
			return mutations.service.ReplaceSocialLinks(context, entityID, links)
		},
	})
}

func (mutations *SocialLinkMutations) RefreshEntityData(context stdctx.Context) error {
	return mutations.runner.Refresh(context, mutations.binding.entityData()...)
}
