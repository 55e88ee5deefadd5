// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package organization

import (
	stdctx "context"

	"github.com/taibuivan/civicdesk/internal/core/content"
	"github.com/taibuivan/civicdesk/internal/mutation"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
)

// # Content Mutation Sets

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

// NewImageMutations returns the gallery and icon set. RefreshEntityData refreshes
// the detail query and RefreshImagesData the gallery query.
func NewImageMutations(ref *mutation.Ref, dependencies mutation.Dependencies, service content.ImageService) *content.ImageMutations {
	return content.NewImageMutations(ref, dependencies, service, binding())
}

// # Organization Lifecycle

// Creator is the backend surface used by [Mutations].
type Creator interface {
	CreateOrganization(context stdctx.Context, input CreateInput) (*Organization, error)
}

// Mutations creates organizations. It is not bound to an existing organization.
type Mutations struct {
	mutation.State

	runner  *mutation.Runner
	service Creator
}

func NewMutations(dependencies mutation.Dependencies, service Creator) *Mutations {
	runner := mutation.NewRunner(nil, dependencies)
	return &Mutations{State: runner.State(), runner: runner, service: service}
}

// Create registers an organization and refreshes the organization list.
func (mutations *Mutations) Create(context stdctx.Context, input CreateInput) (*Organization, bool) {
	return mutation.Do(context, mutations.runner, mutation.Operation{
		Name:     "organization.create",
		Unscoped: true,
		Keys:     []querycache.KeyFunc{listKey},
	}, func(context stdctx.Context, _ string) (*Organization, error) {
		return mutations.service.CreateOrganization(context, input)
	})
}

// RefreshOrganizationList refetches the organization list.
func (mutations *Mutations) RefreshOrganizationList(context stdctx.Context) error {
	return mutations.runner.RefreshKeys(context, ListKey())
}

func listKey(string) querycache.Key {
	return ListKey()
}
