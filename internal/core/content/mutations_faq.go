// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	stdctx "context"

	"github.com/taibuivan/civicdesk/internal/mutation"
)

// FAQService is the backend surface used by [FAQMutations].
type FAQService interface {
	CreateFAQ(context stdctx.Context, entityID string, input FAQInput) error
	UpdateFAQ(context stdctx.Context, entityID string, entry FAQEntry) error
	ReorderFAQs(context stdctx.Context, entityID string, entries []FAQEntry) error
	DeleteFAQ(context stdctx.Context, entityID, faqID string) error
}

// FAQMutations edits the FAQ entries of one entity. Every write refreshes the detail query.
type FAQMutations struct {
	mutation.State

	runner  *mutation.Runner
	service FAQService
	binding Binding
}

// NewFAQMutations binds the FAQ mutation set to the entity held by ref.
func NewFAQMutations(ref *mutation.Ref, dependencies mutation.Dependencies, service FAQService, binding Binding) *FAQMutations {
	runner := mutation.NewRunner(ref, dependencies)
	return &FAQMutations{State: runner.State(), runner: runner, service: service, binding: binding}
}

func (mutations *FAQMutations) CreateFAQ(context stdctx.Context, input FAQInput) bool {
	return mutations.runner.Run(context, mutation.Operation{
		Name: mutations.binding.operation("create_faq"),
		Keys: mutations.binding.detail(),
		Call: func(context stdctx.Context, entityID string) error {
			return mutations.service.CreateFAQ(context, entityID, input)
		},
	})
}

func (mutations *FAQMutations) UpdateFAQ(context stdctx.Context, entry FAQEntry) bool {
	return mutations.runner.Run(context, mutation.Operation{
		Name: mutations.binding.operation("update_faq"),
		Keys: mutations.binding.detail(),
		Call: func(context stdctx.Context, entityID string) error {
			return mutations.service.UpdateFAQ(context, entityID, entry)
		},
	})
}

// ReorderFAQs persists a new order. An empty list is sent as is.
func (mutations *FAQMutations) ReorderFAQs(context stdctx.Context, entries []FAQEntry) bool {
	return mutations.runner.Run(context, mutation.Operation{
		Name: mutations.binding.operation("reorder_faqs"),
		Keys: mutations.binding.detail(),
		Call: func(context stdctx.Context, entityID string) error {
			return mutations.service.ReorderFAQs(context, entityID, entries)
		},
	})
}

func (mutations *FAQMutations) DeleteFAQ(context stdctx.Context, faqID string) bool {
	return mutations.runner.Run(context, mutation.Operation{
		Name:  mutations.binding.operation("delete_faq"),
		Check: requireChildID("faq_id", faqID),
		Keys:  mutations.binding.detail(),
		Call: func(context stdctx.Context, entityID string) error {
			return mutations.service.DeleteFAQ(context, entityID, faqID)
		},
	})
}

// RefreshEntityData refetches the entity queries. It does nothing without an entity id.
func (mutations *FAQMutations) RefreshEntityData(context stdctx.Context) error {
	return mutations.runner.Refresh(context, mutations.binding.entityData()...)
}
