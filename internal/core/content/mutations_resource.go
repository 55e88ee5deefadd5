// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	stdctx "context"

	"github.com/taibuivan/civicdesk/internal/mutation"
)

// ResourceService is the backend surface used by [ResourceMutations].
type ResourceService interface {
	CreateResource(context stdctx.Context, entityID string, input ResourceInput) error
	UpdateResource(context stdctx.Context, entityID string, resource Resource) error
	ReorderResources(context stdctx.Context, entityID string, resources []Resource) error
	DeleteResource(context stdctx.Context, entityID, resourceID string) error
}

// ResourceMutations edits the resources of one entity. Every write refreshes the detail query.
type ResourceMutations struct {
	mutation.State

	runner  *mutation.Runner
	service ResourceService
	binding Binding
}

func NewResourceMutations(ref *mutation.Ref, dependencies mutation.Dependencies, service ResourceService, binding Binding) *ResourceMutations {
	runner := mutation.NewRunner(ref, dependencies)
	return &ResourceMutations{State: runner.State(), runner: runner, service: service, binding: binding}
}

func (mutations *ResourceMutations) CreateResource(context stdctx.Context, input ResourceInput) bool {
	return mutations.runner.Run(context, mutation.Operation{
		Name: mutations.binding.operation("create_resource"),
		Keys: mutations.binding.detail(),
		Call: func(context stdctx.Context, entityID string) error {
			return mutations.service.CreateResource(context, entityID, input)
		},
	})
}

func (mutations *ResourceMutations) UpdateResource(context stdctx.Context, resource Resource) bool {
	return mutations.runner.Run(context, mutation.Operation{
		Name: mutations.binding.operation("update_resource"),
		Keys: mutations.binding.detail(),
		Call: func(context stdctx.Context, entityID string) error {
			return mutations.service.UpdateResource(context, entityID, resource)
		},
	})
}

func (mutations *ResourceMutations) ReorderResources(context stdctx.Context, resources []Resource) bool {
	return mutations.runner.Run(context, mutation.Operation{
		Name: mutations.binding.operation("reorder_resources"),
		Keys: mutations.binding.detail(),
		Call: func(context stdctx.Context, entityID string) error {
			return mutations.service.ReorderResources(context, entityID, resources)
		},
	})
}

func (mutations *ResourceMutations) DeleteResource(context stdctx.Context, resourceID string) bool {
	return mutations.runner.Run(context, mutation.Operation{
		Name:  mutations.binding.operation("delete_resource"),
		Check: requireChildID("resource_id", resourceID),
		Keys:  mutations.binding.detail(),
		Call: func(context stdctx.Context, entityID string) error {
			return mutations.service.DeleteResource(context, entityID, resourceID)
		},
	})
}

func (mutations *ResourceMutations) RefreshEntityData(context stdctx.Context) error {
	return mutations.runner.Refresh(context, mutations.binding.entityData()...)
}
