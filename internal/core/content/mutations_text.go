// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	stdctx "context"

	"github.com/taibuivan/civicdesk/internal/mutation"
)

// TextService is the backend surface used by [TextMutations].
type TextService interface {
	UpdateTexts(context stdctx.Context, entityID, textID string, input TextInput) error
}

type TextMutations struct {
	mutation.State

	runner  *mutation.Runner
	service TextService
	binding Binding
}

func NewTextMutations(ref *mutation.Ref, dependencies mutation.Dependencies, service TextService, binding Binding) *TextMutations {
	runner := mutation.NewRunner(ref, dependencies)
	return &TextMutations{State: runner.State(), runner: runner, service: service, binding: binding}
}

// UpdateTexts saves input into the text block textID.
func (mutations *TextMutations) UpdateTexts(context stdctx.Context, input TextInput, textID string) bool {
	return mutations.runner.Run(context, mutation.Operation{
		Name:  mutations.binding.operation("update_texts"),
		Check: requireChildID("text_id", textID),
		Keys:  mutations.binding.detail(),
		Call: func(context stdctx.Context, entityID string) error {
			return mutations.service.UpdateTexts(context, entityID, textID, input)
		},
	})
}

func (mutations *TextMutations) RefreshEntityData(context stdctx.Context) error {
	return mutations.runner.Refresh(context, mutations.binding.entityData()...)
}
