// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	stdctx "context"

	"github.com/taibuivan/civicdesk/internal/mutation"
	"github.com/taibuivan/civicdesk/internal/platform/apperr"
)

// ImageService is the backend surface used by the image mutation sets.
type ImageService interface {
	UpdateImage(context stdctx.Context, entityID string, image ContentImage) error
	UploadImages(context stdctx.Context, entityID string, files []UploadableFile, sequences []int) ([]ContentImage, error)
	UploadIcon(context stdctx.Context, entityID string, file UploadableFile) (*ContentImage, error)
}

// # Gallery + Icon

// ImageMutations edits the gallery and icon of one entity.
//
// Gallery writes refresh the images query; icon uploads refresh the detail query.
type ImageMutations struct {
	mutation.State

	runner  *mutation.Runner
	service ImageService
	binding Binding
}

func NewImageMutations(ref *mutation.Ref, dependencies mutation.Dependencies, service ImageService, binding Binding) *ImageMutations {
	runner := mutation.NewRunner(ref, dependencies)
	return &ImageMutations{State: runner.State(), runner: runner, service: service, binding: binding}
}

func (mutations *ImageMutations) UpdateImage(context stdctx.Context, image ContentImage) bool {
	return mutations.runner.Run(context, mutation.Operation{
		Name: mutations.binding.operation("update_image"),
		Keys: mutations.binding.images(),
		Call: func(context stdctx.Context, entityID string) error {
			return mutations.service.UpdateImage(context, entityID, image)
		},
	})
}

/*
UploadImages adds files to the gallery.

Parameters:
  - context: stdctx.Context
  - files: []UploadableFile (empty returns false without a call)
  - sequences: []int (optional gallery positions, nil to let the backend append)

Returns:
  - []ContentImage: The created image records
  - bool
*/
func (mutations *ImageMutations) UploadImages(context stdctx.Context, files []UploadableFile, sequences []int) ([]ContentImage, bool) {
	return mutation.Do(context, mutations.runner, mutation.Operation{
		Name:  mutations.binding.operation("upload_images"),
		Check: requireItems("files", len(files)),
		Keys:  mutations.binding.images(),
	}, func(context stdctx.Context, entityID string) ([]ContentImage, error) {
		return mutations.service.UploadImages(context, entityID, files, sequences)
	})
}

// UploadIconImage replaces the entity icon. A nil file returns false without a call.
func (mutations *ImageMutations) UploadIconImage(context stdctx.Context, file *UploadableFile) bool {
	return uploadIcon(context, mutations.runner, mutations.service, mutations.binding, file)
}

// RefreshEntityData refetches the entity queries (the gallery, for groups).
func (mutations *ImageMutations) RefreshEntityData(context stdctx.Context) error {
	return mutations.runner.Refresh(context, mutations.binding.entityData()...)
}

// RefreshImagesData refetches the gallery query.
func (mutations *ImageMutations) RefreshImagesData(context stdctx.Context) error {
	return mutations.runner.Refresh(context, mutations.binding.images()...)
}

// # Icon Only

// IconService is the subset of [ImageService] needed for icons.
type IconService interface {
	UploadIcon(context stdctx.Context, entityID string, file UploadableFile) (*ContentImage, error)
}

// IconMutations edits the icon of an entity without a gallery (events).
type IconMutations struct {
	mutation.State

	runner  *mutation.Runner
	service IconService
	binding Binding
}

func NewIconMutations(ref *mutation.Ref, dependencies mutation.Dependencies, service IconService, binding Binding) *IconMutations {
	runner := mutation.NewRunner(ref, dependencies)
	return &IconMutations{State: runner.State(), runner: runner, service: service, binding: binding}
}

func (mutations *IconMutations) UploadIconImage(context stdctx.Context, file *UploadableFile) bool {
	return uploadIcon(context, mutations.runner, mutations.service, mutations.binding, file)
}

func (mutations *IconMutations) RefreshEntityData(context stdctx.Context) error {
	return mutations.runner.Refresh(context, mutations.binding.entityData()...)
}

func uploadIcon(context stdctx.Context, runner *mutation.Runner, service IconService, binding Binding, file *UploadableFile) bool {
	return runner.Run(context, mutation.Operation{
		Name: binding.operation("upload_icon"),
		Check: func() error {
			if file == nil {
				return apperr.Precondition("file is required")
			}
			return nil
		},
		Keys: binding.detail(),
		Call: func(context stdctx.Context, entityID string) error {
			_, err := service.UploadIcon(context, entityID, *file)
			return err
		},
	})
}
