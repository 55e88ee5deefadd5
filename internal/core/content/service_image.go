// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	stdctx "context"
	"strconv"

	"github.com/taibuivan/civicdesk/internal/platform/apperr"
	"github.com/taibuivan/civicdesk/internal/platform/constants"
	"github.com/taibuivan/civicdesk/internal/platform/httpclient"
)

// # Images

const (
	pathImages    = "/content/images/"
	pathImageIcon = "/content/image_icon/"
)

// ListImages returns the gallery of the entity ordered by sequence.
func (service *Service) ListImages(context stdctx.Context, entityID string) ([]ContentImage, error) {
	if err := requireIDs(map[string]string{"entity_id": entityID}); err != nil {
		return nil, err
	}

	var images []ContentImage
	if err := service.client.Get(context, service.imagesPath(entityID), &images); err != nil {
		return nil, service.wrap("list images", err)
	}
	return images, nil
}

// UpdateImage saves the metadata (e.g. sequence) of one gallery image.
func (service *Service) UpdateImage(context stdctx.Context, entityID string, image ContentImage) error {
	if err := requireIDs(map[string]string{"image_id": image.ID}); err != nil {
		return err
	}
	if err := service.client.Put(context, service.imagesPath(entityID)+image.ID+"/", image, nil); err != nil {
		return service.wrap("update image", err)
	}
	return nil
}

/*
UploadImages sends files to the gallery of the entity in one multipart request.

Parameters:
  - context: stdctx.Context
  - entityID: string
  - files: []UploadableFile (each sent as "file_object")
  - sequences: []int (optional; one gallery position per file, omitted when nil)

Returns:
  - []ContentImage: The stored images
  - error
*/
func (service *Service) UploadImages(context stdctx.Context, entityID string, files []UploadableFile, sequences []int) ([]ContentImage, error) {
	if sequences != nil && len(sequences) != len(files) {
		return nil, apperr.ValidationError("Each file needs exactly one sequence",
			apperr.FieldError{Field: constants.FieldSequences, Message: "must match the number of files"})
	}

	form := httpclient.Form{
		Fields: []httpclient.Field{{Name: service.kind.UploadField(), Value: entityID}},
	}
	for _, sequence := range sequences {
		form.Fields = append(form.Fields, httpclient.Field{Name: constants.FieldSequences, Value: strconv.Itoa(sequence)})
	}
	for _, file := range files {
		form.Files = append(form.Files, filePart(file))
	}

	var images []ContentImage
	if err := service.client.PostForm(context, pathImages, form, &images); err != nil {
		return nil, service.wrap("upload images", err)
	}
	return images, nil
}

// UploadIcon replaces the icon of the entity.
func (service *Service) UploadIcon(context stdctx.Context, entityID string, file UploadableFile) (*ContentImage, error) {
	form := httpclient.Form{
		Fields: []httpclient.Field{{Name: service.kind.UploadField(), Value: entityID}},
		Files:  []httpclient.FilePart{filePart(file)},
	}

	image := &ContentImage{}
	if err := service.client.PostForm(context, pathImageIcon, form, image); err != nil {
		return nil, service.wrap("upload icon", err)
	}
	return image, nil
}

// DeleteImage removes an uploaded image. Image ids are global, so no entity is needed.
func (service *Service) DeleteImage(context stdctx.Context, imageID string) error {
	if err := requireIDs(map[string]string{"image_id": imageID}); err != nil {
		return err
	}
	if err := service.client.Delete(context, pathImages+imageID+"/"); err != nil {
		return service.wrap("delete image", err)
	}
	return nil
}

func (service *Service) imagesPath(entityID string) string {
	return service.kind.EntityPath(entityID) + ResourceImages + "/"
}

func filePart(file UploadableFile) httpclient.FilePart {
	return httpclient.FilePart{
		Field:       constants.FieldFileObject,
		FileName:    file.Name,
		ContentType: file.Type,
		Open:        file.Open,
	}
}
