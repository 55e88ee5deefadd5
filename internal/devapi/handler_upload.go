// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package devapi

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/platform/apperr"
	"github.com/taibuivan/civicdesk/internal/platform/constants"
	"github.com/taibuivan/civicdesk/internal/platform/respond"
	requestutil "github.com/taibuivan/civicdesk/internal/platform/request"
	"github.com/taibuivan/civicdesk/internal/platform/validate"
)

// # Upload Handler

// uploadHandler serves the kind-independent image endpoints under /content.
type uploadHandler struct {
	store    *Store
	logger   *slog.Logger
	maxBytes int64
}

func (handler *uploadHandler) routes(router chi.Router) {
	router.Post("/content/images", handler.uploadImages)
	router.Post("/content/image_icon", handler.uploadIcon)
	router.Delete("/content/images/{imageID}", handler.deleteImage)
}

/*
uploadImages handles POST /content/images/.

Form fields:
  - <kind>_id: the owning entity (exactly one kind)
  - file_object: one or more JPEG/PNG files
  - sequences: optional, one per file
*/
func (handler *uploadHandler) uploadImages(writer http.ResponseWriter, request *http.Request) {
	form, err := requestutil.Multipart(writer, request, handler.maxBytes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	kind, entityID, err := formOwner(form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	names, err := acceptedFiles(form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sequences, err := formSequences(form, len(names))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	images, err := handler.store.AddImages(kind, entityID, names, sequences)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.logger.InfoContext(request.Context(), "images_uploaded",
		slog.String("kind", kind.String()),
		slog.String("entity_id", entityID),
		slog.Int("count", len(images)),
	)
	respond.Created(writer, images)
}

// uploadIcon handles POST /content/image_icon/ with a single file.
func (handler *uploadHandler) uploadIcon(writer http.ResponseWriter, request *http.Request) {
	form, err := requestutil.Multipart(writer, request, handler.maxBytes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	kind, entityID, err := formOwner(form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	names, err := acceptedFiles(form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if len(names) != 1 {
		respond.Error(writer, request, validate.RequiredError(constants.FieldFileObject, "Exactly one file is required"))
		return
	}

	icon, err := handler.store.SetIcon(kind, entityID, names[0])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, icon)
}

func (handler *uploadHandler) deleteImage(writer http.ResponseWriter, request *http.Request) {
	if err := handler.store.DeleteImage(requestutil.Param(request, "imageID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Form Parsing

// formOwner finds the single "<kind>_id" field of an upload.
func formOwner(form *multipart.Form) (entity.Kind, string, error) {
	var (
		owner entity.Kind
		id    string
	)
	for _, kind := range entity.Kinds {
		value := requestutil.FormValue(form, kind.UploadField())
		if value == "" {
			continue
		}
		if id != "" {
			return "", "", apperr.ValidationError("Upload names more than one owner")
		}
		owner, id = kind, value
	}

	if id == "" {
		return "", "", apperr.ValidationError("Upload needs an owner",
			apperr.FieldError{Field: entity.Event.UploadField(), Message: "One of event_id, group_id or organization_id is required"})
	}
	return owner, id, nil
}

// acceptedFiles checks presence and MIME type of every file and returns their names.
func acceptedFiles(form *multipart.Form) ([]string, error) {
	headers := form.File[constants.FieldFileObject]

	validator := &validate.Validator{}
	validator.NotEmpty(constants.FieldFileObject, len(headers))

	names := make([]string, 0, len(headers))
	for _, header := range headers {
		contentType := header.Header.Get(constants.HeaderContentType)
		if contentType == "" || contentType == "application/octet-stream" {
			raw, err := requestutil.ReadFile(header)
			if err != nil {
				return nil, err
			}
			contentType = http.DetectContentType(raw)
		}
		validator.OneOf(constants.FieldFileObject, contentType, constants.AllowedImageTypes...)
		names = append(names, header.Filename)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// formSequences parses the optional sequences; when present there must be one per file.
func formSequences(form *multipart.Form, files int) ([]int, error) {
	values := form.Value[constants.FieldSequences]
	if len(values) == 0 {
		return nil, nil
	}
	if len(values) != files {
		return nil, validate.RequiredError(constants.FieldSequences, "Must match the number of files")
	}

	sequences := make([]int, 0, len(values))
	for _, value := range values {
		sequence, err := strconv.Atoi(value)
		if err != nil || sequence < 0 {
			return nil, validate.RequiredError(constants.FieldSequences, "Must be non-negative integers")
		}
		sequences = append(sequences, sequence)
	}
	return sequences, nil
}
