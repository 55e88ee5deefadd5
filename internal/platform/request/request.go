// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the router's parameter extraction and the body decoding
patterns of the development backend, with consistent error values.
*/
package requestutil

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/taibuivan/civicdesk/internal/platform/apperr"
	"github.com/taibuivan/civicdesk/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (pointer to the destination)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Multipart parses a multipart/form-data body of at most maxBytes.

Returns:
  - *multipart.Form
  - error: VALIDATION_ERROR when the body is not a valid form
*/
func Multipart(writer http.ResponseWriter, request *http.Request, maxBytes int64) (*multipart.Form, error) {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes)
	if err := request.ParseMultipartForm(maxBytes); err != nil {
		return nil, apperr.ValidationError("Invalid multipart payload")
	}
	return request.MultipartForm, nil
}

// FormValue returns the first value of field, or "".
func FormValue(form *multipart.Form, field string) string {
	if values := form.Value[field]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// ReadFile returns the full contents of an uploaded file.
func ReadFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer file.Close()

	return io.ReadAll(file)
}
