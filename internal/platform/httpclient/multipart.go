// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package httpclient

import (
	"bytes"
	stdctx "context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/taibuivan/civicdesk/internal/platform/apperr"
	"github.com/taibuivan/civicdesk/pkg/slug"
)

// # Multipart Uploads

// FilePart is one file in a multipart form.
type FilePart struct {
	// Field is the form field name (e.g. "file_object").
	Field string
	// FileName is sanitized before it is sent.
	FileName    string
	ContentType string
	// Open returns the file contents. It is called once and the reader is closed after use.
	Open func() (io.ReadCloser, error)
}

// Form is a multipart body: plain fields first, then files.
type Form struct {
	Fields []Field
	Files  []FilePart
}

// Field is a single plain multipart value. Repeated names are allowed.
type Field struct {
	Name  string
	Value string
}

// Upload sends form as multipart/form-data with the given method and decodes the response into out.
func (client *Client) Upload(context stdctx.Context, method, path string, form Form, out any) error {
	body, contentType, err := encodeForm(form)
	if err != nil {
		return err
	}
	return client.do(context, method, path, contentType, body, out)
}

// PostForm is shorthand for Upload with POST.
func (client *Client) PostForm(context stdctx.Context, path string, form Form, out any) error {
	return client.Upload(context, http.MethodPost, path, form, out)
}

func encodeForm(form Form) (io.Reader, string, error) {
	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)

	for _, field := range form.Fields {
		if err := writer.WriteField(field.Name, field.Value); err != nil {
			return nil, "", apperr.Internal(fmt.Errorf("httpclient: write field %s: %w", field.Name, err))
		}
	}

	for _, file := range form.Files {
		if err := writeFile(writer, file); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", apperr.Internal(fmt.Errorf("httpclient: close multipart writer: %w", err))
	}

	return buffer, writer.FormDataContentType(), nil
}

func writeFile(writer *multipart.Writer, file FilePart) error {
	reader, err := file.Open()
	if err != nil {
		return apperr.Internal(fmt.Errorf("httpclient: open %s: %w", file.FileName, err))
	}
	defer reader.Close()

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, SafeFileName(file.FileName)))
	if file.ContentType != "" {
		header.Set("Content-Type", file.ContentType)
	}

	part, err := writer.CreatePart(header)
	if err != nil {
		return apperr.Internal(fmt.Errorf("httpclient: create part %s: %w", file.FileName, err))
	}

	if _, err := io.Copy(part, reader); err != nil {
		return apperr.Internal(fmt.Errorf("httpclient: copy %s: %w", file.FileName, err))
	}
	return nil
}

// SafeFileName slugs the stem of name and keeps a lower-cased extension.
//
//	SafeFileName("Plakát Zürich.PNG") // "plakat-zurich.png"
func SafeFileName(name string) string {
	base := filepath.Base(name)
	extension := strings.ToLower(filepath.Ext(base))
	stem := slug.From(strings.TrimSuffix(base, filepath.Ext(base)))
	if stem == "" {
		stem = "upload"
	}
	return stem + extension
}
