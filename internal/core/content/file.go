// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/taibuivan/civicdesk/internal/platform/constants"
)

// # Uploadable Files

// UploadableFile is a local file staged for upload.
type UploadableFile struct {
	Name    string
	Size    int64
	ModTime time.Time
	// Type is the MIME type, declared or sniffed.
	Type string

	// PreviewURL is assigned while the file is staged in a file manager.
	PreviewURL string

	open func() (io.ReadCloser, error)
}

// Key is the deterministic identity of the file: "name-size-lastModified-type",
// with lastModified in Unix milliseconds.
func (file UploadableFile) Key() string {
	return fmt.Sprintf("%s-%d-%d-%s", file.Name, file.Size, file.ModTime.UnixMilli(), file.Type)
}

// Open returns the file contents.
func (file UploadableFile) Open() (io.ReadCloser, error) {
	if file.open == nil {
		return nil, fmt.Errorf("content: file %s has no contents", file.Name)
	}
	return file.open()
}

// IsImage reports whether the file is an accepted image type (JPEG or PNG).
func (file UploadableFile) IsImage() bool {
	return slices.Contains(constants.AllowedImageTypes, file.Type)
}

/*
FileFromPath stages a file from disk.

Description: the MIME type comes from the extension and falls back to
content sniffing of the first 512 bytes.

Parameters:
  - path: string

Returns:
  - UploadableFile
  - error: stat or read failures
*/
func FileFromPath(path string) (UploadableFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return UploadableFile{}, fmt.Errorf("content: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return UploadableFile{}, fmt.Errorf("content: %s is a directory", path)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType, err = sniff(path)
		if err != nil {
			return UploadableFile{}, err
		}
	}
	mediaType, _, _ := mime.ParseMediaType(contentType)

	return UploadableFile{
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Type:    mediaType,
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// FileFromBytes stages an in-memory file. An empty contentType is sniffed.
func FileFromBytes(name, contentType string, data []byte, modTime time.Time) UploadableFile {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}

	return UploadableFile{
		Name:    name,
		Size:    int64(len(data)),
		ModTime: modTime,
		Type:    mediaType,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func sniff(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("content: open %s: %w", path, err)
	}
	defer file.Close()

	head := make([]byte, 512)
	read, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("content: read %s: %w", path, err)
	}
	return http.DetectContentType(head[:read]), nil
}
