// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package filemanager_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicdesk/internal/core/content"
	"github.com/taibuivan/civicdesk/internal/core/organization"
	"github.com/taibuivan/civicdesk/internal/filemanager"
	"github.com/taibuivan/civicdesk/internal/mutation/mutationtest"
	"github.com/taibuivan/civicdesk/internal/platform/preview"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
)

var placeholders = []string{"/img/get_active.png", "/img/get_organized.png", "/img/grow_organization.png"}

type fakeService struct {
	images    []content.ContentImage
	listErr   error
	uploadErr error
	deleteErr error

	uploadedFor string
	uploaded    []string
	deleted     []string
	listCalls   int
	uploadCalls int
}

func (service *fakeService) ListImages(_ context.Context, _ string) ([]content.ContentImage, error) {
	service.listCalls++
	return service.images, service.listErr
}

func (service *fakeService) UploadImages(_ context.Context, entityID string, files []content.UploadableFile, _ []int) ([]content.ContentImage, error) {
	service.uploadCalls++
	if service.uploadErr != nil {
		return nil, service.uploadErr
	}
	service.uploadedFor = entityID
	records := make([]content.ContentImage, 0, len(files))
	for _, file := range files {
		service.uploaded = append(service.uploaded, file.Name)
		records = append(records, content.ContentImage{ID: "img-" + file.Name, FileObject: "/media/" + file.Name})
	}
	return records, nil
}

func (service *fakeService) DeleteImage(_ context.Context, imageID string) error {
	service.deleted = append(service.deleted, imageID)
	return service.deleteErr
}

type fixture struct {
	manager  *filemanager.Manager
	service  *fakeService
	harness  *mutationtest.Harness
	previews *preview.Registry
}

func newFixture(entityID string) fixture {
	harness := mutationtest.New(entityID)
	service := &fakeService{}
	previews := preview.NewRegistry()

	manager := filemanager.New(entityID, filemanager.Dependencies{
		Mutation:     harness.Deps,
		Service:      service,
		ImagesKey:    organization.ImagesKey,
		Previews:     previews,
		Placeholders: placeholders,
	})
	return fixture{manager: manager, service: service, harness: harness, previews: previews}
}

func png(name string, modMillis int64) content.UploadableFile {
	return content.FileFromBytes(name, "image/png", []byte(name), time.UnixMilli(modMillis))
}

/*
TestFetchImages covers the empty-id no-op, success, empty gallery and failure paths.
*/
func TestFetchImages(t *testing.T) {
	ctx := context.Background()

	t.Run("no_entity", func(t *testing.T) {
		f := newFixture("")
		f.manager.FetchImages(ctx)
		assert.Zero(t, f.service.listCalls)
		assert.Equal(t, placeholders, f.manager.ImageURLs())
	})

	t.Run("success_then_failure_keeps_urls", func(t *testing.T) {
		f := newFixture("org-123")
		f.service.images = []content.ContentImage{{ID: "1", FileObject: "/media/a.png"}, {ID: "2", FileObject: "/media/b.png"}}

		f.manager.FetchImages(ctx)
		assert.Equal(t, []string{"/media/a.png", "/media/b.png"}, f.manager.ImageURLs())
		assert.False(t, f.manager.UploadError())

		f.service.listErr = errors.New("boom")
		f.manager.FetchImages(ctx)
		assert.Equal(t, []string{"/media/a.png", "/media/b.png"}, f.manager.ImageURLs())
		assert.True(t, f.manager.UploadError())
		assert.Empty(t, f.harness.Toasts.Toasts())
	})

	t.Run("empty_gallery_uses_placeholders", func(t *testing.T) {
		f := newFixture("org-123")
		f.manager.FetchImages(ctx)
		assert.Equal(t, placeholders, f.manager.ImageURLs())
	})
}

/*
TestAddFiles verifies MIME filtering, deduplication by identity and preview allocation.
*/
func TestAddFiles(t *testing.T) {
	f := newFixture("org-123")

	text := content.FileFromBytes("notes.txt", "text/plain", []byte("hi"), time.UnixMilli(1))
	jpeg := content.FileFromBytes("photo.jpg", "image/jpeg", []byte("jpg"), time.UnixMilli(2))

	added := f.manager.AddFiles(png("a.png", 1), text, jpeg, png("a.png", 1))
	assert.Equal(t, 2, added)

	files := f.manager.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "a.png", files[0].Name)
	assert.Equal(t, "photo.jpg", files[1].Name)
	assert.NotEmpty(t, files[0].PreviewURL)
	assert.Equal(t, 2, f.previews.Count())

	// Same name, different modification time: a different file.
	assert.Equal(t, 1, f.manager.AddFiles(png("a.png", 99)))
	assert.Len(t, f.manager.Files(), 3)
}

/*
TestRemoveAndClose verifies that previews are released exactly once.
*/
func TestRemoveAndClose(t *testing.T) {
	f := newFixture("org-123")
	f.manager.AddFiles(png("a.png", 1), png("b.png", 2))

	assert.True(t, f.manager.Remove(png("a.png", 1)))
	assert.False(t, f.manager.Remove(png("a.png", 1)))
	assert.Equal(t, 1, f.previews.Count())

	f.manager.Close()
	assert.Zero(t, f.previews.Count())
	assert.Empty(t, f.manager.Files())
}

/*
TestUpload covers the guard, success and failure paths under the mutation contract.
*/
func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("empty_entity", func(t *testing.T) {
		f := newFixture("org-123")
		f.manager.AddFiles(png("a.png", 1))

		images, ok := f.manager.Upload(ctx, "")
		assert.False(t, ok)
		assert.Nil(t, images)
		assert.Empty(t, f.service.uploaded)
		assert.Len(t, f.manager.Files(), 1)
	})

	t.Run("nothing_staged", func(t *testing.T) {
		f := newFixture("org-123")

		images, ok := f.manager.Upload(ctx, "org-123")
		assert.False(t, ok)
		assert.Nil(t, images)
		assert.Zero(t, f.service.uploadCalls)
		assert.Empty(t, f.harness.Toasts.Toasts())
		assert.NoError(t, f.manager.Err())
		assert.Empty(t, f.harness.Cache.Keys())
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture("org-123")
		f.manager.AddFiles(png("a.png", 1), png("b.png", 2))

		images, ok := f.manager.Upload(ctx, "org-123")
		require.True(t, ok)
		assert.Len(t, images, 2)
		assert.Equal(t, "org-123", f.service.uploadedFor)
		assert.Equal(t, []string{"a.png", "b.png"}, f.service.uploaded)
		assert.Empty(t, f.manager.Files())
		assert.Zero(t, f.previews.Count())
		assert.Equal(t, []querycache.Key{"organization:images:org-123"}, f.harness.Cache.Keys())
	})

	t.Run("failure_keeps_files", func(t *testing.T) {
		f := newFixture("org-123")
		f.service.uploadErr = errors.New("Upload failed")
		f.manager.AddFiles(png("a.png", 1))

		_, ok := f.manager.Upload(ctx, "org-123")
		assert.False(t, ok)
		assert.Len(t, f.manager.Files(), 1)
		assert.Equal(t, 1, f.previews.Count())
		assert.EqualError(t, f.manager.Err(), "Upload failed")
		assert.Equal(t, []string{"Upload failed"}, f.harness.Toasts.Errors())
		assert.False(t, f.manager.Loading())
		assert.Empty(t, f.harness.Cache.Keys())
	})
}

/*
TestDeleteImage covers the guard, success and failure paths.
*/
func TestDeleteImage(t *testing.T) {
	ctx := context.Background()
	f := newFixture("org-123")

	assert.False(t, f.manager.DeleteImage(ctx, ""))
	assert.Empty(t, f.service.deleted)

	assert.True(t, f.manager.DeleteImage(ctx, "img-1"))
	assert.Equal(t, []string{"img-1"}, f.service.deleted)
	assert.Equal(t, []querycache.Key{"organization:images:org-123"}, f.harness.Cache.Keys())

	f.service.deleteErr = errors.New("Not allowed")
	assert.False(t, f.manager.DeleteImage(ctx, "img-2"))
	assert.Equal(t, []string{"Not allowed"}, f.harness.Toasts.Errors())
}
