// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package filemanager stages local images and manages the remote gallery of one entity.

Staged files are deduplicated by identity and each owns a preview URL until it is
removed, uploaded, or the manager is closed. Uploads and deletes follow the same
mutation contract as every other write: loading and error state, one error toast on
failure, and a refresh of the gallery query on success.
*/
package filemanager

import (
	stdctx "context"
	"log/slog"
	"sync"

	"github.com/taibuivan/civicdesk/internal/core/content"
	"github.com/taibuivan/civicdesk/internal/mutation"
	"github.com/taibuivan/civicdesk/internal/platform/apperr"
	"github.com/taibuivan/civicdesk/internal/platform/preview"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
	"github.com/taibuivan/civicdesk/pkg/slice"
)

// Service is the backend surface used by the manager. [content.Service] implements it.
type Service interface {
	ListImages(context stdctx.Context, entityID string) ([]content.ContentImage, error)
	UploadImages(context stdctx.Context, entityID string, files []content.UploadableFile, sequences []int) ([]content.ContentImage, error)
	DeleteImage(context stdctx.Context, imageID string) error
}

// Dependencies configures a [Manager].
type Dependencies struct {
	Mutation mutation.Dependencies
	Service  Service

	// ImagesKey derives the gallery query refreshed after uploads and deletes.
	ImagesKey querycache.KeyFunc

	// Previews hands out preview URLs. Nil creates a private registry.
	Previews *preview.Registry

	// Placeholders are shown when there is no entity or its gallery is empty.
	Placeholders []string
}

// Manager is the file manager of one entity. It is safe for concurrent use.
type Manager struct {
	mutation.State

	entityID     string
	runner       *mutation.Runner
	service      Service
	imagesKey    querycache.KeyFunc
	previews     *preview.Registry
	placeholders []string
	logger       *slog.Logger

	mu          sync.Mutex
	files       []content.UploadableFile
	imageURLs   []string
	uploadError bool
}

/*
New creates a manager for the gallery of entityID.

Parameters:
  - entityID: string (may be empty; fetches are then no-ops)
  - dependencies: Dependencies

Returns:
  - *Manager: seeded with the placeholder images
*/
func New(entityID string, dependencies Dependencies) *Manager {
	runner := mutation.NewRunner(mutation.NewRef(entityID), dependencies.Mutation)

	previews := dependencies.Previews
	if previews == nil {
		previews = preview.NewRegistry()
	}
	logger := dependencies.Mutation.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		State:        runner.State(),
		entityID:     entityID,
		runner:       runner,
		service:      dependencies.Service,
		imagesKey:    dependencies.ImagesKey,
		previews:     previews,
		placeholders: append([]string(nil), dependencies.Placeholders...),
		imageURLs:    append([]string(nil), dependencies.Placeholders...),
		logger:       logger,
	}
}

// # Remote Gallery

/*
FetchImages loads the gallery URLs of the entity.

Description: with no entity this does nothing. On success the URLs are replaced
(placeholders when the gallery is empty) and the upload-error flag is cleared. On
failure the previous URLs are kept and the flag is raised. It never returns an error.
*/
func (manager *Manager) FetchImages(context stdctx.Context) {
	if manager.entityID == "" {
		return
	}

	images, err := manager.service.ListImages(context, manager.entityID)

	manager.mu.Lock()
	defer manager.mu.Unlock()

	if err != nil {
		manager.uploadError = true
		manager.logger.WarnContext(context, "image_fetch_failed",
			slog.String("entity_id", manager.entityID),
			slog.Any("error", err),
		)
		return
	}

	manager.uploadError = false
	if len(images) == 0 {
		manager.imageURLs = append([]string(nil), manager.placeholders...)
		return
	}

	manager.imageURLs = slice.Map(images, func(image content.ContentImage) string { return image.FileObject })
}

// ImageURLs returns the current gallery URLs.
func (manager *Manager) ImageURLs() []string {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return append([]string(nil), manager.imageURLs...)
}

// UploadError reports whether the last gallery fetch failed.
func (manager *Manager) UploadError() bool {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.uploadError
}

/*
Upload sends every staged file to the gallery of entityID.

Description: an empty entityID or an empty staged list returns false without a call. On success the
uploaded files leave the staged list and release their previews; on failure the
list is untouched and the error surfaces through State and a toast.

Returns:
  - []content.ContentImage: The created image records
  - bool
*/
func (manager *Manager) Upload(context stdctx.Context, entityID string) ([]content.ContentImage, bool) {
	pending := manager.Files()

	images, ok := mutation.Do(context, manager.runner, mutation.Operation{
		Name:     "filemanager.upload",
		Unscoped: true,
		Check: func() error {
			if entityID == "" {
				return apperr.Precondition("entity id is required")
			}
			if len(pending) == 0 {
				return apperr.Precondition("files must not be empty")
			}
			return nil
		},
		Keys: manager.galleryKeys(entityID),
	}, func(context stdctx.Context, _ string) ([]content.ContentImage, error) {
		return manager.service.UploadImages(context, entityID, pending, nil)
	})
	if !ok {
		return nil, false
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()

	uploaded := slice.Set(pending, content.UploadableFile.Key)
	manager.files = slice.Filter(manager.files, func(file content.UploadableFile) bool {
		if uploaded[file.Key()] {
			manager.previews.Revoke(file.PreviewURL)
			return false
		}
		return true
	})

	return images, true
}

// DeleteImage removes a remote image. An empty imageID returns false without a call.
func (manager *Manager) DeleteImage(context stdctx.Context, imageID string) bool {
	return manager.runner.Run(context, mutation.Operation{
		Name:     "filemanager.delete_image",
		Unscoped: true,
		Check: func() error {
			if imageID == "" {
				return apperr.Precondition("image id is required")
			}
			return nil
		},
		Keys: manager.galleryKeys(manager.entityID),
		Call: func(context stdctx.Context, _ string) error {
			return manager.service.DeleteImage(context, imageID)
		},
	})
}

func (manager *Manager) galleryKeys(entityID string) []querycache.KeyFunc {
	if manager.imagesKey == nil || entityID == "" {
		return nil
	}
	return []querycache.KeyFunc{func(string) querycache.Key { return manager.imagesKey(entityID) }}
}

// # Staged Files

/*
AddFiles stages JPEG and PNG files, skipping other types and files already staged.

Returns:
  - int: number of files newly staged
*/
func (manager *Manager) AddFiles(files ...content.UploadableFile) int {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	added := 0
	for _, file := range files {
		if !file.IsImage() {
			manager.logger.Debug("file_rejected",
				slog.String("name", file.Name),
				slog.String("type", file.Type),
			)
			continue
		}
		if manager.indexOf(file.Key()) >= 0 {
			continue
		}

		file.PreviewURL = manager.previews.Create(file.Name)
		manager.files = append(manager.files, file)
		added++
	}
	return added
}

// Files returns the staged files in insertion order.
func (manager *Manager) Files() []content.UploadableFile {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return append([]content.UploadableFile(nil), manager.files...)
}

// Remove unstages file by identity and releases its preview. It reports whether the file was staged.
func (manager *Manager) Remove(file content.UploadableFile) bool {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	index := manager.indexOf(file.Key())
	if index < 0 {
		return false
	}

	manager.previews.Revoke(manager.files[index].PreviewURL)
	manager.files = append(manager.files[:index], manager.files[index+1:]...)
	return true
}

// Close releases the previews of every staged file and clears the list.
func (manager *Manager) Close() {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	for _, file := range manager.files {
		manager.previews.Revoke(file.PreviewURL)
	}
	manager.files = nil
}

func (manager *Manager) indexOf(key string) int {
	for index, file := range manager.files {
		if file.Key() == key {
			return index
		}
	}
	return -1
}
