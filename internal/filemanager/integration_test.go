// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package filemanager_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicdesk/internal/core/content"
	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/core/organization"
	"github.com/taibuivan/civicdesk/internal/devapi"
	"github.com/taibuivan/civicdesk/internal/filemanager"
	"github.com/taibuivan/civicdesk/internal/mutation"
	"github.com/taibuivan/civicdesk/internal/platform/config"
	"github.com/taibuivan/civicdesk/internal/platform/credential"
	"github.com/taibuivan/civicdesk/internal/platform/httpclient"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
	"github.com/taibuivan/civicdesk/internal/platform/toast"
)

/*
TestManager_AgainstDevAPI uploads staged files over multipart, observes the gallery
refresh through the query cache and deletes an image again.
*/
func TestManager_AgainstDevAPI(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{"CIVIC_DEVAPI_RATE_LIMIT_RPS": "0"})
	require.NoError(t, err)

	store := devapi.NewStore()
	store.Seed(entity.Organization, "org-123", "Fridays for Future")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(devapi.NewServer(t.Context(), cfg, logger, devapi.Options{
		Store:    store,
		Verifier: devapi.NewVerifier("tok"),
	}).Handler())
	t.Cleanup(server.Close)

	client, err := httpclient.New(httpclient.Options{BaseURL: server.URL + "/v1", Credentials: credential.Static("tok")})
	require.NoError(t, err)
	service := organization.NewContentService(client)

	cache := querycache.New(querycache.Options{Logger: logger})
	ctx := context.Background()

	images, err := organization.GetImages(ctx, cache, service, "org-123")
	require.NoError(t, err)
	assert.Empty(t, images)

	var (
		mu        sync.Mutex
		refreshed [][]content.ContentImage
	)
	unsubscribe := cache.Subscribe(organization.ImagesKey("org-123"), func(value any, err error) {
		mu.Lock()
		defer mu.Unlock()
		if typed, ok := value.([]content.ContentImage); ok && err == nil {
			refreshed = append(refreshed, typed)
		}
	})
	defer unsubscribe()

	toasts := &toast.Recorder{}
	manager := filemanager.New("org-123", filemanager.Dependencies{
		Mutation:     mutation.Dependencies{Cache: cache, Notifier: toasts, Logger: logger},
		Service:      service,
		ImagesKey:    organization.ImagesKey,
		Placeholders: placeholders,
	})
	defer manager.Close()

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	added := manager.AddFiles(
		content.FileFromBytes("banner.png", "image/png", png, time.Unix(1700000000, 0)),
		content.FileFromBytes("notes.txt", "text/plain", []byte("hi"), time.Unix(1700000000, 0)),
	)
	require.Equal(t, 1, added)

	uploaded, ok := manager.Upload(ctx, "org-123")
	require.True(t, ok)
	require.Len(t, uploaded, 1)
	assert.Empty(t, manager.Files())
	assert.Empty(t, toasts.Errors())

	// Nothing staged any more: no request, no toast.
	_, ok = manager.Upload(ctx, "org-123")
	assert.False(t, ok)
	assert.Empty(t, toasts.Errors())
	assert.NoError(t, manager.Err())

	mu.Lock()
	require.Len(t, refreshed, 1)
	assert.Equal(t, uploaded[0].ID, refreshed[0][0].ID)
	mu.Unlock()

	manager.FetchImages(ctx)
	assert.Equal(t, []string{uploaded[0].FileObject}, manager.ImageURLs())

	require.True(t, manager.DeleteImage(ctx, uploaded[0].ID))
	manager.FetchImages(ctx)
	assert.Equal(t, placeholders, manager.ImageURLs())

	assert.False(t, manager.DeleteImage(ctx, uploaded[0].ID))
	assert.Equal(t, []string{"Image not found"}, toasts.Errors())
}
