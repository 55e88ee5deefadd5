// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/devapi"
	"github.com/taibuivan/civicdesk/internal/platform/config"
)

const token = "ctl-token"

type harness struct {
	store *devapi.Store
	cfg   *config.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	serverCfg, err := config.LoadFrom(map[string]string{"CIVIC_DEVAPI_RATE_LIMIT_RPS": "0"})
	require.NoError(t, err)

	store := devapi.NewStore()
	store.Seed(entity.Event, "evt-1", "Climate Strike")
	store.Seed(entity.Organization, "org-123", "Fridays for Future")

	server := devapi.NewServer(t.Context(), serverCfg, slog.New(slog.NewTextHandler(io.Discard, nil)), devapi.Options{
		Store:    store,
		Verifier: devapi.NewVerifier(token),
	})
	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)

	cfg, err := config.LoadFrom(map[string]string{
		"CIVIC_BACKEND_URL":    httpServer.URL + "/v1",
		"CIVIC_ACCESS_TOKEN":   token,
		"CIVIC_RATE_LIMIT_RPS": "0",
	})
	require.NoError(t, err)

	return &harness{store: store, cfg: cfg}
}

func (harness *harness) run(args ...string) (int, string, string) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(context.Background(), harness.cfg, args, stdout, stderr)
	return code, stdout.String(), stderr.String()
}

/*
TestRun_FAQCreate verifies the happy path, the metrics dump and the entity-id guard.
*/
func TestRun_FAQCreate(t *testing.T) {
	harness := newHarness(t)

	code, stdout, _ := harness.run("-metrics", "faq-create", "-kind", "event", "-id", "evt-1", "-question", "Where?", "-answer", "Town hall")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "faq created")
	assert.Contains(t, stdout, `civicdesk_mutations_total{operation="event.create_faq",outcome="success"} 1`)

	detail, err := harness.store.Detail(entity.Event, "evt-1")
	require.NoError(t, err)
	require.Len(t, detail.FAQEntries, 1)
	assert.Equal(t, "Where?", detail.FAQEntries[0].Question)

	code, _, stderr := harness.run("faq-create", "-kind", "event", "-question", "Q", "-answer", "A")
	assert.Equal(t, exitFailed, code)
	assert.NotContains(t, stderr, "error:")
}

/*
TestRun_FailureToast verifies that a backend rejection prints the toast and exits 1.
*/
func TestRun_FailureToast(t *testing.T) {
	harness := newHarness(t)

	code, _, stderr := harness.run("image-delete", "-kind", "organization", "-id", "org-123", "-image", "img-missing")
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stderr, "error: Image not found")
}

/*
TestRun_LinksReplace verifies repeated -link flags and clearing with none.
*/
func TestRun_LinksReplace(t *testing.T) {
	harness := newHarness(t)

	code, stdout, _ := harness.run("links-replace", "-id", "org-123",
		"-link", "https://example.org|Website", "-link", "https://mastodon.social/@fff|Mastodon")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "2 social links saved")

	detail, err := harness.store.Detail(entity.Organization, "org-123")
	require.NoError(t, err)
	require.Len(t, detail.SocialLinks, 2)
	assert.Equal(t, "Mastodon", detail.SocialLinks[1].Label)

	code, _, _ = harness.run("links-replace", "-id", "org-123")
	require.Equal(t, exitOK, code)

	detail, err = harness.store.Detail(entity.Organization, "org-123")
	require.NoError(t, err)
	assert.Empty(t, detail.SocialLinks)
}

/*
TestRun_ImagesUpload verifies that only image files are uploaded through the file manager.
*/
func TestRun_ImagesUpload(t *testing.T) {
	harness := newHarness(t)
	directory := t.TempDir()

	image := filepath.Join(directory, "banner.png")
	require.NoError(t, os.WriteFile(image, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o600))
	notes := filepath.Join(directory, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("hello"), 0o600))

	code, stdout, _ := harness.run("images-upload", "-id", "org-123", image, notes)
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "skipped "+notes)
	assert.Contains(t, stdout, "banner.png")

	images, err := harness.store.Images(entity.Organization, "org-123")
	require.NoError(t, err)
	assert.Len(t, images, 1)
}

/*
TestRun_OrgCreate verifies organization creation and the name validation.
*/
func TestRun_OrgCreate(t *testing.T) {
	harness := newHarness(t)

	code, stdout, _ := harness.run("org-create", "-name", "Tenants Union")
	require.Equal(t, exitOK, code)
	assert.NotEmpty(t, stdout)
	assert.Len(t, harness.store.Organizations(), 1)

	code, _, stderr := harness.run("org-create")
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stderr, "error:")
}

/*
TestRun_Usage verifies exit status 2 for usage errors.
*/
func TestRun_Usage(t *testing.T) {
	harness := newHarness(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no_command", nil},
		{"unknown_command", []string{"explode"}},
		{"bad_flag", []string{"faq-create", "-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := harness.run(tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Contains(t, strings.ToLower(stderr), "usage")
		})
	}
}

/*
TestRun_Refresh verifies that refreshing without a bus succeeds and requires an id.
*/
func TestRun_Refresh(t *testing.T) {
	harness := newHarness(t)

	code, stdout, _ := harness.run("refresh", "-kind", "group", "-id", "grp-1")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "refreshed")

	code, _, _ = harness.run("refresh", "-kind", "group")
	assert.Equal(t, exitFailed, code)
}

/*
TestRun_Watch verifies that a refresh published by one civicctl process is
refetched by a watching one over the Redis bus.
*/
func TestRun_Watch(t *testing.T) {
	harness := newHarness(t)

	code, _, stderr := harness.run("watch", "-id", "org-123")
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stderr, "CIVIC_REDIS_URL")

	server := miniredis.RunT(t)
	harness.cfg.RedisURL = "redis://" + server.Addr()
	channel := harness.cfg.RedisChannel

	watchOut := &bytes.Buffer{}
	done := make(chan int, 1)
	go func() {
		done <- run(t.Context(), harness.cfg, []string{"watch", "-id", "org-123", "-count", "2"}, watchOut, io.Discard)
	}()
	require.Eventually(t, func() bool {
		return server.PubSubNumSub(channel)[channel] == 1
	}, 2*time.Second, 10*time.Millisecond)

	code, stdout, _ := harness.run("refresh", "-id", "org-123")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "refreshed")

	select {
	case code := <-done:
		assert.Equal(t, exitOK, code)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after two refreshes")
	}

	assert.Contains(t, watchOut.String(), "watching 2 queries of org-123")
	assert.Contains(t, watchOut.String(), "refreshed organization:detail:org-123")
	assert.Contains(t, watchOut.String(), "refreshed organization:images:org-123")
}
