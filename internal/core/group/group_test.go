// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package group_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicdesk/internal/core/content"
	"github.com/taibuivan/civicdesk/internal/core/group"
	"github.com/taibuivan/civicdesk/internal/mutation/mutationtest"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
)

type imageService struct {
	sequences []int
	uploads   int
}

func (service *imageService) UpdateImage(context.Context, string, content.ContentImage) error {
	return nil
}

func (service *imageService) UploadImages(_ context.Context, _ string, files []content.UploadableFile, sequences []int) ([]content.ContentImage, error) {
	service.uploads++
	service.sequences = sequences
	return make([]content.ContentImage, len(files)), nil
}

func (service *imageService) UploadIcon(context.Context, string, content.UploadableFile) (*content.ContentImage, error) {
	return &content.ContentImage{}, nil
}

/*
TestKeys verifies the group key formats.
*/
func TestKeys(t *testing.T) {
	assert.Equal(t, querycache.Key("group:detail:group-123"), group.DetailKey("group-123"))
	assert.Equal(t, querycache.Key("group:images:group-123"), group.ImagesKey("group-123"))
}

/*
TestImageMutations verifies gallery refreshes and the images-key RefreshEntityData of groups.
*/
func TestImageMutations(t *testing.T) {
	ctx := context.Background()
	harness := mutationtest.New("group-123")
	service := &imageService{}
	images := group.NewImageMutations(harness.Ref, harness.Deps, service)

	files := []content.UploadableFile{content.FileFromBytes("a.png", "image/png", []byte("a"), time.Now())}

	uploaded, ok := images.UploadImages(ctx, files, nil)
	assert.True(t, ok)
	assert.Len(t, uploaded, 1)
	assert.Nil(t, service.sequences)

	_, ok = images.UploadImages(ctx, files, []int{3})
	assert.True(t, ok)
	assert.Equal(t, []int{3}, service.sequences)

	require.NoError(t, images.RefreshEntityData(ctx))

	assert.Equal(t, []querycache.Key{
		group.ImagesKey("group-123"),
		group.ImagesKey("group-123"),
		group.ImagesKey("group-123"),
	}, harness.Cache.Keys())
}

type textService struct{ textID string }

func (service *textService) UpdateTexts(_ context.Context, _ string, textID string, _ content.TextInput) error {
	service.textID = textID
	return nil
}

/*
TestTextMutations verifies that text updates refresh the group detail.
*/
func TestTextMutations(t *testing.T) {
	harness := mutationtest.New("group-123")
	service := &textService{}
	texts := group.NewTextMutations(harness.Ref, harness.Deps, service)

	assert.True(t, texts.UpdateTexts(context.Background(), content.TextInput{GetInvolved: "Join us"}, "text-9"))
	assert.Equal(t, "text-9", service.textID)
	assert.Equal(t, []querycache.Key{group.DetailKey("group-123")}, harness.Cache.Keys())
}
