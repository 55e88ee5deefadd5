// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/civicdesk/internal/core/entity"
)

/*
TestKind_Paths verifies the REST layout derived for each kind.
*/
func TestKind_Paths(t *testing.T) {
	tests := []struct {
		kind       entity.Kind
		collection string
		item       string
		entity     string
		upload     string
	}{
		{entity.Event, "/events/event_faqs/", "/events/event_faqs/f-1/", "/events/events/e-1/", "event_id"},
		{entity.Group, "/communities/group_faqs/", "/communities/group_faqs/f-1/", "/communities/groups/e-1/", "group_id"},
		{entity.Organization, "/communities/organization_faqs/", "/communities/organization_faqs/f-1/", "/communities/organizations/e-1/", "organization_id"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.collection, tt.kind.CollectionPath("faqs"))
			assert.Equal(t, tt.item, tt.kind.ItemPath("faqs", "f-1"))
			assert.Equal(t, tt.entity, tt.kind.EntityPath("e-1"))
			assert.Equal(t, tt.upload, tt.kind.UploadField())
		})
	}
}

/*
TestParse verifies kind name validation.
*/
func TestParse(t *testing.T) {
	kind, err := entity.Parse("group")
	assert.NoError(t, err)
	assert.Equal(t, entity.Group, kind)

	_, err = entity.Parse("campaign")
	assert.Error(t, err)
}
