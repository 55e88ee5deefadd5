// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package organization manages civic organizations on the client side.

# Core Responsibility

  - Keys: The detail, gallery and list queries of organizations.
  - Content: FAQ, resources, social links, texts and images through the shared sets.
  - Lifecycle: Creating an organization and refreshing the organization list.

Gallery writes refresh the images query, icon uploads refresh the detail query.
*/
package organization

import (
	"time"

	"github.com/taibuivan/civicdesk/internal/core/content"
	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/platform/constants"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
)

// # Core Entities

// Organization is the summary returned by the organization endpoints.
type Organization struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Tagline      string    `json:"tagline,omitempty"`
	Location     string    `json:"location,omitempty"`
	Topics       []string  `json:"topics,omitempty"`
	CreationDate time.Time `json:"creation_date"`
}

// CreateInput is the payload of a new organization.
type CreateInput struct {
	Name        string   `json:"name"`
	Tagline     string   `json:"tagline,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	Topics      []string `json:"topics,omitempty"`
}

// # Query Keys

func DetailKey(organizationID string) querycache.Key {
	return querycache.Compose(constants.CachePrefixOrganization, constants.CacheScopeDetail, organizationID)
}

func ImagesKey(organizationID string) querycache.Key {
	return querycache.Compose(constants.CachePrefixOrganization, constants.CacheScopeImages, organizationID)
}

// ListKey identifies the organization list query. It does not depend on an id.
func ListKey() querycache.Key {
	return querycache.Compose(constants.CachePrefixOrganization, constants.CacheScopeList)
}

func binding() content.Binding {
	return content.Binding{
		Kind:      entity.Organization,
		DetailKey: DetailKey,
		ImagesKey: ImagesKey,
	}
}
