// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package organization

import (
	stdctx "context"
	"fmt"

	"github.com/taibuivan/civicdesk/internal/core/content"
	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/platform/httpclient"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
	"github.com/taibuivan/civicdesk/internal/platform/validate"
)

const pathOrganizations = "/communities/organizations/"

// # Service Layer

// Service performs the organization-level calls. Sub-resources use [content.Service].
type Service struct {
	client *httpclient.Client
}

func NewService(client *httpclient.Client) *Service {
	return &Service{client: client}
}

// NewContentService returns the sub-resource service for organizations.
func NewContentService(client *httpclient.Client) *content.Service {
	return content.NewService(client, entity.Organization)
}

/*
CreateOrganization registers a new organization.

Parameters:
  - context: context.Context
  - input: CreateInput (name is required)

Returns:
  - *Organization: The created organization
  - error: VALIDATION_ERROR or backend errors
*/
func (service *Service) CreateOrganization(context stdctx.Context, input CreateInput) (*Organization, error) {
	validator := &validate.Validator{}
	validator.Required("name", input.Name).MaxLen("name", input.Name, 255)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	created := &Organization{}
	if err := service.client.Post(context, pathOrganizations, input, created); err != nil {
		return nil, fmt.Errorf("organization create: %w", err)
	}
	return created, nil
}

// ListOrganizations returns every organization visible to the caller.
func (service *Service) ListOrganizations(context stdctx.Context) ([]Organization, error) {
	var organizations []Organization
	if err := service.client.Get(context, pathOrganizations, &organizations); err != nil {
		return nil, fmt.Errorf("organization list: %w", err)
	}
	return organizations, nil
}

// # Queries

// Get reads the organization detail through the query cache.
func Get(context stdctx.Context, cache *querycache.Cache, service *content.Service, organizationID string) (*content.Detail, error) {
	return querycache.Get(context, cache, DetailKey(organizationID), func(context stdctx.Context) (*content.Detail, error) {
		return service.GetDetail(context, organizationID)
	})
}

// GetImages reads the organization gallery through the query cache.
func GetImages(context stdctx.Context, cache *querycache.Cache, service *content.Service, organizationID string) ([]content.ContentImage, error) {
	return querycache.Get(context, cache, ImagesKey(organizationID), func(context stdctx.Context) ([]content.ContentImage, error) {
		return service.ListImages(context, organizationID)
	})
}

// List reads the organization list through the query cache.
func List(context stdctx.Context, cache *querycache.Cache, service *Service) ([]Organization, error) {
	return querycache.Get(context, cache, ListKey(), service.ListOrganizations)
}
