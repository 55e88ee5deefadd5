// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	stdctx "context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/platform/apperr"
	"github.com/taibuivan/civicdesk/internal/platform/httpclient"
	"github.com/taibuivan/civicdesk/internal/platform/validate"
)

// # Service Layer

// Service performs the sub-resource calls of one entity kind.
//
// Every method issues exactly one backend request (after local argument checks)
// and returns an error wrapping an [apperr.AppError] on failure.
type Service struct {
	client *httpclient.Client
	kind   entity.Kind
}

// NewService constructs a [Service] for kind.
func NewService(client *httpclient.Client, kind entity.Kind) *Service {
	return &Service{client: client, kind: kind}
}

/*
GetDetail fetches an entity together with its sub-resources.

Parameters:
  - context: stdctx.Context
  - entityID: string

Returns:
  - *Detail: The entity read model
  - error: NOT_FOUND or transport errors
*/
func (service *Service) GetDetail(context stdctx.Context, entityID string) (*Detail, error) {
	if err := requireIDs(map[string]string{"entity_id": entityID}); err != nil {
		return nil, err
	}

	detail := &Detail{}
	if err := service.client.Get(context, service.kind.EntityPath(entityID), detail); err != nil {
		return nil, service.wrap("get detail", err)
	}
	return detail, nil
}

// # Helpers

// owned encodes payload as a JSON object and adds the owner reference of the kind.
func (service *Service) owned(entityID string, payload any) (map[string]any, error) {
	body := map[string]any{}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("content: encode payload: %w", err))
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, apperr.Internal(fmt.Errorf("content: payload is not an object: %w", err))
		}
	}

	body[service.kind.OwnerField()] = entityID
	return body, nil
}

func (service *Service) wrap(operation string, err error) error {
	return fmt.Errorf("%s %s: %w", service.kind, operation, err)
}

// requireIDs rejects empty identifiers before a path is built from them.
func requireIDs(ids map[string]string) error {
	validator := &validate.Validator{}
	for field, value := range ids {
		validator.Required(field, value)
	}
	return validator.Err()
}
