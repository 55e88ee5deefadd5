// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package devapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/civicdesk/internal/core/organization"
	"github.com/taibuivan/civicdesk/internal/platform/respond"
	requestutil "github.com/taibuivan/civicdesk/internal/platform/request"
	"github.com/taibuivan/civicdesk/internal/platform/validate"
)

// # Organization Handler

type organizationHandler struct {
	store  *Store
	logger *slog.Logger
}

func (handler *organizationHandler) routes(router chi.Router, writes func(http.Handler) http.Handler) {
	router.Get("/communities/organizations", handler.list)
	router.With(writes).Post("/communities/organizations", handler.create)
}

func (handler *organizationHandler) list(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.store.Organizations())
}

func (handler *organizationHandler) create(writer http.ResponseWriter, request *http.Request) {
	input := organization.CreateInput{}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("name", input.Name).MaxLen("name", input.Name, 255)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created := handler.store.CreateOrganization(input)

	handler.logger.InfoContext(request.Context(), "organization_created",
		slog.String("organization_id", created.ID),
		slog.String("name", created.Name),
	)
	respond.Created(writer, created)
}
