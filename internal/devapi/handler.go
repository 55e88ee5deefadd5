// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package devapi

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/taibuivan/civicdesk/internal/core/content"
	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/platform/apperr"
	"github.com/taibuivan/civicdesk/internal/platform/respond"
	requestutil "github.com/taibuivan/civicdesk/internal/platform/request"
	"github.com/taibuivan/civicdesk/internal/platform/validate"
)

// maxJSONBytes caps JSON request bodies.
const maxJSONBytes = 1 << 20

// # Content Handler

// contentHandler serves the sub-resource endpoints of one entity kind.
type contentHandler struct {
	kind   entity.Kind
	store  *Store
	logger *slog.Logger
}

/*
routes registers the endpoints of the kind on router.

Paths are registered under the kind root without trailing slashes; the server strips them.

Routes:
  - POST   /<kind>_faqs, PUT /<kind>_faqs/reorder, PUT|DELETE /<kind>_faqs/{itemID}
  - POST   /<kind>_resources, PUT /<kind>_resources/reorder, PUT|DELETE /<kind>_resources/{itemID}
  - POST   /<kind>_social_links, PUT|DELETE /<kind>_social_links/{itemID}
  - PUT    /<kind>_texts/{itemID}
  - GET    /<plural>/{entityID}, PUT /<plural>/{entityID}/social_links
  - GET    /<plural>/{entityID}/images, PUT /<plural>/{entityID}/images/{imageID}
*/
func (handler *contentHandler) routes(router chi.Router, writes func(http.Handler) http.Handler) {
	root := handler.kind.Root()
	collection := func(resource string) string {
		return root + "/" + string(handler.kind) + "_" + resource
	}
	entityPath := root + "/" + handler.kind.Plural() + "/{entityID}"

	router.Get(entityPath, handler.getDetail)
	router.Get(entityPath+"/"+content.ResourceImages, handler.listImages)

	router.Group(func(protected chi.Router) {
		protected.Use(writes)

		protected.Post(collection(content.ResourceFAQs), handler.createFAQ)
		protected.Put(collection(content.ResourceFAQs)+"/reorder", handler.reorder(content.ResourceFAQs))
		protected.Put(collection(content.ResourceFAQs)+"/{itemID}", handler.updateFAQ)
		protected.Delete(collection(content.ResourceFAQs)+"/{itemID}", handler.deleteFAQ)

		protected.Post(collection(content.ResourceResources), handler.createResource)
		protected.Put(collection(content.ResourceResources)+"/reorder", handler.reorder(content.ResourceResources))
		protected.Put(collection(content.ResourceResources)+"/{itemID}", handler.updateResource)
		protected.Delete(collection(content.ResourceResources)+"/{itemID}", handler.deleteResource)

		protected.Post(collection(content.ResourceSocialLinks), handler.createSocialLinks)
		protected.Put(collection(content.ResourceSocialLinks)+"/{itemID}", handler.updateSocialLink)
		protected.Delete(collection(content.ResourceSocialLinks)+"/{itemID}", handler.deleteSocialLink)

		protected.Put(collection(content.ResourceTexts)+"/{itemID}", handler.updateText)

		protected.Put(entityPath+"/"+content.ResourceSocialLinks, handler.replaceSocialLinks)
		protected.Put(entityPath+"/"+content.ResourceImages+"/{imageID}", handler.updateImage)
	})
}

// # Detail

func (handler *contentHandler) getDetail(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.store.Detail(handler.kind, requestutil.Param(request, "entityID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

// # FAQ Entries

func (handler *contentHandler) createFAQ(writer http.ResponseWriter, request *http.Request) {
	input := content.FAQInput{}
	owner, err := decodeOwned(request, handler.kind, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateFAQ(input.Question, input.Answer); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.store.CreateFAQ(handler.kind, owner, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.logger.InfoContext(request.Context(), "faq_created",
		slog.String("kind", handler.kind.String()),
		slog.String("entity_id", owner),
		slog.String("faq_id", entry.ID),
	)
	respond.Created(writer, entry)
}

func (handler *contentHandler) updateFAQ(writer http.ResponseWriter, request *http.Request) {
	entry := content.FAQEntry{}
	if _, err := decodeOwned(request, handler.kind, &entry); err != nil {
		respond.Error(writer, request, err)
		return
	}
	entry.ID = requestutil.Param(request, "itemID")

	if err := validateFAQ(entry.Question, entry.Answer); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.store.UpdateFAQ(handler.kind, entry); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

func (handler *contentHandler) deleteFAQ(writer http.ResponseWriter, request *http.Request) {
	if err := handler.store.DeleteFAQ(handler.kind, requestutil.Param(request, "itemID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func validateFAQ(question, answer string) error {
	validator := &validate.Validator{}
	validator.Required(content.FieldQuestion, question).Required(content.FieldAnswer, answer)
	return validator.Err()
}

// # Resources

func (handler *contentHandler) createResource(writer http.ResponseWriter, request *http.Request) {
	input := content.ResourceInput{}
	owner, err := decodeOwned(request, handler.kind, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateResource(input.Name, input.URL); err != nil {
		respond.Error(writer, request, err)
		return
	}

	resource, err := handler.store.CreateResource(handler.kind, owner, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, resource)
}

func (handler *contentHandler) updateResource(writer http.ResponseWriter, request *http.Request) {
	resource := content.Resource{}
	if _, err := decodeOwned(request, handler.kind, &resource); err != nil {
		respond.Error(writer, request, err)
		return
	}
	resource.ID = requestutil.Param(request, "itemID")

	if err := validateResource(resource.Name, resource.URL); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.store.UpdateResource(handler.kind, resource); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, resource)
}

func (handler *contentHandler) deleteResource(writer http.ResponseWriter, request *http.Request) {
	if err := handler.store.DeleteResource(handler.kind, requestutil.Param(request, "itemID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func validateResource(name, address string) error {
	validator := &validate.Validator{}
	validator.Required(content.FieldName, name).Required(content.FieldURL, address).URL(content.FieldURL, address)
	return validator.Err()
}

// # Ordering

type reorderBody struct {
	Items []struct {
		ID    string `json:"id"`
		Order int    `json:"order"`
	} `json:"items"`
}

func (handler *contentHandler) reorder(resource string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		body := reorderBody{}
		owner, err := decodeOwned(request, handler.kind, &body)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		positions := make(map[string]int, len(body.Items))
		for _, item := range body.Items {
			positions[item.ID] = item.Order
		}

		if err := handler.store.Reorder(handler.kind, resource, owner, positions); err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.NoContent(writer)
	}
}

// # Social Links

type linksBody struct {
	Links []content.SocialLinkInput `json:"links"`
}

func (handler *contentHandler) createSocialLinks(writer http.ResponseWriter, request *http.Request) {
	body := linksBody{}
	owner, err := decodeOwned(request, handler.kind, &body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.NotEmpty("links", len(body.Links))
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateLinks(body.Links); err != nil {
		respond.Error(writer, request, err)
		return
	}

	links, err := handler.store.CreateSocialLinks(handler.kind, owner, body.Links)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, links)
}

func (handler *contentHandler) updateSocialLink(writer http.ResponseWriter, request *http.Request) {
	input := content.SocialLinkInput{}
	if _, err := decodeOwned(request, handler.kind, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateLinks([]content.SocialLinkInput{input}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	link := content.SocialLink{
		ID: requestutil.Param(request, "itemID"), Link: input.Link, Label: input.Label, Order: input.Order,
	}
	if err := handler.store.UpdateSocialLink(handler.kind, link); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, link)
}

func (handler *contentHandler) deleteSocialLink(writer http.ResponseWriter, request *http.Request) {
	if err := handler.store.DeleteSocialLink(handler.kind, requestutil.Param(request, "itemID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *contentHandler) replaceSocialLinks(writer http.ResponseWriter, request *http.Request) {
	body := linksBody{}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateLinks(body.Links); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entityID := requestutil.Param(request, "entityID")
	links, err := handler.store.ReplaceSocialLinks(handler.kind, entityID, body.Links)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.logger.InfoContext(request.Context(), "social_links_replaced",
		slog.String("kind", handler.kind.String()),
		slog.String("entity_id", entityID),
		slog.Int("count", len(links)),
	)
	respond.OK(writer, links)
}

func validateLinks(links []content.SocialLinkInput) error {
	validator := &validate.Validator{}
	for _, link := range links {
		validator.Required(content.FieldLink, link.Link).URL(content.FieldLink, link.Link)
	}
	return validator.Err()
}

// # Texts

func (handler *contentHandler) updateText(writer http.ResponseWriter, request *http.Request) {
	input := content.TextInput{}
	if _, err := decodeOwned(request, handler.kind, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	text := content.TextBlock{
		ID:             requestutil.Param(request, "itemID"),
		ISO:            input.ISO,
		Primary:        input.Primary,
		Description:    input.Description,
		GetInvolved:    input.GetInvolved,
		DonationPrompt: input.DonationPrompt,
	}
	if err := handler.store.UpdateText(handler.kind, text); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, text)
}

// # Gallery

func (handler *contentHandler) listImages(writer http.ResponseWriter, request *http.Request) {
	images, err := handler.store.Images(handler.kind, requestutil.Param(request, "entityID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, images)
}

func (handler *contentHandler) updateImage(writer http.ResponseWriter, request *http.Request) {
	image := content.ContentImage{}
	if err := requestutil.DecodeJSON(request, &image); err != nil {
		respond.Error(writer, request, err)
		return
	}
	image.ID = requestutil.Param(request, "imageID")

	if err := handler.store.UpdateImage(handler.kind, requestutil.Param(request, "entityID"), image); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, image)
}

// # Decoding

/*
decodeOwned decodes a JSON body into target and returns its owner reference.

Parameters:
  - request: *http.Request
  - kind: entity.Kind (names the owner field)
  - target: any

Returns:
  - string: The owning entity id
  - error: VALIDATION_ERROR for malformed bodies or a missing owner
*/
func decodeOwned(request *http.Request, kind entity.Kind, target any) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(request.Body, maxJSONBytes))
	if err != nil {
		return "", validate.ErrInvalidJSON
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return "", validate.ErrInvalidJSON
	}

	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", validate.ErrInvalidJSON
	}

	owner, _ := fields[kind.OwnerField()].(string)
	if owner == "" {
		return "", validate.RequiredError(kind.OwnerField(), "is required")
	}
	return owner, nil
}

// notFound answers unknown routes with the error envelope.
func notFound(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.NotFound("Endpoint"))
}
