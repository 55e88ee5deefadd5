// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package devapi

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/civicdesk/internal/core/content"
	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/core/organization"
	"github.com/taibuivan/civicdesk/internal/platform/apperr"
	"github.com/taibuivan/civicdesk/pkg/slice"
	"github.com/taibuivan/civicdesk/pkg/uuid"
)

// # In-Memory Store

type record struct {
	detail content.Detail
	images []content.ContentImage
}

// Store keeps every entity of the development backend in memory. It is safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	entities      map[entity.Kind]map[string]*record
	organizations []organization.Organization
	imageOwners   map[string]*record
	currentTime   func() time.Time
}

// NewStore returns an empty [Store].
func NewStore() *Store {
	store := &Store{
		entities:    make(map[entity.Kind]map[string]*record),
		imageOwners: make(map[string]*record),
		currentTime: time.Now,
	}
	for _, kind := range entity.Kinds {
		store.entities[kind] = make(map[string]*record)
	}
	return store
}

// Seed registers an entity. Seeding an existing id resets its name only.
func (store *Store) Seed(kind entity.Kind, id, name string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.seedLocked(kind, id, name)
}

func (store *Store) seedLocked(kind entity.Kind, id, name string) *record {
	if existing, found := store.entities[kind][id]; found {
		existing.detail.Name = name
		return existing
	}

	created := &record{detail: content.Detail{
		ID:          id,
		Name:        name,
		FAQEntries:  []content.FAQEntry{},
		Resources:   []content.Resource{},
		SocialLinks: []content.SocialLink{},
		Texts:       []content.TextBlock{{ID: uuid.New(), ISO: "en", Primary: true}},
	}}
	store.entities[kind][id] = created
	return created
}

// Detail returns a copy of the entity read model.
func (store *Store) Detail(kind entity.Kind, id string) (content.Detail, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	item, err := store.find(kind, id)
	if err != nil {
		return content.Detail{}, err
	}

	detail := item.detail
	detail.FAQEntries = slices.Clone(detail.FAQEntries)
	detail.Resources = slices.Clone(detail.Resources)
	detail.SocialLinks = slices.Clone(detail.SocialLinks)
	detail.Texts = slices.Clone(detail.Texts)
	return detail, nil
}

// # Entity Writes

// update runs fn on the entity under the write lock.
func (store *Store) update(kind entity.Kind, id string, fn func(item *record) error) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	item, err := store.find(kind, id)
	if err != nil {
		return err
	}
	return fn(item)
}

// updateOwnerOf runs fn on the entity owning a sub-resource, found with match.
func (store *Store) updateOwnerOf(kind entity.Kind, resource string, match func(item *record) bool, fn func(item *record)) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, item := range store.entities[kind] {
		if match(item) {
			fn(item)
			return nil
		}
	}
	return apperr.NotFound(resource)
}

func (store *Store) find(kind entity.Kind, id string) (*record, error) {
	item, found := store.entities[kind][id]
	if !found {
		return nil, apperr.NotFound(kind.String())
	}
	return item, nil
}

// # FAQ Entries

func (store *Store) CreateFAQ(kind entity.Kind, entityID string, input content.FAQInput) (content.FAQEntry, error) {
	entry := content.FAQEntry{
		ID: uuid.New(), ISO: input.ISO, Primary: input.Primary,
		Question: input.Question, Answer: input.Answer, Order: input.Order,
	}
	err := store.update(kind, entityID, func(item *record) error {
		item.detail.FAQEntries = append(item.detail.FAQEntries, entry)
		sortByOrder(item.detail.FAQEntries, func(entry content.FAQEntry) int { return entry.Order })
		return nil
	})
	return entry, err
}

func (store *Store) UpdateFAQ(kind entity.Kind, entry content.FAQEntry) error {
	return store.updateOwnerOf(kind, "FAQ entry",
		func(item *record) bool { return indexByID(item.detail.FAQEntries, entry.ID, faqID) >= 0 },
		func(item *record) {
			item.detail.FAQEntries[indexByID(item.detail.FAQEntries, entry.ID, faqID)] = entry
			sortByOrder(item.detail.FAQEntries, func(entry content.FAQEntry) int { return entry.Order })
		})
}

func (store *Store) DeleteFAQ(kind entity.Kind, id string) error {
	return store.updateOwnerOf(kind, "FAQ entry",
		func(item *record) bool { return indexByID(item.detail.FAQEntries, id, faqID) >= 0 },
		func(item *record) {
			index := indexByID(item.detail.FAQEntries, id, faqID)
			item.detail.FAQEntries = slices.Delete(item.detail.FAQEntries, index, index+1)
		})
}

// # Resources

func (store *Store) CreateResource(kind entity.Kind, entityID string, input content.ResourceInput) (content.Resource, error) {
	resource := content.Resource{
		ID: uuid.New(), Name: input.Name, Description: input.Description,
		URL: input.URL, Order: input.Order, Topics: input.Topics,
	}
	err := store.update(kind, entityID, func(item *record) error {
		item.detail.Resources = append(item.detail.Resources, resource)
		sortByOrder(item.detail.Resources, func(resource content.Resource) int { return resource.Order })
		return nil
	})
	return resource, err
}

func (store *Store) UpdateResource(kind entity.Kind, resource content.Resource) error {
	return store.updateOwnerOf(kind, "Resource",
		func(item *record) bool { return indexByID(item.detail.Resources, resource.ID, resourceID) >= 0 },
		func(item *record) {
			item.detail.Resources[indexByID(item.detail.Resources, resource.ID, resourceID)] = resource
			sortByOrder(item.detail.Resources, func(resource content.Resource) int { return resource.Order })
		})
}

func (store *Store) DeleteResource(kind entity.Kind, id string) error {
	return store.updateOwnerOf(kind, "Resource",
		func(item *record) bool { return indexByID(item.detail.Resources, id, resourceID) >= 0 },
		func(item *record) {
			index := indexByID(item.detail.Resources, id, resourceID)
			item.detail.Resources = slices.Delete(item.detail.Resources, index, index+1)
		})
}

// # Ordering

// Reorder applies new positions to the FAQ entries or resources of an entity.
// Unknown ids are rejected before anything changes.
func (store *Store) Reorder(kind entity.Kind, resource, entityID string, positions map[string]int) error {
	return store.update(kind, entityID, func(item *record) error {
		switch resource {
		case content.ResourceFAQs:
			return reorder(item.detail.FAQEntries, positions, faqID,
				func(entry content.FAQEntry) int { return entry.Order },
				func(entry *content.FAQEntry, order int) { entry.Order = order })
		case content.ResourceResources:
			return reorder(item.detail.Resources, positions, resourceID,
				func(resource content.Resource) int { return resource.Order },
				func(resource *content.Resource, order int) { resource.Order = order })
		}
		return apperr.NotFound(resource)
	})
}

// # Social Links

func (store *Store) CreateSocialLinks(kind entity.Kind, entityID string, inputs []content.SocialLinkInput) ([]content.SocialLink, error) {
	links := slice.Map(inputs, newSocialLink)
	err := store.update(kind, entityID, func(item *record) error {
		item.detail.SocialLinks = append(item.detail.SocialLinks, links...)
		sortByOrder(item.detail.SocialLinks, func(link content.SocialLink) int { return link.Order })
		return nil
	})
	return links, err
}

func (store *Store) UpdateSocialLink(kind entity.Kind, link content.SocialLink) error {
	return store.updateOwnerOf(kind, "Social link",
		func(item *record) bool { return indexByID(item.detail.SocialLinks, link.ID, linkID) >= 0 },
		func(item *record) {
			item.detail.SocialLinks[indexByID(item.detail.SocialLinks, link.ID, linkID)] = link
			sortByOrder(item.detail.SocialLinks, func(link content.SocialLink) int { return link.Order })
		})
}

func (store *Store) DeleteSocialLink(kind entity.Kind, id string) error {
	return store.updateOwnerOf(kind, "Social link",
		func(item *record) bool { return indexByID(item.detail.SocialLinks, id, linkID) >= 0 },
		func(item *record) {
			index := indexByID(item.detail.SocialLinks, id, linkID)
			item.detail.SocialLinks = slices.Delete(item.detail.SocialLinks, index, index+1)
		})
}

// ReplaceSocialLinks swaps the full list; an empty input clears it.
func (store *Store) ReplaceSocialLinks(kind entity.Kind, entityID string, inputs []content.SocialLinkInput) ([]content.SocialLink, error) {
	links := slice.Map(inputs, newSocialLink)
	if links == nil {
		links = []content.SocialLink{}
	}
	sortByOrder(links, func(link content.SocialLink) int { return link.Order })

	err := store.update(kind, entityID, func(item *record) error {
		item.detail.SocialLinks = links
		return nil
	})
	return links, err
}

func newSocialLink(input content.SocialLinkInput) content.SocialLink {
	return content.SocialLink{ID: uuid.New(), Link: input.Link, Label: input.Label, Order: input.Order}
}

// # Texts

func (store *Store) UpdateText(kind entity.Kind, text content.TextBlock) error {
	return store.updateOwnerOf(kind, "Text",
		func(item *record) bool { return indexByID(item.detail.Texts, text.ID, textID) >= 0 },
		func(item *record) {
			index := indexByID(item.detail.Texts, text.ID, textID)
			if text.ISO == "" {
				text.ISO = item.detail.Texts[index].ISO
			}
			item.detail.Texts[index] = text
		})
}

// # Images

// AddImages appends images to the gallery; sequences (optional) set their positions.
func (store *Store) AddImages(kind entity.Kind, entityID string, fileNames []string, sequences []int) ([]content.ContentImage, error) {
	var created []content.ContentImage

	err := store.update(kind, entityID, func(item *record) error {
		for index, name := range fileNames {
			sequence := len(item.images)
			if index < len(sequences) {
				sequence = sequences[index]
			}
			image := store.newImage(name, sequence)
			item.images = append(item.images, image)
			store.imageOwners[image.ID] = item
			created = append(created, image)
		}
		sortByOrder(item.images, func(image content.ContentImage) int { return image.SequenceIndex })
		return nil
	})
	return created, err
}

// SetIcon stores an icon image and points the entity at it.
func (store *Store) SetIcon(kind entity.Kind, entityID, fileName string) (content.ContentImage, error) {
	image := store.newImage(fileName, 0)
	err := store.update(kind, entityID, func(item *record) error {
		item.detail.IconURL = image.FileObject
		return nil
	})
	return image, err
}

func (store *Store) Images(kind entity.Kind, entityID string) ([]content.ContentImage, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	item, err := store.find(kind, entityID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(item.images), nil
}

func (store *Store) UpdateImage(kind entity.Kind, entityID string, image content.ContentImage) error {
	return store.update(kind, entityID, func(item *record) error {
		index := indexByID(item.images, image.ID, imageID)
		if index < 0 {
			return apperr.NotFound("Image")
		}
		item.images[index].SequenceIndex = image.SequenceIndex
		sortByOrder(item.images, func(image content.ContentImage) int { return image.SequenceIndex })
		return nil
	})
}

// DeleteImage removes an image from whichever gallery holds it.
func (store *Store) DeleteImage(id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	owner, found := store.imageOwners[id]
	if !found {
		return apperr.NotFound("Image")
	}
	index := indexByID(owner.images, id, imageID)
	owner.images = slices.Delete(owner.images, index, index+1)
	delete(store.imageOwners, id)
	return nil
}

func (store *Store) newImage(fileName string, sequence int) content.ContentImage {
	id := uuid.New()
	return content.ContentImage{
		ID:            id,
		FileObject:    "/media/images/" + id + "/" + fileName,
		CreationDate:  store.currentTime().UTC(),
		SequenceIndex: sequence,
	}
}

// # Organizations

func (store *Store) CreateOrganization(input organization.CreateInput) organization.Organization {
	created := organization.Organization{
		ID:           uuid.New(),
		Name:         input.Name,
		Tagline:      input.Tagline,
		Location:     input.Location,
		Topics:       input.Topics,
		CreationDate: store.currentTime().UTC(),
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	store.organizations = append(store.organizations, created)
	item := store.seedLocked(entity.Organization, created.ID, created.Name)
	item.detail.Tagline = created.Tagline
	return created
}

func (store *Store) Organizations() []organization.Organization {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return slices.Clone(store.organizations)
}

// # Helpers

func faqID(entry content.FAQEntry) string         { return entry.ID }
func resourceID(resource content.Resource) string { return resource.ID }
func linkID(link content.SocialLink) string       { return link.ID }
func textID(text content.TextBlock) string        { return text.ID }
func imageID(image content.ContentImage) string   { return image.ID }

func indexByID[T any](items []T, id string, key func(T) string) int {
	return slices.IndexFunc(items, func(item T) bool { return key(item) == id })
}

func sortByOrder[T any](items []T, order func(T) int) {
	slices.SortStableFunc(items, func(left, right T) int { return cmp.Compare(order(left), order(right)) })
}

func reorder[T any](items []T, positions map[string]int, key func(T) string, order func(T) int, set func(*T, int)) error {
	for id := range positions {
		if indexByID(items, id, key) < 0 {
			return apperr.NotFound("Item " + id)
		}
	}
	for index := range items {
		if position, found := positions[key(items[index])]; found {
			set(&items[index], position)
		}
	}
	sortByOrder(items, order)
	return nil
}
