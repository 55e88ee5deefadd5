// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package entity describes the three kinds of owning entity: events, groups and organizations.

Every sub-resource (FAQ entry, resource, social link, text block, image) belongs to
exactly one entity. The REST layout differs per kind only in a few names, which
[Kind] derives so services and the development backend share one definition.
*/
package entity

import "fmt"

// Kind is the type of an owning entity.
type Kind string

const (
	Event        Kind = "event"
	Group        Kind = "group"
	Organization Kind = "organization"
)

// Kinds lists every supported kind.
var Kinds = []Kind{Event, Group, Organization}

// Parse validates a kind name.
func Parse(name string) (Kind, error) {
	for _, kind := range Kinds {
		if string(kind) == name {
			return kind, nil
		}
	}
	return "", fmt.Errorf("entity: unknown kind %q", name)
}

// Root is the API namespace of the kind ("/events" or "/communities").
func (kind Kind) Root() string {
	if kind == Event {
		return "/events"
	}
	return "/communities"
}

// Plural is the collection name ("events", "groups", "organizations").
func (kind Kind) Plural() string {
	return string(kind) + "s"
}

// OwnerField names the entity reference in request bodies ("event", "group", "organization").
func (kind Kind) OwnerField() string {
	return string(kind)
}

// UploadField names the entity reference in multipart uploads ("event_id").
func (kind Kind) UploadField() string {
	return string(kind) + "_id"
}

// CollectionPath is the path of a sub-resource collection ("/communities/group_faqs/").
func (kind Kind) CollectionPath(resource string) string {
	return fmt.Sprintf("%s/%s_%s/", kind.Root(), kind, resource)
}

// ItemPath is the path of one sub-resource ("/communities/group_faqs/<id>/").
func (kind Kind) ItemPath(resource, id string) string {
	return kind.CollectionPath(resource) + id + "/"
}

// EntityPath is the path of the entity itself ("/events/events/<id>/").
func (kind Kind) EntityPath(id string) string {
	return fmt.Sprintf("%s/%s/%s/", kind.Root(), kind.Plural(), id)
}

// String implements [fmt.Stringer].
func (kind Kind) String() string {
	return string(kind)
}
