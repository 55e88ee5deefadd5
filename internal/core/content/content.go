// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content manages the sub-resources shared by events, groups and organizations.

FAQ entries, resources, social links, text blocks and images have the same shape
and the same REST layout for every [entity.Kind]. This package implements them once:

# Core Responsibility

  - Payloads: The wire types exchanged with the backend.
  - Services: One HTTP call per operation, parameterized by kind ([Service]).
  - Mutation sets: The mutation contract bound to an entity id and its cache keys.

Entity packages (event, group, organization) only bind a kind and its key builders.
*/
package content

import "time"

// # FAQ

// FAQEntry is a stored question/answer pair.
type FAQEntry struct {
	ID       string `json:"id"`
	ISO      string `json:"iso"`
	Primary  bool   `json:"primary"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order"`
}

// FAQInput is the payload for a new FAQ entry.
type FAQInput struct {
	ISO      string `json:"iso"`
	Primary  bool   `json:"primary"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order"`
}

// # Resources

// Resource is an external link with a description, ordered within its entity.
type Resource struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Order       int      `json:"order"`
	Topics      []string `json:"topics,omitempty"`
}

// ResourceInput is the payload for a new resource.
type ResourceInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Order       int      `json:"order"`
	Topics      []string `json:"topics,omitempty"`
}

// # Social Links

type SocialLink struct {
	ID    string `json:"id"`
	Link  string `json:"link"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

type SocialLinkInput struct {
	Link  string `json:"link"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

// # Texts

// TextBlock holds the localized long-form texts of an entity.
type TextBlock struct {
	ID             string `json:"id"`
	ISO            string `json:"iso"`
	Primary        bool   `json:"primary"`
	Description    string `json:"description"`
	GetInvolved    string `json:"getInvolved"`
	DonationPrompt string `json:"donationPrompt,omitempty"`
}

// TextInput is the form data of a text update.
type TextInput struct {
	ISO            string `json:"iso,omitempty"`
	Primary        bool   `json:"primary"`
	Description    string `json:"description"`
	GetInvolved    string `json:"getInvolved"`
	DonationPrompt string `json:"donationPrompt,omitempty"`
}

// # Images

// ContentImage is an uploaded image as stored by the backend.
type ContentImage struct {
	ID            string    `json:"id"`
	FileObject    string    `json:"fileObject"`
	CreationDate  time.Time `json:"creation_date"`
	SequenceIndex int       `json:"sequence_index"`
}

// # Detail

// Detail is the read model of an entity together with its sub-resources.
type Detail struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Tagline     string       `json:"tagline,omitempty"`
	IconURL     string       `json:"iconUrl,omitempty"`
	FAQEntries  []FAQEntry   `json:"faqEntries"`
	Resources   []Resource   `json:"resources"`
	SocialLinks []SocialLink `json:"socialLinks"`
	Texts       []TextBlock  `json:"texts"`
}

// # Field Identifiers

const (
	ResourceFAQs        = "faqs"
	ResourceResources   = "resources"
	ResourceSocialLinks = "social_links"
	ResourceTexts       = "texts"
	ResourceImages      = "images"

	FieldOrder     = "order"
	FieldQuestion  = "question"
	FieldAnswer    = "answer"
	FieldName      = "name"
	FieldURL       = "url"
	FieldLink      = "link"
	FieldLabel     = "label"
)
