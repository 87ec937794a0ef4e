// Package domain contains core business entities and rules.
package domain

import (
	"strings"
	"time"
)

// DefaultCategory is assigned to quotes created without a category.
const DefaultCategory = "General"

// Quote represents a quotation with its author and engagement counters.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is the unique identifier for this quote.
	ID string

	// Text is the quotation itself.
	Text string

	// Author is who said or wrote the quote.
	Author string

	// Category is the single category the quote belongs to.
	Category string

	// Image is an optional illustration URL.
	Image string

	// Tags are themes associated with the quote, in upload order.
	Tags []string

	// Likes, Saves and Shares are running engagement counters.
	// They never go below zero.
	Likes  int
	Saves  int
	Shares int

	// UploadedBy is the identity id of the uploader.
	UploadedBy string

	// CreatedAt is set once at creation and never mutated.
	CreatedAt time.Time

	// Scheduled and ScheduledDate are accepted and stored but no
	// publishing mechanism consults them.
	Scheduled     bool
	ScheduledDate *time.Time
}

// Draft carries the caller-supplied fields for a new quote.
// Tags arrive as a single comma-separated string, as typed into the
// upload form.
type Draft struct {
	Text          string
	Author        string
	Category      string
	Image         string
	Tags          string
	Scheduled     bool
	ScheduledDate *time.Time
}

// NewQuote builds a Quote from a draft. The id and timestamp are supplied
// by the caller so creation stays deterministic under test.
// Counters start at zero and the category falls back to DefaultCategory.
func NewQuote(d Draft, id, uploadedBy string, createdAt time.Time) *Quote {
	category := d.Category
	if category == "" {
		category = DefaultCategory
	}

	return &Quote{
		ID:            id,
		Text:          d.Text,
		Author:        d.Author,
		Category:      category,
		Image:         d.Image,
		Tags:          ParseTags(d.Tags),
		UploadedBy:    uploadedBy,
		CreatedAt:     createdAt,
		Scheduled:     d.Scheduled,
		ScheduledDate: d.ScheduledDate,
	}
}

// ParseTags splits a comma-separated tag string, trims each segment and
// drops empty ones. Order is preserved and duplicates are kept.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))

	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}

	if len(tags) == 0 {
		return nil
	}

	return tags
}
