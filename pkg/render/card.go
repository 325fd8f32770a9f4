package render

import (
	"fmt"
	"time"

	"github.com/papercomputeco/cogniz/pkg/memory"
)

// Limits bounds the derived strings of a Card.
type Limits struct {
	Title   int
	Snippet int
}

var (
	// ListLimits fit a one-line picker entry.
	ListLimits = Limits{Title: 80, Snippet: 160}

	// CardLimits fit the memory browser cards.
	CardLimits = Limits{Title: 80, Snippet: 240}
)

// Card is the display form of a memory.
type Card struct {
	ID      string
	Title   string
	Snippet string

	// Tags holds the category label, source, score and relative time, in that
	// order, skipping any that are absent.
	Tags []string

	PageTitle string
	PageURL   string
	Content   string
}

// NewCard derives the display fields for rec as seen at now.
func NewCard(rec memory.Record, now time.Time, limits Limits) Card {
	card := Card{
		ID:      rec.ID,
		Title:   Title(rec.Content, rec.Metadata, limits.Title),
		Snippet: Snippet(rec.Content, rec.Metadata, limits.Snippet),
		Content: rec.Content,
	}

	if label, ok := CategoryLabel(rec.Category); ok {
		card.Tags = append(card.Tags, label)
	}
	if source, ok := sourceOf(rec); ok {
		card.Tags = append(card.Tags, source)
	}
	if rec.Relevance != nil {
		card.Tags = append(card.Tags, fmt.Sprintf("Score %.2f", *rec.Relevance))
	}
	if when, ok := RelativeTime(rec.StoredAt, now); ok {
		card.Tags = append(card.Tags, when)
	}

	if pageTitle, ok := pageTitleOf(rec); ok && pageTitle != card.Title {
		card.PageTitle = pageTitle
	}
	if pageURL, ok := pageURLOf(rec); ok {
		card.PageURL = pageURL
	}

	return card
}

func sourceOf(rec memory.Record) (string, bool) {
	if s, ok := MetadataString(rec.Metadata, "source", "provider", "origin"); ok {
		return s, true
	}
	return ContentLabel(rec.Content, "Source")
}

func pageTitleOf(rec memory.Record) (string, bool) {
	if s, ok := MetadataString(rec.Metadata, "title", "page_title", "pageTitle"); ok {
		return s, true
	}
	return ContentLabel(rec.Content, "Page Title")
}

func pageURLOf(rec memory.Record) (string, bool) {
	if s, ok := MetadataString(rec.Metadata, "page_url", "pageUrl", "url", "link"); ok {
		return s, true
	}
	return ContentLabel(rec.Content, "Page URL")
}
