// Package render turns decoded ideas into card view models for the page
// and the JSON API.
package render

import (
	"github.com/timmy/contentflow/internal/domain"
)

// Toggle labels for the script section.
const (
	LabelShowScript = "Show Full Script"
	LabelHideScript = "Hide Full Script"
)

// StaggerMs is the entrance animation delay added per card index.
const StaggerMs = 100

// PhotoHeading is the fixed heading of Instagram cards.
const PhotoHeading = "Instagram Idea"

// Card is the display form of one idea.
type Card struct {
	Index      int             `json:"index"`
	Kind       domain.IdeaKind `json:"kind"`
	Heading    string          `json:"heading"`
	Badge      string          `json:"badge,omitempty"`
	Body       string          `json:"body"`
	Quoted     bool            `json:"quoted"`
	TagLabel   string          `json:"tag_label"`
	Tags       []string        `json:"tags"`
	Script     string          `json:"script"`
	ScriptOpen bool            `json:"script_open"`
	DelayMs    int             `json:"delay_ms"`
}

// Cards builds one card per idea, in order, with every script closed.
// platform only decides the fallback for an idea without a kind.
func Cards(ideas []domain.ContentIdea, platform domain.Platform) []Card {
	cards := make([]Card, 0, len(ideas))
	for i, idea := range ideas {
		cards = append(cards, newCard(i, idea, platform))
	}
	return cards
}

func newCard(index int, idea domain.ContentIdea, platform domain.Platform) Card {
	card := Card{
		Index:   index,
		DelayMs: index * StaggerMs,
	}

	kind := idea.Kind
	if kind == "" {
		kind = platform.IdeaKind()
	}

	switch {
	case kind == domain.IdeaKindPhoto && idea.Photo != nil:
		card.Kind = domain.IdeaKindPhoto
		card.Heading = PhotoHeading
		card.Badge = idea.Photo.Format
		card.Body = idea.Photo.Caption
		card.Quoted = true
		card.TagLabel = "Hashtags"
		card.Tags = make([]string, 0, len(idea.Photo.Hashtags))
		for _, tag := range idea.Photo.Hashtags {
			card.Tags = append(card.Tags, "#"+tag)
		}
		card.Script = idea.Photo.Script

	case idea.Video != nil:
		card.Kind = domain.IdeaKindVideo
		card.Heading = idea.Video.Title
		card.Body = idea.Video.Description
		card.TagLabel = "Keywords"
		card.Tags = append([]string{}, idea.Video.Keywords...)
		card.Script = idea.Video.Script
	}

	return card
}

// Toggle returns a copy of c with the script section flipped.
func (c Card) Toggle() Card {
	c.ScriptOpen = !c.ScriptOpen
	return c
}

// ToggleLabel is the text of the script toggle control.
func (c Card) ToggleLabel() string {
	if c.ScriptOpen {
		return LabelHideScript
	}
	return LabelShowScript
}

// HasBadge reports whether the card shows a format badge.
func (c Card) HasBadge() bool {
	return c.Badge != ""
}
