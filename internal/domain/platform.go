package domain

import (
	"fmt"
	"strings"
)

// Platform selects the prompt template and the idea variant of a request.
type Platform string

const (
	// PlatformYouTube produces VideoIdea records.
	PlatformYouTube Platform = "youtube"
	// PlatformInstagram produces PhotoIdea records.
	PlatformInstagram Platform = "instagram"
)

// Platforms lists the selectable platforms in display order.
var Platforms = []Platform{PlatformYouTube, PlatformInstagram}

// ParsePlatform accepts the platform identifiers case-insensitively.
// An empty value selects YouTube, the default toggle position.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case "", PlatformYouTube:
		return PlatformYouTube, nil
	case PlatformInstagram:
		return PlatformInstagram, nil
	default:
		return "", &ValidationError{Message: fmt.Sprintf("Unknown platform %q.", s)}
	}
}

// Label is the human-readable platform name.
func (p Platform) Label() string {
	switch p {
	case PlatformInstagram:
		return "Instagram"
	default:
		return "YouTube"
	}
}

// IdeaKind returns the idea variant this platform produces.
func (p Platform) IdeaKind() IdeaKind {
	if p == PlatformInstagram {
		return IdeaKindPhoto
	}
	return IdeaKindVideo
}
