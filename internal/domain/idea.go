package domain

import "strings"

// IdeaCount is how many ideas every prompt asks for.
const IdeaCount = 5

// IdeaRequest is one user submission. It is never persisted.
type IdeaRequest struct {
	Platform Platform `json:"platform"`
	Topic    string   `json:"topic"`
	Duration string   `json:"duration"`
}

// Normalize returns a copy with topic and duration trimmed.
func (r IdeaRequest) Normalize() IdeaRequest {
	r.Topic = strings.TrimSpace(r.Topic)
	r.Duration = strings.TrimSpace(r.Duration)
	return r
}

// Validate rejects a blank topic.
func (r IdeaRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return ErrTopicRequired
	}
	return nil
}

// IdeaKind tags the variant held by a ContentIdea.
type IdeaKind string

const (
	IdeaKindVideo IdeaKind = "video"
	IdeaKindPhoto IdeaKind = "photo"
)

// VideoIdea is a YouTube video suggestion.
type VideoIdea struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Script      string   `json:"script"`
}

// PhotoIdea is an Instagram post suggestion.
type PhotoIdea struct {
	Format   string   `json:"format"`
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
	Script   string   `json:"script"`
}

// ContentIdea holds exactly one of Video or Photo, selected by Kind.
type ContentIdea struct {
	Kind  IdeaKind   `json:"kind"`
	Video *VideoIdea `json:"video,omitempty"`
	Photo *PhotoIdea `json:"photo,omitempty"`
}

// NewVideoIdea wraps v.
func NewVideoIdea(v VideoIdea) ContentIdea {
	return ContentIdea{Kind: IdeaKindVideo, Video: &v}
}

// NewPhotoIdea wraps p.
func NewPhotoIdea(p PhotoIdea) ContentIdea {
	return ContentIdea{Kind: IdeaKindPhoto, Photo: &p}
}

// Script returns the long-form script of whichever variant is set.
func (c ContentIdea) Script() string {
	switch {
	case c.Kind == IdeaKindVideo && c.Video != nil:
		return c.Video.Script
	case c.Kind == IdeaKindPhoto && c.Photo != nil:
		return c.Photo.Script
	}
	return ""
}
