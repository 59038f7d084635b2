package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/timmy/contentflow/internal/domain"
)

// rawVideoIdea and rawPhotoIdea use pointers so that missing and null
// fields can be told apart from empty strings.
type rawVideoIdea struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Keywords    []string `json:"keywords"`
	Script      *string  `json:"script"`
}

type rawPhotoIdea struct {
	Format   *string  `json:"format"`
	Caption  *string  `json:"caption"`
	Hashtags []string `json:"hashtags"`
	Script   *string  `json:"script"`
}

// DecodeIdeas parses a `{"ideas": [...]}` reply and tags every item with
// the variant platform asked for. An item missing any field of that variant
// fails the whole reply.
func DecodeIdeas(platform domain.Platform, text string) ([]domain.ContentIdea, error) {
	var envelope struct {
		Ideas *[]json.RawMessage `json:"ideas"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse reply as {ideas: [...]}: %w", err)
	}
	if envelope.Ideas == nil {
		return nil, fmt.Errorf("reply has no ideas array")
	}

	items := *envelope.Ideas
	ideas := make([]domain.ContentIdea, 0, len(items))
	for i, item := range items {
		idea, err := decodeIdea(platform, item)
		if err != nil {
			return nil, fmt.Errorf("idea %d: %w", i, err)
		}
		ideas = append(ideas, idea)
	}
	return ideas, nil
}

func decodeIdea(platform domain.Platform, item json.RawMessage) (domain.ContentIdea, error) {
	switch platform.IdeaKind() {
	case domain.IdeaKindPhoto:
		var raw rawPhotoIdea
		if err := json.Unmarshal(item, &raw); err != nil {
			return domain.ContentIdea{}, err
		}
		missing := missingFields(
			field{"format", raw.Format == nil},
			field{"caption", raw.Caption == nil},
			field{"hashtags", raw.Hashtags == nil},
			field{"script", raw.Script == nil},
		)
		if len(missing) > 0 {
			return domain.ContentIdea{}, fmt.Errorf("not a %s idea, missing %s", platform.Label(), strings.Join(missing, ", "))
		}
		return domain.NewPhotoIdea(domain.PhotoIdea{
			Format:   *raw.Format,
			Caption:  *raw.Caption,
			Hashtags: raw.Hashtags,
			Script:   *raw.Script,
		}), nil

	default:
		var raw rawVideoIdea
		if err := json.Unmarshal(item, &raw); err != nil {
			return domain.ContentIdea{}, err
		}
		missing := missingFields(
			field{"title", raw.Title == nil},
			field{"description", raw.Description == nil},
			field{"keywords", raw.Keywords == nil},
			field{"script", raw.Script == nil},
		)
		if len(missing) > 0 {
			return domain.ContentIdea{}, fmt.Errorf("not a %s idea, missing %s", platform.Label(), strings.Join(missing, ", "))
		}
		return domain.NewVideoIdea(domain.VideoIdea{
			Title:       *raw.Title,
			Description: *raw.Description,
			Keywords:    raw.Keywords,
			Script:      *raw.Script,
		}), nil
	}
}

type field struct {
	name   string
	absent bool
}

func missingFields(fields ...field) []string {
	var missing []string
	for _, f := range fields {
		if f.absent {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// stripCodeFence removes a ```json fence some models wrap around replies.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl != -1 {
		text = text[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
