package prompts

import (
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/timmy/contentflow/internal/domain"
)

// ============================================================================
// Prompt templates
// ============================================================================

// DefaultDurationPhrase is used when the user leaves the duration blank.
const DefaultDurationPhrase = "a standard short-form length (e.g., 1 minute)"

// VideoPromptTemplate takes the topic and the script clause.
const VideoPromptTemplate = "You are an expert YouTube content strategist. Generate 5 creative and engaging video ideas for a YouTube channel focused on '%s'. For each idea, provide a viral-worthy title, a short, compelling video description, and a list of 3-5 relevant keywords for discoverability. %s"

// PhotoPromptTemplate takes the topic and the script clause.
const PhotoPromptTemplate = "You are a professional Instagram marketing manager. Generate 5 unique content ideas for an Instagram profile about '%s'. For each idea, specify the best format (e.g., Reel, Carousel, Story, Live), write a captivating caption that encourages engagement, and provide a list of 5-7 niche and popular hashtags. %s"

// ScriptClauseTemplate takes the resolved duration phrase.
const ScriptClauseTemplate = "Additionally, for each idea, write a detailed, engaging script that would last %s. The script should be formatted with clear speaker labels (e.g., 'Host:', 'VO:') and action descriptions."

// ============================================================================
// Request Builder
// ============================================================================

// BuiltRequest is the prompt and structured-output schema for one call.
type BuiltRequest struct {
	Prompt string                `json:"prompt"`
	Schema jsonschema.Definition `json:"schema"`
}

// BuildRequest renders the prompt and the response schema for platform.
// topic must already be trimmed and non-empty.
func BuildRequest(platform domain.Platform, topic, duration string) BuiltRequest {
	clause := ScriptClause(duration)
	if platform == domain.PlatformInstagram {
		return BuiltRequest{
			Prompt: fmt.Sprintf(PhotoPromptTemplate, topic, clause),
			Schema: photoSchema(),
		}
	}
	return BuiltRequest{
		Prompt: fmt.Sprintf(VideoPromptTemplate, topic, clause),
		Schema: videoSchema(),
	}
}

// DurationPhrase resolves the free-form duration into the phrase injected
// into the script clause.
func DurationPhrase(duration string) string {
	d := strings.TrimSpace(duration)
	if d == "" {
		return DefaultDurationPhrase
	}
	return "approximately " + d
}

// ScriptClause is the script-generation instruction appended to every prompt.
func ScriptClause(duration string) string {
	return fmt.Sprintf(ScriptClauseTemplate, DurationPhrase(duration))
}

// RequiredFields lists the item fields the schema requires for platform,
// in schema order.
func RequiredFields(platform domain.Platform) []string {
	if platform == domain.PlatformInstagram {
		return []string{"format", "caption", "hashtags", "script"}
	}
	return []string{"title", "description", "keywords", "script"}
}

// ============================================================================
// Response schemas
// ============================================================================

func videoSchema() jsonschema.Definition {
	return ideasEnvelope("A list of 5 YouTube video ideas.", jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"title": {
				Type:        jsonschema.String,
				Description: "The catchy, viral-worthy title of the video.",
			},
			"description": {
				Type:        jsonschema.String,
				Description: "A brief, engaging description of the video content.",
			},
			"keywords": {
				Type:        jsonschema.Array,
				Description: "A list of 3-5 relevant SEO keywords.",
				Items:       &jsonschema.Definition{Type: jsonschema.String},
			},
			"script": {
				Type:        jsonschema.String,
				Description: "The full script for the video, tailored to the requested duration.",
			},
		},
		Required:             RequiredFields(domain.PlatformYouTube),
		AdditionalProperties: false,
	})
}

func photoSchema() jsonschema.Definition {
	return ideasEnvelope("A list of 5 Instagram content ideas.", jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"format": {
				Type:        jsonschema.String,
				Description: "The suggested format for the content (e.g., Reel, Carousel).",
			},
			"caption": {
				Type:        jsonschema.String,
				Description: "An engaging caption for the post.",
			},
			"hashtags": {
				Type:        jsonschema.Array,
				Description: "A list of 5-7 relevant hashtags.",
				Items:       &jsonschema.Definition{Type: jsonschema.String},
			},
			"script": {
				Type:        jsonschema.String,
				Description: "The full script or shot-by-shot plan for the content, tailored to the requested duration.",
			},
		},
		Required:             RequiredFields(domain.PlatformInstagram),
		AdditionalProperties: false,
	})
}

func ideasEnvelope(description string, item jsonschema.Definition) jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"ideas": {
				Type:        jsonschema.Array,
				Description: description,
				Items:       &item,
			},
		},
		Required:             []string{"ideas"},
		AdditionalProperties: false,
	}
}
