package prompts

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/timmy/contentflow/internal/domain"
)

func TestDurationPhrase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", DefaultDurationPhrase},
		{"   ", DefaultDurationPhrase},
		{"30s", "approximately 30s"},
		{" 2 minutes ", "approximately 2 minutes"},
	}
	for _, tt := range tests {
		if got := DurationPhrase(tt.in); got != tt.want {
			t.Errorf("DurationPhrase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildRequest_VideoPrompt(t *testing.T) {
	built := BuildRequest(domain.PlatformYouTube, "healthy baking", "")

	want := "You are an expert YouTube content strategist. Generate 5 creative and engaging video ideas for a YouTube channel focused on 'healthy baking'. " +
		"For each idea, provide a viral-worthy title, a short, compelling video description, and a list of 3-5 relevant keywords for discoverability. " +
		"Additionally, for each idea, write a detailed, engaging script that would last a standard short-form length (e.g., 1 minute). " +
		"The script should be formatted with clear speaker labels (e.g., 'Host:', 'VO:') and action descriptions."
	if built.Prompt != want {
		t.Errorf("unexpected prompt:\n got: %s\nwant: %s", built.Prompt, want)
	}
}

func TestBuildRequest_PhotoPrompt(t *testing.T) {
	built := BuildRequest(domain.PlatformInstagram, "street food", "30s")

	if !strings.HasPrefix(built.Prompt, "You are a professional Instagram marketing manager. Generate 5 unique content ideas for an Instagram profile about 'street food'.") {
		t.Errorf("unexpected prompt prefix: %s", built.Prompt)
	}
	if !strings.Contains(built.Prompt, "5-7 niche and popular hashtags") {
		t.Error("photo prompt should ask for hashtags")
	}
	if !strings.Contains(built.Prompt, "script that would last approximately 30s.") {
		t.Errorf("script clause missing duration: %s", built.Prompt)
	}
}

func TestBuildRequest_SchemaRequiredFields(t *testing.T) {
	tests := []struct {
		platform domain.Platform
		want     []string
		arrayKey string
	}{
		{domain.PlatformYouTube, []string{"description", "keywords", "script", "title"}, "keywords"},
		{domain.PlatformInstagram, []string{"caption", "format", "hashtags", "script"}, "hashtags"},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			schema := BuildRequest(tt.platform, "anything", "").Schema

			if schema.Type != jsonschema.Object {
				t.Fatalf("root type = %s", schema.Type)
			}
			if len(schema.Required) != 1 || schema.Required[0] != "ideas" {
				t.Fatalf("root required = %v", schema.Required)
			}
			ideas, ok := schema.Properties["ideas"]
			if !ok || ideas.Type != jsonschema.Array || ideas.Items == nil {
				t.Fatalf("ideas property malformed: %+v", ideas)
			}

			item := ideas.Items
			required := append([]string(nil), item.Required...)
			sort.Strings(required)
			if strings.Join(required, ",") != strings.Join(tt.want, ",") {
				t.Errorf("required = %v, want %v", required, tt.want)
			}
			if len(item.Properties) != len(tt.want) {
				t.Errorf("item declares %d properties, want %d", len(item.Properties), len(tt.want))
			}
			arr := item.Properties[tt.arrayKey]
			if arr.Type != jsonschema.Array || arr.Items == nil || arr.Items.Type != jsonschema.String {
				t.Errorf("%s should be an array of strings: %+v", tt.arrayKey, arr)
			}
		})
	}
}

func TestBuildRequest_SchemaIndependentOfTopic(t *testing.T) {
	a, err := json.Marshal(BuildRequest(domain.PlatformYouTube, "cats", "").Schema)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(BuildRequest(domain.PlatformYouTube, "rockets", "10 minutes").Schema)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("schema should only vary by platform")
	}
}
