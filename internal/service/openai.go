package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/timmy/contentflow/internal/domain"
)

// OpenAIGenerator uses chat completions with a strict json_schema response
// format.
type OpenAIGenerator struct {
	model   string
	baseURL string
}

// OpenAIConfig holds configuration for OpenAIGenerator.
type OpenAIConfig struct {
	Model   string
	BaseURL string
}

// NewOpenAIGenerator creates an OpenAI-compatible generator.
func NewOpenAIGenerator(cfg *OpenAIConfig) *OpenAIGenerator {
	return &OpenAIGenerator{
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
	}
}

func (g *OpenAIGenerator) Provider() string { return "openai" }

func (g *OpenAIGenerator) Model() string { return g.model }

// Generate builds a client for apiKey and returns the first choice's content.
func (g *OpenAIGenerator) Generate(ctx context.Context, apiKey, prompt string, schema *jsonschema.Definition) (string, error) {
	clientCfg := openai.DefaultConfig(apiKey)
	if g.baseURL != "" {
		clientCfg.BaseURL = g.baseURL
	}
	client := openai.NewClientWithConfig(clientCfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "content_ideas",
				Schema: schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		status := 0
		var apiErr *openai.APIError
		var reqErr *openai.RequestError
		switch {
		case errors.As(err, &apiErr):
			status = apiErr.HTTPStatusCode
		case errors.As(err, &reqErr):
			status = reqErr.HTTPStatusCode
		}
		return "", &domain.ServiceError{Provider: g.Provider(), StatusCode: status, Err: fmt.Errorf("failed to call OpenAI API: %w", err)}
	}

	if len(resp.Choices) == 0 {
		return "", &domain.ServiceError{Provider: g.Provider(), Err: fmt.Errorf("no choices in response")}
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", &domain.ServiceError{
			Provider: g.Provider(),
			Err:      fmt.Errorf("empty completion (finish reason %q)", resp.Choices[0].FinishReason),
		}
	}
	return content, nil
}
