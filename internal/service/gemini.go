package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/timmy/contentflow/internal/domain"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiGenerator calls the Gemini generateContent REST endpoint.
type GeminiGenerator struct {
	client  *resty.Client
	model   string
	baseURL string
}

// GeminiConfig holds configuration for GeminiGenerator.
type GeminiConfig struct {
	Model   string
	BaseURL string
}

// NewGeminiGenerator creates a Gemini generator. No client timeout or retry
// is configured; the request context bounds each call.
func NewGeminiGenerator(cfg *GeminiConfig) *GeminiGenerator {
	client := resty.New()
	client.SetHeader("Content-Type", "application/json")

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}

	return &GeminiGenerator{
		client:  client,
		model:   cfg.Model,
		baseURL: baseURL,
	}
}

func (g *GeminiGenerator) Provider() string { return "gemini" }

func (g *GeminiGenerator) Model() string { return g.model }

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	ResponseMimeType   string                 `json:"responseMimeType"`
	ResponseJSONSchema *jsonschema.Definition `json:"responseJsonSchema,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type geminiErrorResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends the prompt with the response schema and returns the
// concatenated text parts of the first candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, apiKey, prompt string, schema *jsonschema.Definition) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType:   "application/json",
			ResponseJSONSchema: schema,
		},
	}

	var resp geminiResponse
	var apiErr geminiErrorResponse
	httpResp, err := g.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", apiKey).
		SetBody(req).
		SetResult(&resp).
		SetError(&apiErr).
		Post(fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model))
	if err != nil {
		return "", &domain.ServiceError{Provider: g.Provider(), Err: fmt.Errorf("failed to call Gemini API: %w", err)}
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		msg := string(httpResp.Body())
		if apiErr.Error != nil {
			msg = fmt.Sprintf("%s: %s", apiErr.Error.Status, apiErr.Error.Message)
		}
		return "", &domain.ServiceError{
			Provider:   g.Provider(),
			StatusCode: httpResp.StatusCode(),
			Err:        fmt.Errorf("Gemini API returned error: %s", truncate(msg, 512)),
		}
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", &domain.ServiceError{Provider: g.Provider(), Err: fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)}
	}
	if len(resp.Candidates) == 0 {
		return "", &domain.ServiceError{Provider: g.Provider(), Err: fmt.Errorf("no candidates in response")}
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", &domain.ServiceError{
			Provider: g.Provider(),
			Err:      fmt.Errorf("empty candidate (finish reason %q)", resp.Candidates[0].FinishReason),
		}
	}
	return text.String(), nil
}

// truncate cuts s to at most n bytes on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
