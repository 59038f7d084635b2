package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/timmy/contentflow/internal/domain"
	"github.com/timmy/contentflow/internal/logger"
	"github.com/timmy/contentflow/internal/prompts"
	"github.com/timmy/contentflow/internal/render"
	"github.com/timmy/contentflow/internal/studio"
)

// IdeaRequestBody is the JSON body of the idea endpoints.
type IdeaRequestBody struct {
	Platform string `json:"platform"`
	Topic    string `json:"topic"`
	Duration string `json:"duration"`
}

// PromptPreviewResponse is returned by POST /api/v1/prompt.
type PromptPreviewResponse struct {
	Platform       domain.Platform       `json:"platform"`
	Prompt         string                `json:"prompt"`
	Schema         jsonschema.Definition `json:"schema"`
	RequiredFields []string              `json:"required_fields"`
}

// IdeasResponse is returned by POST /api/v1/ideas.
type IdeasResponse struct {
	Platform domain.Platform      `json:"platform"`
	Ideas    []domain.ContentIdea `json:"ideas"`
	Cards    []render.Card        `json:"cards"`
}

// IdeasHandler exposes the idea flow as a stateless JSON API.
type IdeasHandler struct {
	fetcher studio.IdeaFetcher
}

// NewIdeasHandler creates a new ideas handler.
// Parameters:
//   - fetcher: service performing the completion call.
// Returns:
//   - *IdeasHandler: initialized handler.
func NewIdeasHandler(fetcher studio.IdeaFetcher) *IdeasHandler {
	return &IdeasHandler{fetcher: fetcher}
}

// Preview handles POST /api/v1/prompt. It returns the prompt and schema
// that would be sent, without calling the AI service.
func (h *IdeasHandler) Preview(c *gin.Context) {
	req, ok := bindIdeaRequest(c)
	if !ok {
		return
	}

	built := prompts.BuildRequest(req.Platform, req.Topic, req.Duration)
	c.JSON(http.StatusOK, PromptPreviewResponse{
		Platform:       req.Platform,
		Prompt:         built.Prompt,
		Schema:         built.Schema,
		RequiredFields: prompts.RequiredFields(req.Platform),
	})
}

// Generate handles POST /api/v1/ideas.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *IdeasHandler) Generate(c *gin.Context) {
	req, ok := bindIdeaRequest(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	built := prompts.BuildRequest(req.Platform, req.Topic, req.Duration)
	ideas, err := h.fetcher.FetchIdeas(ctx, req.Platform, built)
	if err != nil {
		logger.CtxWarn(ctx, "API generation failed: %v", err)
		c.JSON(statusFor(err), gin.H{"error": domain.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, IdeasResponse{
		Platform: req.Platform,
		Ideas:    ideas,
		Cards:    render.Cards(ideas, req.Platform),
	})
}

// bindIdeaRequest parses and validates the body, writing a 400 on failure.
func bindIdeaRequest(c *gin.Context) (domain.IdeaRequest, bool) {
	var body IdeaRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return domain.IdeaRequest{}, false
	}

	platform, err := domain.ParsePlatform(body.Platform)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.UserMessage(err)})
		return domain.IdeaRequest{}, false
	}

	req := domain.IdeaRequest{
		Platform: platform,
		Topic:    body.Topic,
		Duration: body.Duration,
	}.Normalize()
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.UserMessage(err)})
		return domain.IdeaRequest{}, false
	}
	return req, true
}
