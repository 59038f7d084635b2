package service

import (
	"context"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Generator performs one structured-output completion call and returns the
// raw JSON text the model produced. Implementations return
// *domain.ServiceError for transport and HTTP failures.
type Generator interface {
	Provider() string
	Model() string
	Generate(ctx context.Context, apiKey, prompt string, schema *jsonschema.Definition) (string, error)
}
