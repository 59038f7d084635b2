package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/timmy/contentflow/internal/domain"
	"github.com/timmy/contentflow/internal/logger"
	"github.com/timmy/contentflow/internal/prompts"
)

// GenerationRecorder stores one log row per completion call.
type GenerationRecorder interface {
	Record(ctx context.Context, entry *domain.GenerationLog) error
}

// IdeaServiceConfig holds configuration for IdeaService.
type IdeaServiceConfig struct {
	// APIKey is called on every request.
	APIKey func() string
	// KeyEnv names the variable users should set; it appears in the
	// configuration error message.
	KeyEnv string
}

// IdeaService turns a built request into content ideas with one completion
// call. It keeps no state between calls.
type IdeaService struct {
	generator Generator
	recorder  GenerationRecorder
	apiKey    func() string
	keyEnv    string
}

// NewIdeaService creates an idea service. recorder may be nil.
func NewIdeaService(generator Generator, recorder GenerationRecorder, cfg *IdeaServiceConfig) *IdeaService {
	keyEnv := cfg.KeyEnv
	if keyEnv == "" {
		keyEnv = "API_KEY"
	}
	apiKey := cfg.APIKey
	if apiKey == nil {
		apiKey = func() string { return "" }
	}
	return &IdeaService{
		generator: generator,
		recorder:  recorder,
		apiKey:    apiKey,
		keyEnv:    keyEnv,
	}
}

// Provider returns the configured provider name.
func (s *IdeaService) Provider() string {
	return s.generator.Provider()
}

// FetchIdeas performs the completion call for built and decodes the reply
// into ideas of platform's variant. Errors are *domain.ConfigurationError
// (no call made) or *domain.ServiceError.
func (s *IdeaService) FetchIdeas(ctx context.Context, platform domain.Platform, built prompts.BuiltRequest) ([]domain.ContentIdea, error) {
	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldComponent: "ideas",
		logger.FieldPlatform:  string(platform),
		logger.FieldProvider:  s.generator.Provider(),
		logger.FieldModel:     s.generator.Model(),
	})
	start := time.Now()

	apiKey := s.apiKey()
	if apiKey == "" {
		err := &domain.ConfigurationError{Message: fmt.Sprintf("%s environment variable not set.", s.keyEnv)}
		logger.CtxError(ctx, "Idea generation not attempted: %v", err)
		s.record(ctx, platform, domain.GenerationStatusConfigError, 0, start, err)
		return nil, err
	}

	logger.CtxInfo(ctx, "Requesting ideas: prompt_chars=%d", len(built.Prompt))

	text, err := s.generator.Generate(ctx, apiKey, built.Prompt, &built.Schema)
	if err != nil {
		var serviceErr *domain.ServiceError
		if !errors.As(err, &serviceErr) {
			err = &domain.ServiceError{Provider: s.generator.Provider(), Err: err}
		}
		return nil, s.fail(ctx, platform, start, err)
	}

	ideas, err := DecodeIdeas(platform, text)
	if err != nil {
		logger.CtxError(ctx, "Unexpected reply structure: %s", truncate(text, 1024))
		return nil, s.fail(ctx, platform, start, &domain.ServiceError{Provider: s.generator.Provider(), Err: err})
	}

	if len(ideas) > domain.IdeaCount {
		logger.CtxWarn(ctx, "Reply carried %d ideas, keeping the first %d", len(ideas), domain.IdeaCount)
		ideas = ideas[:domain.IdeaCount]
	}

	logger.With(logger.Fields{logger.FieldStatus: string(domain.GenerationStatusSuccess)}).
		WithDuration(time.Since(start).Milliseconds()).
		WithCount(len(ideas)).
		Info(ctx, "Ideas generated")
	s.record(ctx, platform, domain.GenerationStatusSuccess, len(ideas), start, nil)
	return ideas, nil
}

func (s *IdeaService) fail(ctx context.Context, platform domain.Platform, start time.Time, err error) error {
	fields := logger.Fields{logger.FieldStatus: string(domain.GenerationStatusServiceError)}
	var serviceErr *domain.ServiceError
	if errors.As(err, &serviceErr) && serviceErr.StatusCode != 0 {
		fields[logger.FieldHTTPStatus] = serviceErr.StatusCode
	}
	logger.With(fields).WithDuration(time.Since(start).Milliseconds()).Error(ctx, "Idea generation failed: %v", err)

	s.record(ctx, platform, domain.GenerationStatusServiceError, 0, start, err)
	return err
}

func (s *IdeaService) record(ctx context.Context, platform domain.Platform, status domain.GenerationStatus, count int, start time.Time, cause error) {
	if s.recorder == nil {
		return
	}
	entry := &domain.GenerationLog{
		ID:         uuid.New().String(),
		Platform:   platform,
		Provider:   s.generator.Provider(),
		Model:      s.generator.Model(),
		Status:     status,
		IdeaCount:  count,
		DurationMs: time.Since(start).Milliseconds(),
		CreatedAt:  time.Now(),
	}
	if cause != nil {
		entry.ErrorLog = truncate(cause.Error(), 1024)
	}
	if err := s.recorder.Record(ctx, entry); err != nil {
		logger.CtxWarn(ctx, "Failed to record generation log: %v", err)
	}
}
