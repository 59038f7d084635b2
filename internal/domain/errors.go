package domain

import (
	"errors"
	"fmt"
)

// User-facing messages.
const (
	MsgTopicRequired = "Please enter a topic to generate ideas."
	MsgServiceFailed = "An error occurred while communicating with the AI. Please try again."
	MsgUnknown       = "An unknown error occurred."
)

// ValidationError is raised before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrTopicRequired is returned for an empty or whitespace-only topic.
var ErrTopicRequired = &ValidationError{Message: MsgTopicRequired}

// ConfigurationError means the AI credential is unavailable. Its message is
// shown to the user as-is.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// ServiceError covers transport failures, non-2xx replies and replies that
// do not match the requested shape.
type ServiceError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// UserMessage converts any error from the idea pipeline into the single
// display string placed in the error slot.
func UserMessage(err error) string {
	var (
		validationErr *ValidationError
		configErr     *ConfigurationError
		serviceErr    *ServiceError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &configErr):
		return configErr.Message
	case errors.As(err, &serviceErr):
		return MsgServiceFailed
	default:
		return MsgUnknown
	}
}
