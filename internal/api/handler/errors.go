package handler

import (
	"errors"
	"net/http"

	"github.com/timmy/contentflow/internal/domain"
)

// statusFor maps the idea pipeline's error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var (
		validationErr *domain.ValidationError
		configErr     *domain.ConfigurationError
		serviceErr    *domain.ServiceError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &configErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &serviceErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
