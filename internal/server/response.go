package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation    = "https://rpgo.dev/mortgage/errors/validation"
	ErrorTypeNotFound      = "https://rpgo.dev/mortgage/errors/not-found"
	ErrorTypeUnprocessable = "https://rpgo.dev/mortgage/errors/unprocessable"
	ErrorTypeRateLimit     = "https://rpgo.dev/mortgage/errors/rate-limit"
	ErrorTypeInternal      = "https://rpgo.dev/mortgage/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnprocessableError creates a response for a well-formed request that the
// loan's current schedule cannot accept
func NewUnprocessableError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusUnprocessableEntity, ProblemDetails{
		Type:     ErrorTypeUnprocessable,
		Title:    "Unprocessable Prepayment",
		Status:   http.StatusUnprocessableEntity,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// writeDomainError maps engine errors onto problem responses.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrLoanNotFound):
		return NewNotFoundError(c, "Loan not found")
	case errors.Is(err, domain.ErrInvalidMonth):
		return NewUnprocessableError(c, err.Error(), []ValidationError{{Field: "month", Message: "Must be a month of the current schedule"}})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewUnprocessableError(c, err.Error(), []ValidationError{{Field: "amount", Message: "Must be positive and within the balance after the regular payment"}})
	case errors.Is(err, domain.ErrUnknownConvention):
		return NewValidationError(c, err.Error(), []ValidationError{{Field: "convention", Message: "Must be equal-installment or equal-principal"}})
	case errors.Is(err, domain.ErrUnknownStrategy):
		return NewValidationError(c, err.Error(), []ValidationError{{Field: "strategy", Message: "Must be reduce-term or reduce-payment"}})
	case errors.Is(err, domain.ErrInvalidTerms):
		return NewValidationError(c, err.Error(), nil)
	}
	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Unhandled engine error")
	return NewInternalError(c, "Failed to process request")
}
