// Package common holds the response envelopes and request helpers shared by
// the HTTP handlers.
package common

import (
	"errors"

	"github.com/amirasaad/fxledger/pkg/domain/account"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Code     string `json:"code,omitempty"`     // Stable machine readable error code
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// SuccessResponseJSON writes a success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes err as an RFC 9457 problem.
//
// The status is taken from ErrorToStatusCode unless an int is passed in args;
// a string in args replaces the detail, which otherwise is err's message.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	status := ErrorToStatusCode(err)
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Instance: c.OriginalURL(),
	}
	if err != nil {
		pd.Detail = err.Error()
	}

	var verr *account.ValidationError
	if errors.As(err, &verr) {
		pd.Code = string(verr.Code())
		pd.Errors = []FieldError{{Field: string(verr.Field), Code: pd.Code, Message: verr.Error()}}
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Code: fe.Tag(), Message: fe.Error()})
		}
		pd.Errors = fields
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case int:
			status = v
		case string:
			pd.Detail = v
		}
	}
	pd.Status = status

	return c.Status(status).JSON(pd, MIMEProblemJSON)
}

// MIMEProblemJSON is the media type of problem details responses.
const MIMEProblemJSON = "application/problem+json"

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fiberErr *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, account.ErrUnknownAccount):
		return fiber.StatusNotFound
	case errors.Is(err, account.ErrInsufficientFunds):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, account.ErrSameAccount),
		errors.Is(err, account.ErrInvalidAmount),
		errors.Is(err, account.ErrNonPositiveAmount):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}
