// Package errors provides RFC 7807 Problem Details for the shop HTTP API.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail represents an RFC 7807 Problem Details response.
// See: https://www.rfc-editor.org/rfc/rfc7807
//
// Message duplicates the human readable text under the key storefront clients
// already read (`{"message": "..."}`), so existing consumers keep working.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Message  string `json:"message,omitempty"`
	// Extensions holds additional problem-specific properties.
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Error implements the error interface.
func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithMessage returns a copy carrying the client-facing message.
func (p ProblemDetail) WithMessage(message string) ProblemDetail {
	p.Message = message
	return p
}

// WithInstance returns a copy with the given instance URI.
func (p ProblemDetail) WithInstance(instance string) ProblemDetail {
	p.Instance = instance
	return p
}

// WithExtension returns a copy with an additional extension property.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	extensions := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		extensions[k] = v
	}
	extensions[key] = value
	p.Extensions = extensions
	return p
}

const (
	TypeValidation = "/problems/validation-error"
	TypeNotFound   = "/problems/not-found"
	TypeBadRequest = "/problems/bad-request"
	TypeEmptyCart  = "/problems/empty-cart"
	TypeInternal   = "/problems/internal-error"
)

var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	// ErrValidation indicates the request failed validation.
	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	// ErrEmptyCart indicates a checkout was attempted without line items.
	ErrEmptyCart = ProblemDetail{
		Type:    TypeEmptyCart,
		Title:   "Cart Is Empty",
		Status:  http.StatusBadRequest,
		Message: "Cart is empty",
	}

	// ErrInternal indicates an unexpected server error.
	ErrInternal = ProblemDetail{
		Type:    TypeInternal,
		Title:   "Internal Server Error",
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
	}
)

// NewNotFoundProblem creates a not found error for a specific resource.
func NewNotFoundProblem(resourceType string, identifier any) ProblemDetail {
	return ErrNotFound.
		WithDetail(fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier)).
		WithMessage(resourceType + " not found").
		WithExtension("resourceType", resourceType).
		WithExtension("identifier", identifier)
}

// NewBadRequestProblem creates a 400 whose message mirrors the detail.
func NewBadRequestProblem(detail string) ProblemDetail {
	return ErrBadRequest.WithDetail(detail).WithMessage(detail)
}

// NewValidationProblem creates a validation error with field-level details.
func NewValidationProblem(detail string, fieldErrors map[string]string) ProblemDetail {
	problem := ErrValidation.WithDetail(detail).WithMessage(detail)
	if len(fieldErrors) > 0 {
		problem = problem.WithExtension("fields", fieldErrors)
	}
	return problem
}
