package errors

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper maps domain/application errors to ProblemDetail.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem documents. Mappers are tried in order before the
// internal error fallback.
type Responder struct {
	// BaseURI is prepended to problem type URIs if they are relative.
	BaseURI string
	mappers []ErrorMapper
}

// NewResponder creates a responder that tries mappers in order.
func NewResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{BaseURI: baseURI, mappers: mappers}
}

// Respond aborts the request with problem. Instance defaults to the request
// path and Message to the title.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if problem.Message == "" {
		problem.Message = problem.Title
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError maps err and responds; unmapped errors become a 500.
func (r *Responder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if mapper == nil {
			continue
		}
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}

// RespondBinding reports a request body gin could not bind. Validator
// failures carry the offending fields.
func (r *Responder) RespondBinding(c *gin.Context, err error) {
	r.Respond(c, BindingProblem(err))
}

// BindingProblem converts a gin binding error into a 400 problem.
func BindingProblem(err error) ProblemDetail {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return NewValidationProblem("request body failed validation", fields)
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return NewBadRequestProblem("request body is not valid JSON")
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return NewBadRequestProblem(typeErr.Field + " has the wrong type")
	}
	return NewBadRequestProblem(err.Error())
}
