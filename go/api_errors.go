package shopserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	cartapp "github.com/Apurer/go-gin-shop-api/internal/domains/cart/application"
	catalogports "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
	checkoutapp "github.com/Apurer/go-gin-shop-api/internal/domains/checkout/application"
	apierrors "github.com/Apurer/go-gin-shop-api/internal/shared/errors"
)

var responder = apierrors.NewResponder("",
	mapCatalogError,
	mapCartError,
	mapCheckoutError,
)

// respondError renders err as a problem document.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondBadRequest reports an unparsable path parameter.
func respondBadRequest(c *gin.Context, err error) {
	responder.Respond(c, apierrors.NewBadRequestProblem(err.Error()))
}

// respondBinding reports a body that failed to decode or validate.
func respondBinding(c *gin.Context, err error) {
	responder.RespondBinding(c, err)
}

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	var notFound *productNotFoundError
	if errors.As(err, &notFound) {
		return apierrors.NewNotFoundProblem("Product", notFound.id), true
	}
	if errors.Is(err, catalogports.ErrNotFound) {
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithMessage("Product not found"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCartError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, cartapp.ErrInvalidInput) {
		return apierrors.NewValidationProblem(err.Error(), nil), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCheckoutError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return apierrors.ErrEmptyCart.WithDetail(err.Error()), true
	case errors.Is(err, checkoutapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(err.Error(), nil), true
	}
	return apierrors.ProblemDetail{}, false
}

// productNotFoundError keeps the requested id for the problem document.
type productNotFoundError struct {
	id  int64
	err error
}

func (e *productNotFoundError) Error() string { return e.err.Error() }

func (e *productNotFoundError) Unwrap() error { return e.err }
