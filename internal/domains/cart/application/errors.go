package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-shop-api/internal/domains/cart/domain"
)

var (
	// ErrInvalidInput signals the request violated a cart invariant.
	ErrInvalidInput = errors.New("invalid cart input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidUserID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrQuantityOverflow) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
