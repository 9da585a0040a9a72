package application

import (
	"errors"
	"fmt"

	cartdomain "github.com/Apurer/go-gin-shop-api/internal/domains/cart/domain"
)

var (
	// ErrEmptyCart is returned when the user has nothing to check out.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidInput signals a malformed checkout request.
	ErrInvalidInput = errors.New("invalid checkout input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, cartdomain.ErrInvalidUserID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
