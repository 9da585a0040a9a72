package domain

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrInvalidUserID    = errors.New("user id is required")
	ErrInvalidQuantity  = errors.New("quantity must not be negative")
	ErrQuantityOverflow = errors.New("quantity is too large")
)

// DefaultQuantity is added when a request omits the quantity.
const DefaultQuantity = 1

// LineItem pairs a product with a quantity. ProductID is not checked against
// the catalog; checkout prices unknown products at zero.
type LineItem struct {
	ProductID int64
	Quantity  int
}

// Cart holds one user's pending selections in insertion order.
// It never contains two line items for the same product.
type Cart struct {
	UserID string
	Items  []LineItem
}

// NewCart returns an empty cart for userID.
func NewCart(userID string) (*Cart, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return &Cart{UserID: userID, Items: []LineItem{}}, nil
}

// Add merges quantity into an existing line for productID or appends a new one.
func (c *Cart) Add(productID int64, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if idx := c.indexOf(productID); idx >= 0 {
		if c.Items[idx].Quantity > math.MaxInt-quantity {
			return ErrQuantityOverflow
		}
		c.Items[idx].Quantity += quantity
		return nil
	}
	c.Items = append(c.Items, LineItem{ProductID: productID, Quantity: quantity})
	return nil
}

// Remove drops the line for productID. Missing lines are ignored.
func (c *Cart) Remove(productID int64) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
}

// SetQuantity overwrites the quantity of an existing line. A quantity of zero
// or less removes the line. Missing lines are ignored.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	c.Items[idx].Quantity = quantity
}

// Clear empties the cart while keeping it registered for the user.
func (c *Cart) Clear() {
	c.Items = []LineItem{}
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Clone returns a deep copy.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return &Cart{UserID: c.UserID, Items: items}
}

func (c *Cart) indexOf(productID int64) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
