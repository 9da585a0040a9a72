package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProductID = errors.New("product id must be greater than zero")
	ErrInvalidName      = errors.New("product name is required")
	ErrNegativePrice    = errors.New("product price must not be negative")
)

// Product is an immutable catalog entry.
type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Description string
	Image       string
	Category    string
}

// NewProduct validates and constructs a Product.
func NewProduct(id int64, name string, price decimal.Decimal, description, image, category string) (*Product, error) {
	product := &Product{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Price:       price,
		Description: description,
		Image:       image,
		Category:    category,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the product.
func (p *Product) Validate() error {
	if p.ID <= 0 {
		return ErrInvalidProductID
	}
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// InCategory reports whether the product belongs to category, ignoring case.
func (p *Product) InCategory(category string) bool {
	return strings.EqualFold(p.Category, category)
}

// Matches reports whether query occurs in the name, description or category,
// ignoring case. The empty query matches every product.
func (p *Product) Matches(query string) bool {
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}
