package mapper

import (
	catalogdomain "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
)

// Product is the JSON shape served to storefront clients. Price is a JSON number.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// FromDomainProduct converts a catalog product to its transport representation.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price.InexactFloat64(),
		Description: product.Description,
		Image:       product.Image,
		Category:    product.Category,
	}
}

// FromDomainProducts converts a list, always returning a non-nil slice so
// empty results encode as [].
func FromDomainProducts(products []*catalogdomain.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, product := range products {
		result = append(result, FromDomainProduct(product))
	}
	return result
}
