package domain

import "github.com/shopspring/decimal"

// DefaultProducts returns the built-in storefront catalog in display order.
func DefaultProducts() []*Product {
	return []*Product{
		{
			ID:          1,
			Name:        "Wireless Headphones",
			Price:       decimal.RequireFromString("99.99"),
			Description: "High-quality wireless headphones with noise cancellation",
			Image:       "/images/headset.jpg",
			Category:    "Electronics",
		},
		{
			ID:          2,
			Name:        "Smartphone",
			Price:       decimal.RequireFromString("699.99"),
			Description: "Latest smartphone with advanced camera features",
			Image:       "/images/smartphone.jpg",
			Category:    "Electronics",
		},
		{
			ID:          3,
			Name:        "Laptop",
			Price:       decimal.RequireFromString("1299.99"),
			Description: "Powerful laptop for work and gaming",
			Image:       "/images/laptop.jpg",
			Category:    "Computing",
		},
		{
			ID:          4,
			Name:        "Smart Watch",
			Price:       decimal.RequireFromString("299.99"),
			Description: "Fitness tracking and smart notifications",
			Image:       "/images/smart-watch.jpg",
			Category:    "Accessories",
		},
		{
			ID:          5,
			Name:        "Tablet",
			Price:       decimal.RequireFromString("449.99"),
			Description: "10-inch tablet perfect for entertainment and productivity",
			Image:       "/images/tablet.jpg",
			Category:    "Computing",
		},
		{
			ID:          6,
			Name:        "Gaming Console",
			Price:       decimal.RequireFromString("499.99"),
			Description: "Next-generation gaming console with 4K support",
			Image:       "/images/gaming-console.jpg",
			Category:    "Gaming",
		},
	}
}
