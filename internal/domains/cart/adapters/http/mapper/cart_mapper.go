package mapper

import (
	cartdomain "github.com/Apurer/go-gin-shop-api/internal/domains/cart/domain"
)

// LineItem is the JSON shape of one cart entry.
type LineItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// AddItemRequest is the body of POST /cart/:userId. A nil Quantity means one.
type AddItemRequest struct {
	ProductID *int64 `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

// QuantityOrDefault resolves the optional quantity.
func (r AddItemRequest) QuantityOrDefault() int {
	if r.Quantity == nil {
		return cartdomain.DefaultQuantity
	}
	return *r.Quantity
}

// UpdateQuantityRequest is the body of PUT /cart/:userId/:productId.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// FromDomainCart renders the cart as its line items; never nil.
func FromDomainCart(cart *cartdomain.Cart) []LineItem {
	if cart == nil {
		return []LineItem{}
	}
	items := make([]LineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, LineItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return items
}
