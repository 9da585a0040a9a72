package mapper

import (
	checkoutdomain "github.com/Apurer/go-gin-shop-api/internal/domains/checkout/domain"
)

// SuccessMessage accompanies every completed checkout.
const SuccessMessage = "Checkout successful"

// CheckoutRequest is the optional POST /checkout/:userId body.
type CheckoutRequest struct {
	VisitorCode string `json:"visitorCode"`
}

type OrderLine struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Order struct {
	OrderID   string      `json:"orderId"`
	UserID    string      `json:"userId"`
	Items     []OrderLine `json:"items"`
	Total     string      `json:"total"`
	Timestamp string      `json:"timestamp"`
}

type CheckoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

// FromDomainOrder builds the confirmation body. Timestamp is RFC 3339 UTC
// with millisecond precision.
func FromDomainOrder(order *checkoutdomain.Order) CheckoutResponse {
	resp := CheckoutResponse{Success: true, Message: SuccessMessage}
	if order == nil {
		resp.Order.Items = []OrderLine{}
		return resp
	}
	items := make([]OrderLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, OrderLine{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.Price.InexactFloat64(),
		})
	}
	resp.Order = Order{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Items:     items,
		Total:     order.TotalString(),
		Timestamp: order.PlacedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	return resp
}

