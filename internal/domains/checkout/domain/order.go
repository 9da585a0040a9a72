package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNoLines = errors.New("order needs at least one line")

// OrderLine is a priced cart line. Unknown products carry an empty name and
// a zero price.
type OrderLine struct {
	ProductID   int64
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// Subtotal is price times quantity.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the confirmation returned by checkout. It is never stored.
type Order struct {
	ID       string
	UserID   string
	Lines    []OrderLine
	Total    decimal.Decimal
	PlacedAt time.Time
}

// NewOrder totals the lines.
func NewOrder(id, userID string, lines []OrderLine, placedAt time.Time) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return &Order{
		ID:       strings.TrimSpace(id),
		UserID:   userID,
		Lines:    append([]OrderLine(nil), lines...),
		Total:    total,
		PlacedAt: placedAt,
	}, nil
}

// TotalString renders the total with exactly two decimals.
func (o *Order) TotalString() string {
	return o.Total.StringFixed(2)
}
