package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingVisitorCode = errors.New("visitor code is required")
	ErrInvalidGoalID      = errors.New("goal id must be greater than zero")
	ErrNegativeRevenue    = errors.New("revenue must not be negative")
)

// Conversion records that a visitor reached an experimentation goal.
type Conversion struct {
	OrderID string
	// UserID is the cart owner. Order ids are millisecond timestamps, so the
	// pair is what identifies one checkout.
	UserID      string
	VisitorCode string
	GoalID      int64
	Revenue     decimal.Decimal
	OccurredAt  time.Time
}

// NewConversion validates and constructs a Conversion.
func NewConversion(orderID, visitorCode string, goalID int64, revenue decimal.Decimal, occurredAt time.Time) (Conversion, error) {
	conversion := Conversion{
		OrderID:     strings.TrimSpace(orderID),
		VisitorCode: strings.TrimSpace(visitorCode),
		GoalID:      goalID,
		Revenue:     revenue,
		OccurredAt:  occurredAt,
	}
	if err := conversion.Validate(); err != nil {
		return Conversion{}, err
	}
	return conversion, nil
}

// Validate enforces invariants on the conversion.
func (c Conversion) Validate() error {
	if c.VisitorCode == "" {
		return ErrMissingVisitorCode
	}
	if c.GoalID <= 0 {
		return ErrInvalidGoalID
	}
	if c.Revenue.IsNegative() {
		return ErrNegativeRevenue
	}
	return nil
}

// HasRevenue reports whether a non-zero revenue should accompany the event.
func (c Conversion) HasRevenue() bool {
	return !c.Revenue.IsZero()
}
