// Package dataapi reports conversions straight to the Kameleoon Data API.
package dataapi

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/ports"
)

// Tracker is the subset of the Kameleoon client the reporter needs.
type Tracker interface {
	TrackConversion(ctx context.Context, visitorCode string, goalID int64, revenue *float64) error
}

var _ ports.Reporter = (*Reporter)(nil)

type Reporter struct {
	tracker Tracker
}

func NewReporter(tracker Tracker) (*Reporter, error) {
	if tracker == nil {
		return nil, errors.New("kameleoon tracker is nil")
	}
	return &Reporter{tracker: tracker}, nil
}

func (r *Reporter) Report(ctx context.Context, conversion domain.Conversion) error {
	if err := conversion.Validate(); err != nil {
		return err
	}
	return r.tracker.TrackConversion(ctx, conversion.VisitorCode, conversion.GoalID, Revenue(conversion))
}

// Revenue converts the conversion revenue to the Data API representation.
// Zero revenue is omitted.
func Revenue(conversion domain.Conversion) *float64 {
	if !conversion.HasRevenue() {
		return nil
	}
	v := conversion.Revenue.InexactFloat64()
	return &v
}
