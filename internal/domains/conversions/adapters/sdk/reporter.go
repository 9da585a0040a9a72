// Package sdk reports conversions through the official Kameleoon Go SDK.
package sdk

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/ports"
)

// Tracker is the conversion surface of the SDK client.
type Tracker interface {
	TrackConversion(visitorCode string, goalID int) error
	TrackConversionRevenue(visitorCode string, goalID int, revenue float64) error
}

// Initializer blocks until the SDK has loaded its configuration.
type Initializer interface {
	WaitInit() error
}

var _ ports.Reporter = (*Reporter)(nil)

type Reporter struct {
	tracker Tracker
}

func NewReporter(tracker Tracker) (*Reporter, error) {
	if tracker == nil {
		return nil, errors.New("kameleoon sdk client is nil")
	}
	return &Reporter{tracker: tracker}, nil
}

// Report queues the conversion in the SDK, which flushes tracking requests on
// its own schedule. Zero revenue is sent without a revenue value.
func (r *Reporter) Report(_ context.Context, conversion domain.Conversion) error {
	if err := conversion.Validate(); err != nil {
		return err
	}
	goalID := int(conversion.GoalID)
	var err error
	if conversion.HasRevenue() {
		err = r.tracker.TrackConversionRevenue(conversion.VisitorCode, goalID, conversion.Revenue.InexactFloat64())
	} else {
		err = r.tracker.TrackConversion(conversion.VisitorCode, goalID)
	}
	if err != nil {
		return fmt.Errorf("track conversion %s via sdk: %w", conversion.OrderID, err)
	}
	return nil
}

// WaitReady waits for init to finish or ctx to end, whichever comes first.
func WaitReady(ctx context.Context, init Initializer) error {
	done := make(chan error, 1)
	go func() {
		done <- init.WaitInit()
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("kameleoon sdk init: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("kameleoon sdk init: %w", ctx.Err())
	}
}
