package dataapi

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/domain"
)

type fakeTracker struct {
	visitorCode string
	goalID      int64
	revenue     *float64
	calls       int
	err         error
}

func (f *fakeTracker) TrackConversion(_ context.Context, visitorCode string, goalID int64, revenue *float64) error {
	f.calls++
	f.visitorCode = visitorCode
	f.goalID = goalID
	f.revenue = revenue
	return f.err
}

func TestReport_ForwardsConversion(t *testing.T) {
	tracker := &fakeTracker{}
	reporter, err := NewReporter(tracker)
	require.NoError(t, err)

	err = reporter.Report(context.Background(), domain.Conversion{
		OrderID:     "1",
		VisitorCode: "abc",
		GoalID:      406352,
		Revenue:     decimal.RequireFromString("1299.99"),
	})
	require.NoError(t, err)
	require.Equal(t, "abc", tracker.visitorCode)
	require.Equal(t, int64(406352), tracker.goalID)
	require.NotNil(t, tracker.revenue)
	require.InDelta(t, 1299.99, *tracker.revenue, 1e-9)
}

func TestReport_ZeroRevenueOmitted(t *testing.T) {
	tracker := &fakeTracker{}
	reporter, err := NewReporter(tracker)
	require.NoError(t, err)

	require.NoError(t, reporter.Report(context.Background(), domain.Conversion{VisitorCode: "abc", GoalID: 1}))
	require.Nil(t, tracker.revenue)
}

func TestReport_InvalidConversionNotSent(t *testing.T) {
	tracker := &fakeTracker{}
	reporter, err := NewReporter(tracker)
	require.NoError(t, err)

	err = reporter.Report(context.Background(), domain.Conversion{GoalID: 1})
	require.ErrorIs(t, err, domain.ErrMissingVisitorCode)
	require.Zero(t, tracker.calls)
}

func TestReport_PropagatesTrackerError(t *testing.T) {
	boom := errors.New("boom")
	reporter, err := NewReporter(&fakeTracker{err: boom})
	require.NoError(t, err)

	require.ErrorIs(t, reporter.Report(context.Background(), domain.Conversion{VisitorCode: "abc", GoalID: 1}), boom)
}
