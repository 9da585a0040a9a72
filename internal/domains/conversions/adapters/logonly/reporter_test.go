package logonly

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/domain"
)

func TestReport_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := reporter.Report(context.Background(), domain.Conversion{
		OrderID:     "1700000000000",
		VisitorCode: "abc",
		GoalID:      406352,
		Revenue:     decimal.RequireFromString("99.99"),
	})
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "conversion recorded", entry["msg"])
	require.Equal(t, "1700000000000", entry["conversion.order_id"])
	require.Equal(t, "99.99", entry["conversion.revenue"])
}

func TestReport_RejectsInvalid(t *testing.T) {
	require.ErrorIs(t, NewReporter(nil).Report(context.Background(), domain.Conversion{VisitorCode: "abc"}), domain.ErrInvalidGoalID)
}
