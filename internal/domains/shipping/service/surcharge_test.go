package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/domains/shipping/model"
	"marketplace-backend/internal/domains/shipping/service"
)

func strPtr(s string) *string { return &s }

func accraTime(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Accra")
	require.NoError(t, err)
	return time.Date(2026, 3, 10, hour, minute, 0, 0, loc)
}

func accraLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Accra")
	require.NoError(t, err)
	return loc
}

func TestSurchargeEngine_CutoffBoundary(t *testing.T) {
	engine := service.NewSurchargeEngine(5.0, 0, accraLocation(t))
	rule := &model.RateRule{CutoffTime: strPtr("15:00")}

	tests := []struct {
		name      string
		orderTime time.Time
		available bool
	}{
		{"well before cutoff", accraTime(t, 10, 0), true},
		{"one minute before", accraTime(t, 14, 59), true},
		{"exactly at cutoff", accraTime(t, 15, 0), false},
		{"one minute after", accraTime(t, 15, 1), false},
		{"evening", accraTime(t, 20, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			available, reason := engine.CheckCutoff(rule, tt.orderTime)
			require.Equal(t, tt.available, available)
			if !tt.available {
				require.Equal(t, model.ReasonAfterCutoff, reason)
			}
		})
	}
}

func TestSurchargeEngine_NoCutoffAlwaysAvailable(t *testing.T) {
	engine := service.NewSurchargeEngine(5.0, 0, accraLocation(t))

	available, _ := engine.CheckCutoff(&model.RateRule{}, accraTime(t, 23, 59))
	require.True(t, available)
}

func TestSurchargeEngine_MalformedCutoffIgnored(t *testing.T) {
	engine := service.NewSurchargeEngine(5.0, 0, accraLocation(t))
	rule := &model.RateRule{CutoffTime: strPtr("not-a-time")}

	available, _ := engine.CheckCutoff(rule, accraTime(t, 23, 0))
	require.True(t, available)
}

func TestSurchargeEngine_FragileFlat(t *testing.T) {
	engine := service.NewSurchargeEngine(5.0, 0, accraLocation(t))

	fee, surcharge := engine.ApplyFragile(decimal.NewFromInt(15), true)
	require.True(t, decimal.NewFromInt(20).Equal(fee))
	require.True(t, decimal.NewFromInt(5).Equal(surcharge))
}

func TestSurchargeEngine_FragilePercent(t *testing.T) {
	// Percent > 0 thắng flat amount
	engine := service.NewSurchargeEngine(5.0, 10, accraLocation(t))

	fee, surcharge := engine.ApplyFragile(decimal.NewFromInt(20), true)
	require.True(t, decimal.NewFromInt(22).Equal(fee))
	require.True(t, decimal.NewFromInt(2).Equal(surcharge))
}

func TestSurchargeEngine_NotFragile(t *testing.T) {
	engine := service.NewSurchargeEngine(5.0, 0, accraLocation(t))

	fee, surcharge := engine.ApplyFragile(decimal.NewFromInt(15), false)
	require.True(t, decimal.NewFromInt(15).Equal(fee))
	require.True(t, surcharge.IsZero())
}

func TestSurchargeEngine_DeterministicForSameInput(t *testing.T) {
	engine := service.NewSurchargeEngine(5.0, 0, accraLocation(t))

	first, _ := engine.ApplyFragile(decimal.NewFromInt(15), true)
	second, _ := engine.ApplyFragile(decimal.NewFromInt(15), true)
	require.True(t, first.Equal(second))
}
