package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/domains/shipping/model"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestUpsertRateRuleRequest_Validate(t *testing.T) {
	valid := func() model.UpsertRateRuleRequest {
		return model.UpsertRateRuleRequest{
			ShippingType:     "standard",
			Zone:             strPtr("A"),
			BaseFee:          decimal.NewFromInt(10),
			PerKgFee:         decimal.NewFromInt(2),
			IncludedWeightKg: 1.0,
			EstimatedDays:    "1-3 days",
			Active:           true,
		}
	}

	t.Run("valid zone rule", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("valid distance rule", func(t *testing.T) {
		r := valid()
		r.Zone = nil
		r.MinDistanceKm = floatPtr(0)
		r.MaxDistanceKm = floatPtr(10)
		require.NoError(t, r.Validate())
	})

	t.Run("negative base fee rejected", func(t *testing.T) {
		r := valid()
		r.BaseFee = decimal.NewFromInt(-1)
		require.Error(t, r.Validate())
	})

	t.Run("negative per kg fee rejected", func(t *testing.T) {
		r := valid()
		r.PerKgFee = decimal.NewFromInt(-2)
		require.Error(t, r.Validate())
	})

	t.Run("zero fees allowed", func(t *testing.T) {
		r := valid()
		r.BaseFee = decimal.Zero
		r.PerKgFee = decimal.Zero
		require.NoError(t, r.Validate())
	})

	t.Run("zone and distance band together rejected", func(t *testing.T) {
		r := valid()
		r.MinDistanceKm = floatPtr(0)
		require.Error(t, r.Validate())
	})

	t.Run("neither zone nor distance band rejected", func(t *testing.T) {
		r := valid()
		r.Zone = nil
		require.Error(t, r.Validate())
	})

	t.Run("unknown zone rejected", func(t *testing.T) {
		r := valid()
		r.Zone = strPtr("Z")
		require.Error(t, r.Validate())
	})
}
