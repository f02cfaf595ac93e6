package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/domains/shipping/model"
	"marketplace-backend/internal/domains/shipping/service"
)

func zonePtr(z model.Zone) *model.Zone { return &z }

func zoneRule(st model.ShippingType, zone model.Zone, base, perKg int64) *model.RateRule {
	return &model.RateRule{
		ID:               uuid.New(),
		ShippingType:     st,
		Zone:             zonePtr(zone),
		BaseFee:          decimal.NewFromInt(base),
		PerKgFee:         decimal.NewFromInt(perKg),
		IncludedWeightKg: 1.0,
		EstimatedDays:    "1-3 days",
		Active:           true,
	}
}

func distanceRule(st model.ShippingType, min float64, max *float64, base, perKg int64) *model.RateRule {
	return &model.RateRule{
		ID:               uuid.New(),
		ShippingType:     st,
		MinDistanceKm:    &min,
		MaxDistanceKm:    max,
		BaseFee:          decimal.NewFromInt(base),
		PerKgFee:         decimal.NewFromInt(perKg),
		IncludedWeightKg: 1.0,
		EstimatedDays:    "1-3 days",
		Active:           true,
	}
}

func TestRateTable_FindByZone(t *testing.T) {
	table := service.NewRateTableFromRules([]*model.RateRule{
		zoneRule(model.ShippingTypeStandard, model.ZoneA, 10, 2),
		zoneRule(model.ShippingTypeStandard, model.ZoneC, 20, 4),
		zoneRule(model.ShippingTypeExpress, model.ZoneA, 25, 5),
	})

	rule, err := table.FindByZone(model.ShippingTypeStandard, model.ZoneA)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(10).Equal(rule.BaseFee))

	rule, err = table.FindByZone(model.ShippingTypeExpress, model.ZoneA)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(25).Equal(rule.BaseFee))

	_, err = table.FindByZone(model.ShippingTypeStandard, model.ZoneB)
	require.Error(t, err)
	require.True(t, model.IsNoRateFound(err))
}

func TestRateTable_FindByDistanceBands(t *testing.T) {
	ten := 10.0
	thirty := 30.0
	table := service.NewRateTableFromRules([]*model.RateRule{
		distanceRule(model.ShippingTypeStandard, 0, &ten, 8, 2),
		distanceRule(model.ShippingTypeStandard, 10, &thirty, 12, 2),
		distanceRule(model.ShippingTypeStandard, 30, nil, 25, 4),
	})

	tests := []struct {
		km       float64
		wantBase int64
	}{
		{0, 8},
		{5, 8},
		{9.99, 8},
		{10, 12}, // band boundary thuộc band trên: [min, max)
		{29.9, 12},
		{30, 25},
		{500, 25}, // open-ended band
	}

	for _, tt := range tests {
		rule, err := table.FindByDistance(model.ShippingTypeStandard, tt.km)
		require.NoError(t, err, "km=%v", tt.km)
		require.True(t, decimal.NewFromInt(tt.wantBase).Equal(rule.BaseFee), "km=%v", tt.km)
	}
}

func TestRateTable_InactiveRulesSkipped(t *testing.T) {
	inactive := zoneRule(model.ShippingTypeStandard, model.ZoneA, 10, 2)
	inactive.Active = false

	table := service.NewRateTableFromRules([]*model.RateRule{inactive})

	_, err := table.FindByZone(model.ShippingTypeStandard, model.ZoneA)
	require.True(t, model.IsNoRateFound(err))
}

func TestRateTable_Fee(t *testing.T) {
	table := service.NewRateTableFromRules(nil)
	rule := zoneRule(model.ShippingTypeStandard, model.ZoneA, 10, 2)

	// fee = base + perKg * max(0, weight - included)
	tests := []struct {
		weight float64
		want   int64
	}{
		{0.5, 10}, // dưới included → chỉ base
		{1.0, 10}, // đúng included
		{2.0, 12}, // 1kg thừa
		{3.5, 15}, // 2.5kg thừa
	}

	for _, tt := range tests {
		fee := table.Fee(rule, tt.weight)
		require.True(t, decimal.NewFromInt(tt.want).Equal(fee),
			"weight=%v: got %s want %d", tt.weight, fee, tt.want)
	}
}

func TestRateTable_FeeFractionalWeight(t *testing.T) {
	table := service.NewRateTableFromRules(nil)
	rule := zoneRule(model.ShippingTypeStandard, model.ZoneA, 10, 2)

	fee := table.Fee(rule, 1.5)
	require.True(t, decimal.NewFromInt(11).Equal(fee))
}
