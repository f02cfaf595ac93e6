package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/domains/shipping/geocoder/mock"
	"marketplace-backend/internal/domains/shipping/model"
	"marketplace-backend/internal/domains/shipping/service"
)

// newTestShippingService build service với rate table tĩnh, mock geocoder,
// không DB, không Redis.
func newTestShippingService(t *testing.T, rules []*model.RateRule) service.ServiceInterface {
	t.Helper()

	weights := service.NewWeightResolver(0.5, 0.5)
	zones := service.NewZoneResolver()
	distances := service.NewDistanceResolver(warehouseOrigin, mock.NewMockGeocoder(), nil, 0)
	rates := service.NewRateTableFromRules(rules)
	surcharge := service.NewSurchargeEngine(5.0, 0, accraLocation(t))

	return service.NewShippingService(nil, weights, zones, distances, rates, surcharge)
}

func standardZoneRules() []*model.RateRule {
	sameDay := zoneRule(model.ShippingTypeSameDay, model.ZoneA, 15, 3)
	sameDay.CutoffTime = strPtr("15:00")
	sameDay.EstimatedDays = "Arrives Today"

	return []*model.RateRule{
		zoneRule(model.ShippingTypeStandard, model.ZoneA, 10, 2),
		zoneRule(model.ShippingTypeStandard, model.ZoneB, 15, 3),
		zoneRule(model.ShippingTypeStandard, model.ZoneC, 20, 8),
		sameDay,
		zoneRule(model.ShippingTypeExpress, model.ZoneA, 25, 5),
	}
}

func TestCalculateFee_ZoneAStandard(t *testing.T) {
	svc := newTestShippingService(t, standardZoneRules())

	opt, err := svc.CalculateFee(context.Background(), &model.CalculateFeeRequest{
		Weight:       2.0,
		ShippingType: "standard",
		Region:       "Greater Accra",
		City:         "Osu",
	})

	require.NoError(t, err)
	require.True(t, opt.Available)
	// base 10 + perKg 2 * (2kg - 1kg included) = 12
	require.True(t, decimal.NewFromInt(12).Equal(opt.Fee), "got %s", opt.Fee)
	require.NotNil(t, opt.Zone)
	require.Equal(t, model.ZoneA, *opt.Zone)
	require.Equal(t, "1-3 days", opt.EstimatedDays)
	require.Equal(t, 2.0, opt.Weight)

	require.Len(t, opt.Breakdown, 2)
	require.Equal(t, model.BreakdownBaseFee, opt.Breakdown[0].Label)
	require.True(t, decimal.NewFromInt(10).Equal(opt.Breakdown[0].Amount))
	require.Equal(t, model.BreakdownPerKgFee, opt.Breakdown[1].Label)
	require.True(t, decimal.NewFromInt(2).Equal(opt.Breakdown[1].Amount))
}

func TestCalculateFee_WeightFloor(t *testing.T) {
	svc := newTestShippingService(t, standardZoneRules())

	opt, err := svc.CalculateFee(context.Background(), &model.CalculateFeeRequest{
		Weight:       0.1,
		ShippingType: "standard",
		Zone:         "A",
	})

	require.NoError(t, err)
	require.Equal(t, 0.5, opt.Weight)
	// 0.5kg < 1kg included → chỉ base fee
	require.True(t, decimal.NewFromInt(10).Equal(opt.Fee))
}

func TestCalculateFee_LegacyTypeField(t *testing.T) {
	svc := newTestShippingService(t, standardZoneRules())

	opt, err := svc.CalculateFee(context.Background(), &model.CalculateFeeRequest{
		Weight: 1.0,
		Type:   "express", // field cũ của mobile clients
		Zone:   "A",
	})

	require.NoError(t, err)
	require.Equal(t, model.ShippingTypeExpress, opt.Type)
	require.True(t, decimal.NewFromInt(25).Equal(opt.Fee))
}

func TestCalculateFee_FragileSameDayItemized(t *testing.T) {
	svc := newTestShippingService(t, standardZoneRules())

	orderTime := accraTime(t, 10, 0)
	opt, err := svc.CalculateFee(context.Background(), &model.CalculateFeeRequest{
		Weight:       2.0,
		ShippingType: "same_day",
		Zone:         "A",
		Fragile:      true,
		OrderTime:    &orderTime,
	})

	require.NoError(t, err)
	require.True(t, opt.Available)
	// base 15 + perKg 3 + fragile 5 = 23
	require.True(t, decimal.NewFromInt(23).Equal(opt.Fee), "got %s", opt.Fee)
	require.Equal(t, "Arrives Today", opt.EstimatedDays)

	require.Len(t, opt.Breakdown, 3)
	require.Equal(t, model.BreakdownFragileSurcharge, opt.Breakdown[2].Label)
	require.True(t, decimal.NewFromInt(5).Equal(opt.Breakdown[2].Amount))
}

func TestCalculateFee_SameDayAfterCutoff(t *testing.T) {
	svc := newTestShippingService(t, standardZoneRules())

	orderTime := accraTime(t, 16, 30)
	opt, err := svc.CalculateFee(context.Background(), &model.CalculateFeeRequest{
		Weight:       2.0,
		ShippingType: "same_day",
		Zone:         "A",
		OrderTime:    &orderTime,
	})

	require.NoError(t, err)
	require.False(t, opt.Available)
	require.Equal(t, model.ReasonAfterCutoff, opt.UnavailableReason)

	// Standard không bị ảnh hưởng bởi cutoff của same_day
	stdOpt, err := svc.CalculateFee(context.Background(), &model.CalculateFeeRequest{
		Weight:       2.0,
		ShippingType: "standard",
		Zone:         "A",
		OrderTime:    &orderTime,
	})
	require.NoError(t, err)
	require.True(t, stdOpt.Available)
}

func TestCalculateFee_DistancePricing(t *testing.T) {
	ten := 10.0
	thirty := 30.0
	rules := append(standardZoneRules(),
		distanceRule(model.ShippingTypeStandard, 0, &ten, 8, 2),
		distanceRule(model.ShippingTypeStandard, 10, &thirty, 12, 2),
		distanceRule(model.ShippingTypeStandard, 30, nil, 25, 4),
	)
	svc := newTestShippingService(t, rules)

	km := 5.0
	opt, err := svc.CalculateFee(context.Background(), &model.CalculateFeeRequest{
		Weight:       2.0,
		ShippingType: "standard",
		DistanceKm:   &km,
	})

	require.NoError(t, err)
	require.True(t, opt.Available)
	// distance band [0,10): base 8 + perKg 2 = 10
	require.True(t, decimal.NewFromInt(10).Equal(opt.Fee))
	require.NotNil(t, opt.DistanceKm)
	require.Equal(t, 5.0, *opt.DistanceKm)
	require.Nil(t, opt.Zone)
}

func TestCalculateFee_GeocodeFailureFallsBackToZone(t *testing.T) {
	svc := newTestShippingService(t, standardZoneRules())

	// Address không geocode được nhưng có region → zone pricing, không error
	opt, err := svc.CalculateFee(context.Background(), &model.CalculateFeeRequest{
		Weight:             2.0,
		ShippingType:       "standard",
		Region:             "Greater Accra",
		DestinationAddress: "unmapped back road",
	})

	require.NoError(t, err)
	require.True(t, opt.Available)
	// zone B: base 15 + perKg 3 = 18
	require.True(t, decimal.NewFromInt(18).Equal(opt.Fee))
	require.NotNil(t, opt.Zone)
	require.Equal(t, model.ZoneB, *opt.Zone)
}

func TestCalculateFee_DistanceResolvedButNoDistanceRules(t *testing.T) {
	// Chỉ có zone rules: distance resolve thành công vẫn phải
	// rơi về zone pricing thay vì unavailable
	svc := newTestShippingService(t, standardZoneRules())

	opt, err := svc.CalculateFee(context.Background(), &model.CalculateFeeRequest{
		Weight:             2.0,
		ShippingType:       "standard",
		Region:             "Ashanti",
		City:               "Kumasi",
		DestinationAddress: "Adum, Kumasi",
	})

	require.NoError(t, err)
	require.True(t, opt.Available)
	// zone C: base 20 + perKg 8 = 28
	require.True(t, decimal.NewFromInt(28).Equal(opt.Fee))
}

func TestCalculateFee_NoLocationUnresolved(t *testing.T) {
	svc := newTestShippingService(t, standardZoneRules())

	opt, err := svc.CalculateFee(context.Background(), &model.CalculateFeeRequest{
		Weight:       2.0,
		ShippingType: "standard",
	})

	require.NoError(t, err)
	require.False(t, opt.Available)
	require.Equal(t, model.ReasonLocationUnresolved, opt.UnavailableReason)
}

func TestCalculateFee_InvalidType(t *testing.T) {
	svc := newTestShippingService(t, standardZoneRules())

	_, err := svc.CalculateFee(context.Background(), &model.CalculateFeeRequest{
		Weight:       2.0,
		ShippingType: "teleport",
		Zone:         "A",
	})

	require.Error(t, err)
	require.True(t, model.IsInvalidRequest(err))
}

func TestCalculateFee_NegativeWeight(t *testing.T) {
	svc := newTestShippingService(t, standardZoneRules())

	_, err := svc.CalculateFee(context.Background(), &model.CalculateFeeRequest{
		Weight:       -1.0,
		ShippingType: "standard",
		Zone:         "A",
	})

	require.Error(t, err)
	require.True(t, model.IsInvalidRequest(err))
}

func TestCalculateFee_DeterministicForSameInput(t *testing.T) {
	svc := newTestShippingService(t, standardZoneRules())

	orderTime := accraTime(t, 10, 0)
	req := func() *model.CalculateFeeRequest {
		return &model.CalculateFeeRequest{
			Weight:       2.0,
			ShippingType: "same_day",
			Zone:         "A",
			Fragile:      true,
			OrderTime:    &orderTime,
		}
	}

	first, err := svc.CalculateFee(context.Background(), req())
	require.NoError(t, err)
	second, err := svc.CalculateFee(context.Background(), req())
	require.NoError(t, err)

	// Fragile surcharge không được cộng dồn giữa các lần quote
	require.True(t, first.Fee.Equal(second.Fee))
	require.Len(t, second.Breakdown, len(first.Breakdown))
}

func TestGetShippingOptions_PreservesOrder(t *testing.T) {
	// Fixture không có cutoff để kết quả độc lập với giờ chạy test
	rules := []*model.RateRule{
		zoneRule(model.ShippingTypeStandard, model.ZoneA, 10, 2),
		zoneRule(model.ShippingTypeSameDay, model.ZoneA, 15, 3),
		zoneRule(model.ShippingTypeExpress, model.ZoneA, 25, 5),
	}
	svc := newTestShippingService(t, rules)

	resp, err := svc.GetShippingOptions(context.Background(), &model.ShippingOptionsRequest{
		Weight: 2.0,
		Zone:   "A",
	})

	require.NoError(t, err)
	require.Len(t, resp.Options, 3)
	require.Equal(t, model.ShippingTypeStandard, resp.Options[0].Type)
	require.Equal(t, model.ShippingTypeSameDay, resp.Options[1].Type)
	require.Equal(t, model.ShippingTypeExpress, resp.Options[2].Type)

	for _, opt := range resp.Options {
		require.True(t, opt.Available)
	}

	require.True(t, decimal.NewFromInt(12).Equal(resp.Options[0].Fee))
	require.True(t, decimal.NewFromInt(18).Equal(resp.Options[1].Fee))
	require.True(t, decimal.NewFromInt(30).Equal(resp.Options[2].Fee))
}

func TestGetShippingOptions_MissingTypeUnavailable(t *testing.T) {
	rules := []*model.RateRule{
		zoneRule(model.ShippingTypeStandard, model.ZoneA, 10, 2),
	}
	svc := newTestShippingService(t, rules)

	resp, err := svc.GetShippingOptions(context.Background(), &model.ShippingOptionsRequest{
		Weight: 1.0,
		Zone:   "A",
	})

	require.NoError(t, err)
	require.Len(t, resp.Options, 3)
	require.True(t, resp.Options[0].Available)
	require.False(t, resp.Options[1].Available)
	require.False(t, resp.Options[2].Available)
	require.Equal(t, model.ReasonNoRateForZone, resp.Options[1].UnavailableReason)
}

func TestGetShippingOptions_SharedLocationNoRace(t *testing.T) {
	// Chạy nhiều lần để fan-out goroutines lộ race nếu có
	svc := newTestShippingService(t, standardZoneRules())

	for i := 0; i < 50; i++ {
		resp, err := svc.GetShippingOptions(context.Background(), &model.ShippingOptionsRequest{
			Weight: 2.0,
			Region: "Greater Accra",
			City:   "Osu",
		})
		require.NoError(t, err)
		require.Len(t, resp.Options, 3)
		require.Equal(t, model.ShippingTypeStandard, resp.Options[0].Type)
	}
}
