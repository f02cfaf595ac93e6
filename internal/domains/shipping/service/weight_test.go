package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/domains/shipping/model"
	"marketplace-backend/internal/domains/shipping/service"
)

func floatPtr(v float64) *float64 { return &v }

func TestWeightResolver_ExplicitWeight(t *testing.T) {
	resolver := service.NewWeightResolver(0.5, 0.5)

	require.Equal(t, 2.0, resolver.Resolve(2.0, nil))
}

func TestWeightResolver_MinBillableFloor(t *testing.T) {
	resolver := service.NewWeightResolver(0.5, 0.5)

	// Weight dưới floor luôn bị kéo lên floor
	require.Equal(t, 0.5, resolver.Resolve(0.2, nil))
	require.Equal(t, 0.5, resolver.Resolve(0, nil))
}

func TestWeightResolver_DeriveFromItems(t *testing.T) {
	resolver := service.NewWeightResolver(0.5, 0.5)

	items := []model.QuoteItem{
		{WeightKg: floatPtr(1.0), Quantity: 2},
		{WeightKg: floatPtr(0.3), Quantity: 1},
	}

	require.InDelta(t, 2.3, resolver.Resolve(0, items), 1e-9)
}

func TestWeightResolver_MissingItemWeightUsesDefault(t *testing.T) {
	resolver := service.NewWeightResolver(0.5, 0.5)

	items := []model.QuoteItem{
		{Quantity: 3}, // không có weight → 0.5 mỗi item
	}

	require.InDelta(t, 1.5, resolver.Resolve(0, items), 1e-9)
}

func TestWeightResolver_ExplicitWeightWinsOverItems(t *testing.T) {
	resolver := service.NewWeightResolver(0.5, 0.5)

	items := []model.QuoteItem{
		{WeightKg: floatPtr(10.0), Quantity: 5},
	}

	require.Equal(t, 1.0, resolver.Resolve(1.0, items))
}

func TestWeightResolver_EmptyInputGivesFloor(t *testing.T) {
	resolver := service.NewWeightResolver(0.5, 0.5)

	require.Equal(t, 0.5, resolver.Resolve(0, []model.QuoteItem{}))
}
