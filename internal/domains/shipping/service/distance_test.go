package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/domains/shipping/geocoder/mock"
	"marketplace-backend/internal/domains/shipping/model"
	"marketplace-backend/internal/domains/shipping/service"
)

var warehouseOrigin = model.Coordinates{Lat: 5.5502, Lng: -0.2174}

func TestHaversine_KnownDistances(t *testing.T) {
	accra := model.Coordinates{Lat: 5.6037, Lng: -0.1870}
	kumasi := model.Coordinates{Lat: 6.6884, Lng: -1.6244}

	// Accra → Kumasi khoảng 200km đường chim bay
	require.InDelta(t, 200, service.Haversine(accra, kumasi), 10)

	// Cùng một điểm → 0
	require.InDelta(t, 0, service.Haversine(accra, accra), 1e-9)

	// Đối xứng
	require.InDelta(t,
		service.Haversine(accra, kumasi),
		service.Haversine(kumasi, accra),
		1e-9,
	)
}

func TestDistanceResolver_CoordinatesWinOverAddress(t *testing.T) {
	resolver := service.NewDistanceResolver(warehouseOrigin, mock.NewMockGeocoder(), nil, 0)

	dest := &model.Coordinates{Lat: 6.6884, Lng: -1.6244}
	result := resolver.Resolve(context.Background(), dest, "Tamale")

	require.True(t, result.Resolved)
	require.InDelta(t, 203, result.DistanceKm, 15)
}

func TestDistanceResolver_GeocodesAddress(t *testing.T) {
	resolver := service.NewDistanceResolver(warehouseOrigin, mock.NewMockGeocoder(), nil, 0)

	result := resolver.Resolve(context.Background(), nil, "Adum, Kumasi")

	require.True(t, result.Resolved)
	require.Greater(t, result.DistanceKm, 100.0)
}

func TestDistanceResolver_UnknownAddressUnavailable(t *testing.T) {
	resolver := service.NewDistanceResolver(warehouseOrigin, mock.NewMockGeocoder(), nil, 0)

	result := resolver.Resolve(context.Background(), nil, "somewhere nobody knows")

	require.False(t, result.Resolved)
	require.NotEmpty(t, result.Reason)
}

func TestDistanceResolver_NoInputUnavailable(t *testing.T) {
	resolver := service.NewDistanceResolver(warehouseOrigin, mock.NewMockGeocoder(), nil, 0)

	result := resolver.Resolve(context.Background(), nil, "")

	require.False(t, result.Resolved)
	require.NotEmpty(t, result.Reason)
}
