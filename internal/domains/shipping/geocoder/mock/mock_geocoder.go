package mock

import (
	"context"
	"strings"

	"marketplace-backend/internal/domains/shipping/geocoder"
	"marketplace-backend/internal/domains/shipping/model"
)

// =====================================================
// MOCK GEOCODER - cho development và testing
// =====================================================
// Trả coordinates cố định cho các địa danh quen thuộc,
// ErrNoResults cho mọi thứ khác. Không gọi network.

type knownPlace struct {
	keyword string
	coords  model.Coordinates
}

type MockGeocoder struct {
	// ordered: keyword cụ thể hơn đứng trước để match ổn định
	// ("east legon" phải thắng "accra" trong "East Legon, Accra")
	known []knownPlace
}

func NewMockGeocoder() geocoder.Geocoder {
	return &MockGeocoder{
		known: []knownPlace{
			{"east legon", model.Coordinates{Lat: 5.6356, Lng: -0.1563}},
			{"osu", model.Coordinates{Lat: 5.5560, Lng: -0.1820}},
			{"madina", model.Coordinates{Lat: 5.6836, Lng: -0.1666}},
			{"kasoa", model.Coordinates{Lat: 5.5340, Lng: -0.4158}},
			{"tema", model.Coordinates{Lat: 5.6698, Lng: -0.0166}},
			{"accra", model.Coordinates{Lat: 5.6037, Lng: -0.1870}},
			{"kumasi", model.Coordinates{Lat: 6.6884, Lng: -1.6244}},
			{"takoradi", model.Coordinates{Lat: 4.9016, Lng: -1.7831}},
			{"tamale", model.Coordinates{Lat: 9.4008, Lng: -0.8393}},
		},
	}
}

func (g *MockGeocoder) Geocode(_ context.Context, address string) (*model.Coordinates, error) {
	needle := strings.ToLower(address)
	for _, place := range g.known {
		if strings.Contains(needle, place.keyword) {
			c := place.coords
			return &c, nil
		}
	}
	return nil, geocoder.ErrNoResults
}
