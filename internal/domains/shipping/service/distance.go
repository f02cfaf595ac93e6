package service

import (
	"context"
	"math"
	"strings"
	"time"

	"marketplace-backend/internal/domains/shipping/geocoder"
	"marketplace-backend/internal/domains/shipping/model"
	"marketplace-backend/pkg/cache"
	"marketplace-backend/pkg/logger"
)

// =====================================================
// DISTANCE RESOLVER
// =====================================================
// Tính khoảng cách warehouse → destination.
// Kết quả là tagged union: Resolved (có DistanceKm) hoặc Unavailable (có Reason).
// Caller KHÔNG được đọc DistanceKm khi Resolved = false - đây là signal
// để rơi về zone-based pricing, không phải hard error.

type DistanceResult struct {
	Resolved   bool
	DistanceKm float64
	Reason     string // chỉ set khi Resolved = false
}

func ResolvedDistance(km float64) DistanceResult {
	return DistanceResult{Resolved: true, DistanceKm: km}
}

func UnavailableDistance(reason string) DistanceResult {
	return DistanceResult{Resolved: false, Reason: reason}
}

type DistanceResolver struct {
	origin   model.Coordinates
	geocoder geocoder.Geocoder
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewDistanceResolver(
	origin model.Coordinates,
	geo geocoder.Geocoder,
	cacheStore cache.Cache,
	cacheTTL time.Duration,
) *DistanceResolver {
	return &DistanceResolver{
		origin:   origin,
		geocoder: geo,
		cache:    cacheStore,
		cacheTTL: cacheTTL,
	}
}

// Resolve tính distance từ warehouse origin tới destination.
// Ưu tiên coordinates; thiếu coordinates thì geocode address (có Redis cache).
// Mọi failure (geocode lỗi, không có input) → Unavailable, không bao giờ error.
func (r *DistanceResolver) Resolve(ctx context.Context, dest *model.Coordinates, address string) DistanceResult {
	if dest != nil {
		return ResolvedDistance(Haversine(r.origin, *dest))
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return UnavailableDistance("no destination coordinates or address")
	}

	coords, err := r.geocodeCached(ctx, address)
	if err != nil {
		logger.Warn("Geocoding failed, falling back to zone pricing", map[string]interface{}{
			"address": address,
			"error":   err.Error(),
		})
		return UnavailableDistance("geocoding failed: " + err.Error())
	}

	return ResolvedDistance(Haversine(r.origin, *coords))
}

// geocodeCached geocode address với Redis cache phía trước provider.
// Cache lỗi chỉ log warning, không chặn geocoding.
func (r *DistanceResolver) geocodeCached(ctx context.Context, address string) (*model.Coordinates, error) {
	cacheKey := "geocode:" + strings.ToLower(strings.Join(strings.Fields(address), " "))

	if r.cache != nil {
		var cached model.Coordinates
		found, err := r.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			logger.Warn("Geocode cache read failed", map[string]interface{}{
				"key":   cacheKey,
				"error": err.Error(),
			})
		} else if found {
			return &cached, nil
		}
	}

	coords, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey, coords, r.cacheTTL); err != nil {
			logger.Warn("Geocode cache write failed", map[string]interface{}{
				"key":   cacheKey,
				"error": err.Error(),
			})
		}
	}

	return coords, nil
}

// earthRadiusKm là bán kính trung bình của Trái Đất
const earthRadiusKm = 6371.0

// Haversine tính great-circle distance (km) giữa hai điểm lat/lng
func Haversine(from, to model.Coordinates) float64 {
	lat1 := from.Lat * math.Pi / 180
	lng1 := from.Lng * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	lng2 := to.Lng * math.Pi / 180

	dLat := lat2 - lat1
	dLng := lng2 - lng1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
