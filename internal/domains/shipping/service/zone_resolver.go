package service

import (
	"strings"
	"sync"

	"marketplace-backend/internal/domains/shipping/model"
)

// =====================================================
// ZONE RESOLVER
// =====================================================
// Map địa chỉ dạng text (region/city) sang delivery zone.
// Một bảng canonical duy nhất cho cả hai input shapes:
//  1. City match core area list        → zone của core area (A)
//  2. Region match region table        → zone của region (B cho Greater Accra)
//  3. Region trống, city match city table → zone của city
//  4. Còn lại                          → farthest zone (C)
//
// Resolution là total: mọi input đều ra một zone, không bao giờ error.

type ZoneResolver struct {
	mu        sync.RWMutex
	coreAreas map[string]model.Zone
	regions   map[string]model.Zone
	cities    map[string]model.Zone
}

// NewZoneResolver tạo resolver với bảng built-in defaults.
// DB mappings (nếu có) được overlay qua SetMappings.
func NewZoneResolver() *ZoneResolver {
	r := &ZoneResolver{
		coreAreas: make(map[string]model.Zone),
		regions:   make(map[string]model.Zone),
		cities:    make(map[string]model.Zone),
	}
	r.loadDefaults()
	return r
}

func (r *ZoneResolver) loadDefaults() {
	// Accra core neighborhoods - giao hàng nhanh nhất, rẻ nhất
	for _, area := range []string{"OSU", "EAST LEGON", "LABONE", "CANTONMENTS", "AIRPORT RESIDENTIAL"} {
		r.coreAreas[area] = model.ZoneA
	}

	r.regions["GREATER ACCRA"] = model.ZoneB

	// City-only fallback table, dùng khi client không gửi region
	r.cities["ACCRA"] = model.ZoneA
	r.cities["TEMA"] = model.ZoneB
	r.cities["KASOA"] = model.ZoneB
	r.cities["MADINA"] = model.ZoneB
	r.cities["ADENTA"] = model.ZoneB
}

// SetMappings overlay DB entries lên defaults.
// Gọi lúc startup và khi admin reload - thread-safe với Resolve.
func (r *ZoneResolver) SetMappings(mappings []*model.ZoneMapping) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range mappings {
		name := normalizePlace(m.Name)
		if name == "" || !m.Zone.IsValid() {
			continue
		}

		switch m.MatchType {
		case model.ZoneMatchCoreArea:
			r.coreAreas[name] = m.Zone
		case model.ZoneMatchRegion:
			r.regions[name] = m.Zone
		case model.ZoneMatchCity:
			r.cities[name] = m.Zone
		}
	}
}

// Resolve map (region, city) sang zone. Case-insensitive, whitespace-tolerant.
func (r *ZoneResolver) Resolve(region, city string) model.Zone {
	region = normalizePlace(region)
	city = normalizePlace(city)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if city != "" {
		if zone, ok := r.coreAreas[city]; ok {
			return zone
		}
	}

	if region != "" {
		if zone, ok := r.regions[region]; ok {
			return zone
		}
		// Region có nhưng không match bảng nào → ngoài coverage area
		return model.FarthestZone
	}

	if city != "" {
		if zone, ok := r.cities[city]; ok {
			return zone
		}
	}

	return model.FarthestZone
}

func normalizePlace(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
