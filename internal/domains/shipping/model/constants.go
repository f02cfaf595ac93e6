package model

// =====================================================
// SHIPPING TYPE CONSTANTS
// =====================================================
type ShippingType string

const (
	ShippingTypeStandard ShippingType = "standard"
	ShippingTypeSameDay  ShippingType = "same_day"
	ShippingTypeExpress  ShippingType = "express"
)

func (t ShippingType) IsValid() bool {
	switch t {
	case ShippingTypeStandard, ShippingTypeSameDay, ShippingTypeExpress:
		return true
	}
	return false
}

func (t ShippingType) String() string {
	return string(t)
}

// DefaultShippingTypes là thứ tự hiển thị chuẩn cho quote options
var DefaultShippingTypes = []ShippingType{
	ShippingTypeStandard,
	ShippingTypeSameDay,
	ShippingTypeExpress,
}

// =====================================================
// ZONE CONSTANTS
// =====================================================
// Zone là coarse delivery area, dùng khi không resolve được distance.
// Rank tăng dần theo chi phí: A rẻ nhất (gần warehouse), C xa nhất.
type Zone string

const (
	ZoneA Zone = "A" // Accra core areas
	ZoneB Zone = "B" // Greater Accra + satellite towns
	ZoneC Zone = "C" // Mọi region khác
)

func (z Zone) IsValid() bool {
	switch z {
	case ZoneA, ZoneB, ZoneC:
		return true
	}
	return false
}

func (z Zone) String() string {
	return string(z)
}

// FarthestZone là zone conservative nhất - fallback khi thiếu thông tin
const FarthestZone = ZoneC

// =====================================================
// ZONE MAPPING MATCH TYPES
// =====================================================
// Một bảng zone canonical duy nhất cho cả hai resolution paths
// (region+city và city-only).
const (
	ZoneMatchCoreArea = "core_area" // Neighborhood của metro city (Osu, Labone...)
	ZoneMatchRegion   = "region"    // Region name (Greater Accra)
	ZoneMatchCity     = "city"      // City-only lookup (dùng khi thiếu region)
)

// =====================================================
// UNAVAILABLE REASONS
// =====================================================
const (
	ReasonAfterCutoff        = "after cutoff"
	ReasonNoRateForZone      = "no rate for this type/zone"
	ReasonLocationUnresolved = "location unresolved"
)

// =====================================================
// BREAKDOWN LABELS
// =====================================================
const (
	BreakdownBaseFee          = "base_fee"
	BreakdownPerKgFee         = "per_kg_fee"
	BreakdownFragileSurcharge = "fragile_surcharge"
)
