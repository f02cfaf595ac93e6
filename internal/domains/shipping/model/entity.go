package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coordinates là một điểm lat/lng trên bản đồ
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// =====================================================
// RATE RULE
// =====================================================
// RateRule là một dòng trong bảng giá shipping.
// Một rule match theo zone HOẶC theo distance band, không bao giờ cả hai:
// - Zone != nil                          → zone-based pricing
// - MinDistanceKm/MaxDistanceKm != nil   → distance-based pricing
//
// Fee formula: fee = BaseFee + PerKgFee * max(0, weight - IncludedWeightKg)
type RateRule struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	ShippingType  ShippingType    `json:"shipping_type" db:"shipping_type"`
	Zone          *Zone           `json:"zone,omitempty" db:"zone"`
	MinDistanceKm *float64        `json:"min_distance_km,omitempty" db:"min_distance_km"`
	MaxDistanceKm *float64        `json:"max_distance_km,omitempty" db:"max_distance_km"` // nil = open-ended
	BaseFee       decimal.Decimal `json:"base_fee" db:"base_fee"`
	PerKgFee      decimal.Decimal `json:"per_kg_fee" db:"per_kg_fee"`
	IncludedWeightKg float64      `json:"included_weight_kg" db:"included_weight_kg"`
	EstimatedDays string          `json:"estimated_days" db:"estimated_days"` // "1-3 days", "Arrives Today"
	CutoffTime    *string         `json:"cutoff_time,omitempty" db:"cutoff_time"` // "HH:MM" local time, chỉ same_day
	Active        bool            `json:"active" db:"active"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// IsZoneRule check rule này match theo zone hay distance
func (r *RateRule) IsZoneRule() bool {
	return r.Zone != nil
}

// MatchesZone check rule có áp dụng cho zone này không
func (r *RateRule) MatchesZone(zone Zone) bool {
	return r.Zone != nil && *r.Zone == zone
}

// MatchesDistance check distanceKm có rơi vào band [min, max) của rule không.
// MaxDistanceKm = nil nghĩa là band mở (không có trần).
func (r *RateRule) MatchesDistance(distanceKm float64) bool {
	if r.MinDistanceKm == nil {
		return false
	}
	if distanceKm < *r.MinDistanceKm {
		return false
	}
	if r.MaxDistanceKm != nil && distanceKm >= *r.MaxDistanceKm {
		return false
	}
	return true
}

// =====================================================
// ZONE MAPPING
// =====================================================
// ZoneMapping là một entry trong bảng zone canonical.
// MatchType quyết định entry được so với core area / region / city name.
type ZoneMapping struct {
	ID        uuid.UUID `json:"id" db:"id"`
	MatchType string    `json:"match_type" db:"match_type"` // core_area, region, city
	Name      string    `json:"name" db:"name"`             // normalized (trimmed, uppercase)
	Zone      Zone      `json:"zone" db:"zone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// =====================================================
// SHIPPING OPTION (QUOTE RESULT)
// =====================================================
// BreakdownEntry là một dòng trong fee breakdown, theo đúng thứ tự apply
type BreakdownEntry struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// ShippingOption là kết quả quote cho một shipping type.
// Available = false → Fee không có ý nghĩa, UnavailableReason giải thích tại sao.
type ShippingOption struct {
	Type              ShippingType     `json:"shippingType"`
	Fee               decimal.Decimal  `json:"shippingFee"`
	BaseFee           decimal.Decimal  `json:"baseFee"`
	PerKgFee          decimal.Decimal  `json:"perKgFee"`
	Weight            float64          `json:"weight"`
	EstimatedDays     string           `json:"estimatedDays"`
	Available         bool             `json:"available"`
	UnavailableReason string           `json:"unavailableReason,omitempty"`
	Zone              *Zone            `json:"zone,omitempty"`       // set khi price theo zone
	DistanceKm        *float64         `json:"distanceKm,omitempty"` // set khi price theo distance
	Breakdown         []BreakdownEntry `json:"breakdown,omitempty"`
}

// Unavailable tạo option không khả dụng cho type với reason
func Unavailable(shippingType ShippingType, reason string) *ShippingOption {
	return &ShippingOption{
		Type:              shippingType,
		Fee:               decimal.Zero,
		Available:         false,
		UnavailableReason: reason,
	}
}
