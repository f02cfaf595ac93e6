package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// QuoteItem là một line item trong giỏ, dùng để derive weight
// khi client không gửi weight tổng.
type QuoteItem struct {
	Name     string   `json:"name,omitempty"`
	WeightKg *float64 `json:"weightKg,omitempty"` // nil → dùng default item weight
	Quantity int      `json:"quantity"`
}

// CalculateFeeRequest là payload cho POST /shipping-rates/calculate.
// Client có thể gửi weight trực tiếp hoặc items để server tự derive.
// Location theo thứ tự ưu tiên: distanceKm > destination/address > zone > region+city.
type CalculateFeeRequest struct {
	Weight float64     `json:"weight,omitempty"`
	Items  []QuoteItem `json:"items,omitempty"`

	// "type" là field cũ của mobile clients, "shippingType" là field mới.
	// Normalize() merge hai field, shippingType thắng.
	ShippingType string `json:"shippingType,omitempty"`
	Type         string `json:"type,omitempty"`

	Zone               string       `json:"zone,omitempty"`
	Region             string       `json:"region,omitempty"`
	City               string       `json:"city,omitempty"`
	Destination        *Coordinates `json:"destination,omitempty"`
	DestinationAddress string       `json:"destinationAddress,omitempty"`
	DistanceKm         *float64     `json:"distanceKm,omitempty"`

	Fragile   bool       `json:"fragile,omitempty"`
	OrderTime *time.Time `json:"orderTime,omitempty"` // nil → server dùng now
}

// Normalize merge alias fields và trim input trước khi validate
func (r *CalculateFeeRequest) Normalize() {
	if r.ShippingType == "" {
		r.ShippingType = r.Type
	}
	if r.ShippingType == "" {
		r.ShippingType = ShippingTypeStandard.String()
	}
	r.ShippingType = strings.ToLower(strings.TrimSpace(r.ShippingType))
	r.Zone = strings.ToUpper(strings.TrimSpace(r.Zone))
	r.Region = strings.TrimSpace(r.Region)
	r.City = strings.TrimSpace(r.City)
	r.DestinationAddress = strings.TrimSpace(r.DestinationAddress)
}

func (r CalculateFeeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Weight, validation.Min(0.0)),
		validation.Field(&r.ShippingType, validation.By(validShippingType)),
		validation.Field(&r.Zone, validation.By(validZoneOrEmpty)),
		validation.Field(&r.Items, validation.By(validItems)),
		validation.Field(&r.DistanceKm, validation.By(validDistanceOrNil)),
		validation.Field(&r.Destination, validation.By(validCoordinatesOrNil)),
	)
}

// ShippingOptionsRequest là query params cho GET /shipping-rates/options
type ShippingOptionsRequest struct {
	Weight             float64      `form:"weight"`
	Region             string       `form:"region"`
	City               string       `form:"city"`
	Zone               string       `form:"zone"`
	DestinationAddress string       `form:"address"`
	Lat                *float64     `form:"lat"`
	Lng                *float64     `form:"lng"`
	Fragile            bool         `form:"fragile"`
	Destination        *Coordinates `form:"-"`
}

// Normalize fold lat/lng query params thành Coordinates
func (r *ShippingOptionsRequest) Normalize() {
	if r.Lat != nil && r.Lng != nil {
		r.Destination = &Coordinates{Lat: *r.Lat, Lng: *r.Lng}
	}
	r.Zone = strings.ToUpper(strings.TrimSpace(r.Zone))
	r.Region = strings.TrimSpace(r.Region)
	r.City = strings.TrimSpace(r.City)
	r.DestinationAddress = strings.TrimSpace(r.DestinationAddress)
}

func (r ShippingOptionsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Weight, validation.Min(0.0)),
		validation.Field(&r.Zone, validation.By(validZoneOrEmpty)),
	)
}

// UpsertRateRuleRequest là payload admin tạo/sửa rate rule
type UpsertRateRuleRequest struct {
	ShippingType     string          `json:"shipping_type"`
	Zone             *string         `json:"zone,omitempty"`
	MinDistanceKm    *float64        `json:"min_distance_km,omitempty"`
	MaxDistanceKm    *float64        `json:"max_distance_km,omitempty"`
	BaseFee          decimal.Decimal `json:"base_fee"`
	PerKgFee         decimal.Decimal `json:"per_kg_fee"`
	IncludedWeightKg float64         `json:"included_weight_kg"`
	EstimatedDays    string          `json:"estimated_days"`
	CutoffTime       *string         `json:"cutoff_time,omitempty"`
	Active           bool            `json:"active"`
}

func (r UpsertRateRuleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ShippingType, validation.Required, validation.By(validShippingType)),
		validation.Field(&r.EstimatedDays, validation.Required),
		validation.Field(&r.BaseFee, validation.By(validNonNegativeDecimal)),
		validation.Field(&r.PerKgFee, validation.By(validNonNegativeDecimal)),
		validation.Field(&r.IncludedWeightKg, validation.Min(0.0)),
		validation.Field(&r.Zone, validation.By(func(v interface{}) error {
			// Rule phải là zone rule HOẶC distance rule, không được cả hai / không có gì
			hasZone := r.Zone != nil && *r.Zone != ""
			hasDistance := r.MinDistanceKm != nil
			if hasZone == hasDistance {
				return validation.NewError("validation_rule_match", "exactly one of zone or distance band is required")
			}
			if hasZone && !Zone(strings.ToUpper(*r.Zone)).IsValid() {
				return validation.NewError("validation_zone", "zone must be A, B or C")
			}
			return nil
		})),
	)
}

// ToRateRule convert request thành entity (ID/timestamps do repository set)
func (r *UpsertRateRuleRequest) ToRateRule() *RateRule {
	rule := &RateRule{
		ShippingType:     ShippingType(strings.ToLower(r.ShippingType)),
		MinDistanceKm:    r.MinDistanceKm,
		MaxDistanceKm:    r.MaxDistanceKm,
		BaseFee:          r.BaseFee,
		PerKgFee:         r.PerKgFee,
		IncludedWeightKg: r.IncludedWeightKg,
		EstimatedDays:    r.EstimatedDays,
		CutoffTime:       r.CutoffTime,
		Active:           r.Active,
	}
	if r.Zone != nil && *r.Zone != "" {
		z := Zone(strings.ToUpper(*r.Zone))
		rule.Zone = &z
	}
	return rule
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// ShippingOptionsResponse giữ nguyên thứ tự types đã request
type ShippingOptionsResponse struct {
	Options []*ShippingOption `json:"options"`
}

// =====================================================
// VALIDATION HELPERS
// =====================================================

func validShippingType(v interface{}) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if !ShippingType(s).IsValid() {
		return validation.NewError("validation_shipping_type", "shipping type must be standard, same_day or express")
	}
	return nil
}

func validZoneOrEmpty(v interface{}) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if !Zone(s).IsValid() {
		return validation.NewError("validation_zone", "zone must be A, B or C")
	}
	return nil
}

func validItems(v interface{}) error {
	items, _ := v.([]QuoteItem)
	for _, item := range items {
		if item.Quantity <= 0 {
			return validation.NewError("validation_item_quantity", "item quantity must be positive")
		}
		if item.WeightKg != nil && *item.WeightKg < 0 {
			return validation.NewError("validation_item_weight", "item weight must not be negative")
		}
	}
	return nil
}

func validNonNegativeDecimal(v interface{}) error {
	d, _ := v.(decimal.Decimal)
	if d.IsNegative() {
		return validation.NewError("validation_fee", "fee must not be negative")
	}
	return nil
}

func validDistanceOrNil(v interface{}) error {
	d, _ := v.(*float64)
	if d != nil && *d < 0 {
		return validation.NewError("validation_distance", "distance must not be negative")
	}
	return nil
}

func validCoordinatesOrNil(v interface{}) error {
	c, _ := v.(*Coordinates)
	if c == nil {
		return nil
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return validation.NewError("validation_coordinates", "coordinates out of range")
	}
	return nil
}
