package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	shipmodel "marketplace-backend/internal/domains/shipping/model"
)

// =====================================================
// ORDER ENTITY
// =====================================================
// Order giữ hai bộ shipping fields:
// - Committed (ShippingType, ShippingFee...): đang có hiệu lực
// - Pending* : shipping mới chờ additional payment, chưa có hiệu lực.
//   Chỉ được promote sang committed khi payment request → paid.
type Order struct {
	ID     uuid.UUID   `json:"id" db:"id"`
	UserID uuid.UUID   `json:"user_id" db:"user_id"`
	Status OrderStatus `json:"status" db:"status"`

	ItemsTotal decimal.Decimal `json:"items_total" db:"items_total"`
	WeightKg   float64         `json:"weight_kg" db:"weight_kg"`
	Fragile    bool            `json:"fragile" db:"fragile"`

	// Committed shipping
	Region        string                 `json:"region" db:"region"`
	City          string                 `json:"city" db:"city"`
	StreetAddress string                 `json:"street_address" db:"street_address"`
	Lat           *float64               `json:"lat,omitempty" db:"lat"`
	Lng           *float64               `json:"lng,omitempty" db:"lng"`
	ShippingType  shipmodel.ShippingType `json:"shipping_type" db:"shipping_type"`
	ShippingFee   decimal.Decimal        `json:"shipping_fee" db:"shipping_fee"`
	EstimatedDays string                 `json:"estimated_days" db:"estimated_days"`
	Zone          *shipmodel.Zone        `json:"zone,omitempty" db:"zone"`
	DistanceKm    *float64               `json:"distance_km,omitempty" db:"distance_km"`

	// Pending shipping (chờ additional payment)
	PendingShippingType  *shipmodel.ShippingType `json:"pending_shipping_type,omitempty" db:"pending_shipping_type"`
	PendingShippingFee   *decimal.Decimal        `json:"pending_shipping_fee,omitempty" db:"pending_shipping_fee"`
	PendingEstimatedDays *string                 `json:"pending_estimated_days,omitempty" db:"pending_estimated_days"`
	PendingRegion        *string                 `json:"pending_region,omitempty" db:"pending_region"`
	PendingCity          *string                 `json:"pending_city,omitempty" db:"pending_city"`
	PendingStreetAddress *string                 `json:"pending_street_address,omitempty" db:"pending_street_address"`
	PendingLat           *float64                `json:"pending_lat,omitempty" db:"pending_lat"`
	PendingLng           *float64                `json:"pending_lng,omitempty" db:"pending_lng"`
	PendingZone          *shipmodel.Zone         `json:"pending_zone,omitempty" db:"pending_zone"`
	PendingDistanceKm    *float64                `json:"pending_distance_km,omitempty" db:"pending_distance_km"`

	Version   int       `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CanBeEdited check order còn trong edit window và status cho phép sửa shipping
func (o *Order) CanBeEdited(editWindow time.Duration, now time.Time) bool {
	if !o.Status.CanEditShipping() {
		return false
	}
	return now.Sub(o.CreatedAt) <= editWindow
}

// HasPendingShipping check order đang chờ additional payment
func (o *Order) HasPendingShipping() bool {
	return o.PendingShippingFee != nil
}

// =====================================================
// ADDITIONAL PAYMENT REQUEST
// =====================================================
// Tạo ra khi recalculation làm fee TĂNG. Order giữ shipping cũ
// cho tới khi request này được thanh toán.
type AdditionalPaymentRequest struct {
	ID               uuid.UUID            `json:"id" db:"id"`
	OrderID          uuid.UUID            `json:"order_id" db:"order_id"`
	OldFee           decimal.Decimal      `json:"old_fee" db:"old_fee"`
	NewFee           decimal.Decimal      `json:"new_fee" db:"new_fee"`
	AdditionalAmount decimal.Decimal      `json:"additional_amount" db:"additional_amount"`
	Status           PaymentRequestStatus `json:"status" db:"status"`
	CreatedAt        time.Time            `json:"created_at" db:"created_at"`
	ResolvedAt       *time.Time           `json:"resolved_at,omitempty" db:"resolved_at"`
}
