package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	shipmodel "marketplace-backend/internal/domains/shipping/model"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// UpdateShippingRequest là payload cho PATCH /orders/:id/shipping.
// Mọi field optional - field trống giữ nguyên giá trị hiện tại của order.
type UpdateShippingRequest struct {
	Region        string   `json:"region,omitempty"`
	City          string   `json:"city,omitempty"`
	StreetAddress string   `json:"streetAddress,omitempty"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
	ShippingType  string   `json:"shippingType,omitempty"`
}

func (r *UpdateShippingRequest) Normalize() {
	r.Region = strings.TrimSpace(r.Region)
	r.City = strings.TrimSpace(r.City)
	r.StreetAddress = strings.TrimSpace(r.StreetAddress)
	r.ShippingType = strings.ToLower(strings.TrimSpace(r.ShippingType))
}

// IsEmpty check request không thay đổi gì
func (r *UpdateShippingRequest) IsEmpty() bool {
	return r.Region == "" && r.City == "" && r.StreetAddress == "" &&
		r.Lat == nil && r.Lng == nil && r.ShippingType == ""
}

func (r UpdateShippingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ShippingType, validation.By(func(v interface{}) error {
			s, _ := v.(string)
			if s == "" {
				return nil
			}
			if !shipmodel.ShippingType(s).IsValid() {
				return validation.NewError("validation_shipping_type", "shipping type must be standard, same_day or express")
			}
			return nil
		})),
		validation.Field(&r.Lat, validation.By(func(v interface{}) error {
			// lat/lng phải đi cùng nhau
			if (r.Lat == nil) != (r.Lng == nil) {
				return validation.NewError("validation_coordinates", "lat and lng must both be provided")
			}
			if r.Lat != nil {
				if *r.Lat < -90 || *r.Lat > 90 || *r.Lng < -180 || *r.Lng > 180 {
					return validation.NewError("validation_coordinates", "coordinates out of range")
				}
			}
			return nil
		})),
	)
}

// PaymentResolutionRequest là payload cho POST /orders/:id/shipping/payment-resolution
type PaymentResolutionRequest struct {
	Status string `json:"status"` // paid hoặc abandoned
}

func (r PaymentResolutionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(
			string(PaymentRequestPaid),
			string(PaymentRequestAbandoned),
		)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// RecalculationResponse là kết quả của PATCH /orders/:id/shipping
type RecalculationResponse struct {
	Result           string           `json:"result"` // updated | awaiting_payment
	ShippingFee      decimal.Decimal  `json:"shippingFee"`
	OldShippingFee   decimal.Decimal  `json:"oldShippingFee"`
	NewShippingFee   decimal.Decimal  `json:"newShippingFee"`
	AdditionalAmount *decimal.Decimal `json:"additionalAmount,omitempty"`
	EstimatedDays    string           `json:"estimatedDays"`
	PaymentRequestID *uuid.UUID       `json:"paymentRequestId,omitempty"`
}

// PaymentResolutionResponse là kết quả resolve additional payment
type PaymentResolutionResponse struct {
	Result string `json:"result"` // committed | reverted
	Order  *Order `json:"order"`
}

const (
	ResolutionCommitted = "committed"
	ResolutionReverted  = "reverted"
)
