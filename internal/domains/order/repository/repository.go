package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace-backend/internal/domains/order/model"
)

// ShippingUpdate gom các shipping fields mới sau recalculation.
// Service build struct này sau khi merge request với order hiện tại.
type ShippingUpdate struct {
	Region        string
	City          string
	StreetAddress string
	Lat           *float64
	Lng           *float64
	ShippingType  string
	ShippingFee   decimal.Decimal
	EstimatedDays string
	Zone          *string
	DistanceKm    *float64
}

// RepositoryInterface defines all data access operations for Order domain
type RepositoryInterface interface {
	// GetByID retrieves an order by ID, (nil, nil) nếu không tồn tại
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// UpdateShipping commit shipping mới ngay (fee không tăng).
	// Atomic: update committed fields + clear pending + abandon pending payment request.
	// Version guard chống concurrent edits.
	UpdateShipping(ctx context.Context, orderID uuid.UUID, version int, upd *ShippingUpdate) (*model.Order, error)

	// SavePendingShipping lưu shipping mới vào pending fields + tạo payment request.
	// Atomic: pending request cũ (nếu có) bị abandon trong cùng transaction.
	SavePendingShipping(ctx context.Context, orderID uuid.UUID, version int, upd *ShippingUpdate, request *model.AdditionalPaymentRequest) (*model.AdditionalPaymentRequest, error)

	// GetPendingPaymentRequest trả payment request đang pending của order, (nil, nil) nếu không có
	GetPendingPaymentRequest(ctx context.Context, orderID uuid.UUID) (*model.AdditionalPaymentRequest, error)

	// CommitPendingShipping promote pending shipping → committed, mark request paid
	CommitPendingShipping(ctx context.Context, orderID, requestID uuid.UUID) (*model.Order, error)

	// RevertPendingShipping clear pending shipping, mark request abandoned
	RevertPendingShipping(ctx context.Context, orderID, requestID uuid.UUID) (*model.Order, error)

	// AbandonStaleRequests abandon mọi pending request tạo trước cutoff (worker job).
	// Trả số request đã abandon.
	AbandonStaleRequests(ctx context.Context, cutoff time.Time) (int64, error)
}
