package service

import (
	"context"

	"github.com/google/uuid"

	"marketplace-backend/internal/domains/order/model"
)

// ServiceInterface defines business logic operations for Order domain
type ServiceInterface interface {
	// GetOrder trả order theo ID
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// RecalculateShipping xử lý PATCH shipping:
	// guard edit window → quote lại fee → so sánh:
	// - fee không tăng → commit ngay (result: updated)
	// - fee tăng → pending shipping + additional payment request (result: awaiting_payment)
	RecalculateShipping(ctx context.Context, orderID uuid.UUID, req *model.UpdateShippingRequest) (*model.RecalculationResponse, error)

	// ResolveAdditionalPayment đóng pending payment request:
	// paid → commit pending shipping, abandoned → revert về shipping cũ
	ResolveAdditionalPayment(ctx context.Context, orderID uuid.UUID, req *model.PaymentResolutionRequest) (*model.PaymentResolutionResponse, error)

	// AbandonStaleRequests abandon pending requests quá hạn (worker job)
	AbandonStaleRequests(ctx context.Context) (int64, error)
}
