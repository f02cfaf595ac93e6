package model

// =====================================================
// ORDER STATUS
// =====================================================
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// CanEditShipping - shipping chỉ được sửa trước khi order rời warehouse
func (s OrderStatus) CanEditShipping() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

// =====================================================
// PAYMENT REQUEST STATUS
// =====================================================
// Lifecycle: pending → paid (commit pending shipping)
//            pending → abandoned (revert, giữ shipping cũ)
type PaymentRequestStatus string

const (
	PaymentRequestPending   PaymentRequestStatus = "pending"
	PaymentRequestPaid      PaymentRequestStatus = "paid"
	PaymentRequestAbandoned PaymentRequestStatus = "abandoned"
)

func (s PaymentRequestStatus) IsValid() bool {
	switch s {
	case PaymentRequestPending, PaymentRequestPaid, PaymentRequestAbandoned:
		return true
	}
	return false
}

// =====================================================
// RECALCULATION RESULTS
// =====================================================
const (
	RecalcResultUpdated         = "updated"          // fee mới <= fee cũ, đã commit ngay
	RecalcResultAwaitingPayment = "awaiting_payment" // fee tăng, chờ khách trả phần chênh
)
