package model

import (
	"errors"
	"net/http"
)

// =====================================================
// ORDER DOMAIN ERRORS
// =====================================================
type OrderError struct {
	Code    string
	Message string
	Err     error
}

func (e *OrderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *OrderError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeOrderNotFound           = "ORD001"
	ErrCodeEditWindowExpired       = "ORD002"
	ErrCodeShippingUnavailable     = "ORD003"
	ErrCodeInvalidRequest          = "ORD004"
	ErrCodeNoPendingPaymentRequest = "ORD005"
	ErrCodeSaveFailed              = "ORD006"
	ErrCodeVersionConflict         = "ORD007"
)

func NewOrderError(code, message string, err error) *OrderError {
	return &OrderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error factories
func ErrOrderNotFound() *OrderError {
	return NewOrderError(ErrCodeOrderNotFound, "order not found", nil)
}

func ErrEditWindowExpired() *OrderError {
	return NewOrderError(ErrCodeEditWindowExpired, "order can no longer be edited", nil)
}

func ErrShippingUnavailable(reason string) *OrderError {
	return NewOrderError(ErrCodeShippingUnavailable, "requested shipping is not available: "+reason, nil)
}

func ErrInvalidRequest(message string, err error) *OrderError {
	return NewOrderError(ErrCodeInvalidRequest, message, err)
}

func ErrNoPendingPaymentRequest() *OrderError {
	return NewOrderError(ErrCodeNoPendingPaymentRequest, "order has no pending additional payment request", nil)
}

func ErrSaveFailed(err error) *OrderError {
	return NewOrderError(ErrCodeSaveFailed, "failed to save order", err)
}

func ErrVersionConflict() *OrderError {
	return NewOrderError(ErrCodeVersionConflict, "order was modified concurrently, retry", nil)
}

// Error checkers
func IsOrderError(err error) (*OrderError, bool) {
	var orderErr *OrderError
	if errors.As(err, &orderErr) {
		return orderErr, true
	}
	return nil, false
}

func IsEditWindowExpired(err error) bool {
	if orderErr, ok := IsOrderError(err); ok {
		return orderErr.Code == ErrCodeEditWindowExpired
	}
	return false
}

func IsOrderNotFound(err error) bool {
	if orderErr, ok := IsOrderError(err); ok {
		return orderErr.Code == ErrCodeOrderNotFound
	}
	return false
}

// MapErrorToHTTP map order error code sang HTTP status
func MapErrorToHTTP(err error) (int, string, string) {
	orderErr, ok := IsOrderError(err)
	if !ok {
		return http.StatusInternalServerError, "ORD999", "Internal server error"
	}

	switch orderErr.Code {
	case ErrCodeOrderNotFound:
		return http.StatusNotFound, orderErr.Code, orderErr.Message
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest, orderErr.Code, orderErr.Message
	case ErrCodeEditWindowExpired, ErrCodeShippingUnavailable, ErrCodeNoPendingPaymentRequest:
		return http.StatusUnprocessableEntity, orderErr.Code, orderErr.Message
	case ErrCodeVersionConflict:
		return http.StatusConflict, orderErr.Code, orderErr.Message
	default:
		return http.StatusInternalServerError, orderErr.Code, orderErr.Message
	}
}
