package model

import (
	"errors"
	"net/http"
)

// =====================================================
// SHIPPING DOMAIN ERRORS
// =====================================================
// ShippingError là custom error type cho shipping domain
type ShippingError struct {
	Code    string
	Message string
	Err     error
}

func (e *ShippingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ShippingError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeInvalidRequest      = "SHP001"
	ErrCodeLocationUnresolved  = "SHP002"
	ErrCodeDistanceUnavailable = "SHP003"
	ErrCodeNoRateFound         = "SHP004"
	ErrCodeRateRuleNotFound    = "SHP005"
	ErrCodeGeocodingFailed     = "SHP006"
	ErrCodeRateLoadFailed      = "SHP007"
)

func NewShippingError(code, message string, err error) *ShippingError {
	return &ShippingError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error factories
func ErrInvalidRequest(message string, err error) *ShippingError {
	return NewShippingError(ErrCodeInvalidRequest, message, err)
}

func ErrLocationUnresolved() *ShippingError {
	return NewShippingError(ErrCodeLocationUnresolved, "destination could not be resolved to a distance or zone", nil)
}

func ErrDistanceUnavailable(err error) *ShippingError {
	return NewShippingError(ErrCodeDistanceUnavailable, "distance could not be resolved", err)
}

func ErrNoRateFound(shippingType ShippingType) *ShippingError {
	return NewShippingError(ErrCodeNoRateFound, "no active rate rule matches shipping type "+shippingType.String(), nil)
}

func ErrRateRuleNotFound() *ShippingError {
	return NewShippingError(ErrCodeRateRuleNotFound, "rate rule not found", nil)
}

func ErrGeocodingFailed(err error) *ShippingError {
	return NewShippingError(ErrCodeGeocodingFailed, "geocoding request failed", err)
}

func ErrRateLoadFailed(err error) *ShippingError {
	return NewShippingError(ErrCodeRateLoadFailed, "failed to load rate table", err)
}

// Error checkers
func IsShippingError(err error) (*ShippingError, bool) {
	var shippingErr *ShippingError
	if errors.As(err, &shippingErr) {
		return shippingErr, true
	}
	return nil, false
}

func IsNoRateFound(err error) bool {
	if shippingErr, ok := IsShippingError(err); ok {
		return shippingErr.Code == ErrCodeNoRateFound
	}
	return false
}

func IsInvalidRequest(err error) bool {
	if shippingErr, ok := IsShippingError(err); ok {
		return shippingErr.Code == ErrCodeInvalidRequest
	}
	return false
}

// MapErrorToHTTP map shipping error code sang HTTP status
func MapErrorToHTTP(err error) (int, string, string) {
	shippingErr, ok := IsShippingError(err)
	if !ok {
		return http.StatusInternalServerError, "SHP999", "Internal server error"
	}

	switch shippingErr.Code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest, shippingErr.Code, shippingErr.Message
	case ErrCodeLocationUnresolved, ErrCodeNoRateFound:
		return http.StatusUnprocessableEntity, shippingErr.Code, shippingErr.Message
	case ErrCodeRateRuleNotFound:
		return http.StatusNotFound, shippingErr.Code, shippingErr.Message
	case ErrCodeDistanceUnavailable, ErrCodeGeocodingFailed:
		return http.StatusBadGateway, shippingErr.Code, shippingErr.Message
	default:
		return http.StatusInternalServerError, shippingErr.Code, shippingErr.Message
	}
}
