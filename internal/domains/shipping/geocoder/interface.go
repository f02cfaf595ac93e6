package geocoder

import (
	"context"
	"errors"

	"marketplace-backend/internal/domains/shipping/model"
)

// ErrNoResults được trả khi provider không tìm thấy địa chỉ
var ErrNoResults = errors.New("geocoder: no results for address")

// Geocoder resolve một free-text address thành coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*model.Coordinates, error)
}
