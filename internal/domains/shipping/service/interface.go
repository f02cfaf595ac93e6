package service

import (
	"context"

	"marketplace-backend/internal/domains/shipping/model"
)

// ServiceInterface defines business logic operations for Shipping domain
type ServiceInterface interface {
	// Bootstrap load rate table + zone mappings từ DB lúc startup
	Bootstrap(ctx context.Context) error

	// CalculateFee quote một shipping type cho một shipment.
	// Option.Available = false nghĩa là type không khả dụng (không phải error).
	CalculateFee(ctx context.Context, req *model.CalculateFeeRequest) (*model.ShippingOption, error)

	// GetShippingOptions quote tất cả shipping types song song,
	// giữ nguyên thứ tự hiển thị chuẩn
	GetShippingOptions(ctx context.Context, req *model.ShippingOptionsRequest) (*model.ShippingOptionsResponse, error)

	// ReloadRates refresh rate table + zone mappings từ DB (admin)
	ReloadRates(ctx context.Context) error

	// ListRateRules trả toàn bộ rate rules kể cả inactive (admin)
	ListRateRules(ctx context.Context) ([]*model.RateRule, error)

	// UpsertRateRule tạo/sửa rate rule rồi reload snapshot (admin)
	UpsertRateRule(ctx context.Context, req *model.UpsertRateRuleRequest) (*model.RateRule, error)

	// ListZoneMappings trả bảng zone hiện tại (admin)
	ListZoneMappings(ctx context.Context) ([]*model.ZoneMapping, error)
}
