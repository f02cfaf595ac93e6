package service

import (
	"marketplace-backend/internal/domains/shipping/model"
)

// =====================================================
// WEIGHT RESOLVER
// =====================================================
// Chuyển shipment input (weight tổng hoặc items) thành billable weight.
// Pure function, không side effects.

type WeightResolver struct {
	minBillableKg float64
	defaultItemKg float64
}

func NewWeightResolver(minBillableKg, defaultItemKg float64) *WeightResolver {
	return &WeightResolver{
		minBillableKg: minBillableKg,
		defaultItemKg: defaultItemKg,
	}
}

// Resolve tính billable weight:
// - explicitWeight > 0 → dùng trực tiếp
// - ngược lại sum items (item thiếu weight → default item weight)
// - kết quả luôn >= min billable weight, kể cả khi input rỗng
func (w *WeightResolver) Resolve(explicitWeight float64, items []model.QuoteItem) float64 {
	weight := explicitWeight

	if weight <= 0 {
		for _, item := range items {
			itemWeight := w.defaultItemKg
			if item.WeightKg != nil && *item.WeightKg > 0 {
				itemWeight = *item.WeightKg
			}

			qty := item.Quantity
			if qty <= 0 {
				qty = 1
			}

			weight += itemWeight * float64(qty)
		}
	}

	if weight < w.minBillableKg {
		weight = w.minBillableKg
	}

	return weight
}
