package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"marketplace-backend/internal/domains/shipping/model"
	"marketplace-backend/internal/domains/shipping/repository"
	"marketplace-backend/pkg/logger"
)

// =====================================================
// RATE TABLE
// =====================================================
// In-memory snapshot của bảng giá, load từ DB lúc startup.
// Lookup là read-only trên snapshot → quote path không chạm DB.
// Reload() swap snapshot atomically, quote đang chạy vẫn thấy bảng cũ.

type RateTable struct {
	repo repository.RepositoryInterface

	mu    sync.RWMutex
	rules []*model.RateRule
}

func NewRateTable(repo repository.RepositoryInterface) *RateTable {
	return &RateTable{
		repo: repo,
	}
}

// NewRateTableFromRules tạo rate table từ slice tĩnh, không cần DB.
// Dùng cho tests và seed-only deployments.
func NewRateTableFromRules(rules []*model.RateRule) *RateTable {
	return &RateTable{
		rules: rules,
	}
}

// Load đọc active rules từ DB vào snapshot
func (t *RateTable) Load(ctx context.Context) error {
	if t.repo == nil {
		return nil
	}

	rules, err := t.repo.ListActiveRateRules(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.rules = rules
	t.mu.Unlock()

	logger.Info("Rate table loaded", map[string]interface{}{
		"rules": len(rules),
	})

	return nil
}

// Reload là alias semantic cho admin endpoint
func (t *RateTable) Reload(ctx context.Context) error {
	return t.Load(ctx)
}

// FindByZone tìm active rule match (type, zone).
// Không match → ErrNoRateFound.
func (t *RateTable) FindByZone(shippingType model.ShippingType, zone model.Zone) (*model.RateRule, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, rule := range t.rules {
		if !rule.Active || rule.ShippingType != shippingType {
			continue
		}
		if rule.MatchesZone(zone) {
			return rule, nil
		}
	}

	return nil, model.ErrNoRateFound(shippingType)
}

// FindByDistance tìm active rule có distance band chứa distanceKm.
// Không match → ErrNoRateFound.
func (t *RateTable) FindByDistance(shippingType model.ShippingType, distanceKm float64) (*model.RateRule, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, rule := range t.rules {
		if !rule.Active || rule.ShippingType != shippingType {
			continue
		}
		if rule.MatchesDistance(distanceKm) {
			return rule, nil
		}
	}

	return nil, model.ErrNoRateFound(shippingType)
}

// Fee tính base fee cho rule + weight:
//
//	fee = baseFee + perKgFee * max(0, weight - includedWeight)
//
// Weight thừa tính bằng decimal để không lệch số tiền.
func (t *RateTable) Fee(rule *model.RateRule, weightKg float64) decimal.Decimal {
	extraWeight := weightKg - rule.IncludedWeightKg
	if extraWeight <= 0 {
		return rule.BaseFee
	}

	return rule.BaseFee.Add(rule.PerKgFee.Mul(decimal.NewFromFloat(extraWeight)))
}
