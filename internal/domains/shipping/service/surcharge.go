package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-backend/internal/domains/shipping/model"
)

// =====================================================
// SURCHARGE ENGINE
// =====================================================
// Apply các điều chỉnh sau base fee, theo thứ tự cố định:
//  1. Same-day cutoff: quá giờ cutoff local → option unavailable
//  2. Fragile surcharge: flat amount hoặc % của fee sau bước trước
//
// Engine nhận base fee và trả fee cuối + breakdown, không giữ state
// giữa các lần gọi → cùng input luôn ra cùng output.

type SurchargeEngine struct {
	fragileFlat    decimal.Decimal
	fragilePercent decimal.Decimal
	location       *time.Location
}

// NewSurchargeEngine tạo engine. fragilePercent > 0 thì dùng %,
// ngược lại dùng flat amount.
func NewSurchargeEngine(fragileFlat, fragilePercent float64, location *time.Location) *SurchargeEngine {
	if location == nil {
		location = time.UTC
	}
	return &SurchargeEngine{
		fragileFlat:    decimal.NewFromFloat(fragileFlat),
		fragilePercent: decimal.NewFromFloat(fragilePercent),
		location:       location,
	}
}

// CheckCutoff kiểm tra same-day cutoff cho rule.
// Trả (available, reason). Rule không có cutoff → luôn available.
// So sánh theo local time của warehouse: order phải đặt TRƯỚC giờ
// cutoff, đúng giờ cutoff là đã trễ.
func (e *SurchargeEngine) CheckCutoff(rule *model.RateRule, orderTime time.Time) (bool, string) {
	if rule.CutoffTime == nil || *rule.CutoffTime == "" {
		return true, ""
	}

	hour, minute, err := parseCutoff(*rule.CutoffTime)
	if err != nil {
		// Cutoff config hỏng → treat như không có cutoff
		return true, ""
	}

	local := orderTime.In(e.location)
	cutoff := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, e.location)

	if !local.Before(cutoff) {
		return false, model.ReasonAfterCutoff
	}

	return true, ""
}

// ApplyFragile cộng fragile surcharge vào fee nếu shipment fragile.
// Trả (fee mới, surcharge đã cộng). Không fragile → fee giữ nguyên, zero.
func (e *SurchargeEngine) ApplyFragile(fee decimal.Decimal, fragile bool) (decimal.Decimal, decimal.Decimal) {
	if !fragile {
		return fee, decimal.Zero
	}

	if e.fragilePercent.IsPositive() {
		surcharge := fee.Mul(e.fragilePercent).Div(decimal.NewFromInt(100))
		return fee.Add(surcharge), surcharge
	}

	return fee.Add(e.fragileFlat), e.fragileFlat
}

// parseCutoff parse "HH:MM" thành (hour, minute)
func parseCutoff(s string) (int, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid cutoff time %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid cutoff hour %q", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid cutoff minute %q", s)
	}

	return hour, minute, nil
}
