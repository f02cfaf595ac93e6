package service

import (
	"context"
	"sync"
	"time"

	"marketplace-backend/internal/domains/shipping/model"
	"marketplace-backend/internal/domains/shipping/repository"
	"marketplace-backend/pkg/logger"
)

// =====================================================
// SHIPPING SERVICE - QUOTE ORCHESTRATION
// =====================================================
// Pipeline cho mỗi quote:
//   weight → location (distance ưu tiên, zone fallback) → rate lookup
//   → base fee → cutoff check → fragile surcharge → breakdown
//
// Distance resolution fail KHÔNG fail quote - rơi về zone pricing.
// Chỉ khi không còn cách nào xác định location thì option mới unavailable.

type shippingService struct {
	repo      repository.RepositoryInterface
	weights   *WeightResolver
	zones     *ZoneResolver
	distances *DistanceResolver
	rates     *RateTable
	surcharge *SurchargeEngine
}

func NewShippingService(
	repo repository.RepositoryInterface,
	weights *WeightResolver,
	zones *ZoneResolver,
	distances *DistanceResolver,
	rates *RateTable,
	surcharge *SurchargeEngine,
) ServiceInterface {
	return &shippingService{
		repo:      repo,
		weights:   weights,
		zones:     zones,
		distances: distances,
		rates:     rates,
		surcharge: surcharge,
	}
}

// Bootstrap load rate table + zone mappings từ DB lúc startup
func (s *shippingService) Bootstrap(ctx context.Context) error {
	if err := s.rates.Load(ctx); err != nil {
		return err
	}
	return s.reloadZoneMappings(ctx)
}

func (s *shippingService) reloadZoneMappings(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	mappings, err := s.repo.ListZoneMappings(ctx)
	if err != nil {
		return err
	}

	s.zones.SetMappings(mappings)
	return nil
}

// =====================================================
// LOCATION RESOLUTION
// =====================================================
// resolvedLocation là kết quả resolve destination MỘT LẦN cho cả request.
// Các shipping types chia sẻ location này, không resolve lại per-type.
type resolvedLocation struct {
	distance DistanceResult
	zone     model.Zone
	hasZone  bool // có zone hợp lệ (explicit hoặc từ region/city)
}

func (s *shippingService) resolveLocation(ctx context.Context, req *model.CalculateFeeRequest) resolvedLocation {
	loc := resolvedLocation{}

	// 1. Distance: client gửi sẵn > coordinates/address
	if req.DistanceKm != nil {
		loc.distance = ResolvedDistance(*req.DistanceKm)
	} else {
		loc.distance = s.distances.Resolve(ctx, req.Destination, req.DestinationAddress)
	}

	// 2. Zone fallback: explicit zone thắng, sau đó region/city
	switch {
	case req.Zone != "" && model.Zone(req.Zone).IsValid():
		loc.zone = model.Zone(req.Zone)
		loc.hasZone = true
	case req.Region != "" || req.City != "":
		loc.zone = s.zones.Resolve(req.Region, req.City)
		loc.hasZone = true
	}

	return loc
}

// =====================================================
// SINGLE-TYPE QUOTE
// =====================================================
// quote build một ShippingOption hoàn chỉnh cho một type.
// Không bao giờ trả error - mọi failure thành Unavailable option.
func (s *shippingService) quote(
	shippingType model.ShippingType,
	weight float64,
	loc resolvedLocation,
	fragile bool,
	orderTime time.Time,
) *model.ShippingOption {
	// ===== STEP 1: Rate lookup (distance ưu tiên, zone fallback) =====
	var rule *model.RateRule
	var usedDistance *float64
	var usedZone *model.Zone

	if loc.distance.Resolved {
		if found, err := s.rates.FindByDistance(shippingType, loc.distance.DistanceKm); err == nil {
			rule = found
			km := loc.distance.DistanceKm
			usedDistance = &km
		}
	}

	if rule == nil && loc.hasZone {
		found, err := s.rates.FindByZone(shippingType, loc.zone)
		if err == nil {
			rule = found
			zone := loc.zone
			usedZone = &zone
		}
	}

	if rule == nil {
		if !loc.distance.Resolved && !loc.hasZone {
			return model.Unavailable(shippingType, model.ReasonLocationUnresolved)
		}
		return model.Unavailable(shippingType, model.ReasonNoRateForZone)
	}

	// ===== STEP 2: Same-day cutoff =====
	if available, reason := s.surcharge.CheckCutoff(rule, orderTime); !available {
		opt := model.Unavailable(shippingType, reason)
		opt.Weight = weight
		opt.Zone = usedZone
		opt.DistanceKm = usedDistance
		return opt
	}

	// ===== STEP 3: Base fee + breakdown =====
	fee := s.rates.Fee(rule, weight)

	breakdown := []model.BreakdownEntry{
		{Label: model.BreakdownBaseFee, Amount: rule.BaseFee},
	}
	if perKgPart := fee.Sub(rule.BaseFee); perKgPart.IsPositive() {
		breakdown = append(breakdown, model.BreakdownEntry{
			Label:  model.BreakdownPerKgFee,
			Amount: perKgPart,
		})
	}

	// ===== STEP 4: Fragile surcharge =====
	fee, fragileSurcharge := s.surcharge.ApplyFragile(fee, fragile)
	if fragileSurcharge.IsPositive() {
		breakdown = append(breakdown, model.BreakdownEntry{
			Label:  model.BreakdownFragileSurcharge,
			Amount: fragileSurcharge,
		})
	}

	return &model.ShippingOption{
		Type:          shippingType,
		Fee:           fee,
		BaseFee:       rule.BaseFee,
		PerKgFee:      rule.PerKgFee,
		Weight:        weight,
		EstimatedDays: rule.EstimatedDays,
		Available:     true,
		Zone:          usedZone,
		DistanceKm:    usedDistance,
		Breakdown:     breakdown,
	}
}

// =====================================================
// PUBLIC OPERATIONS
// =====================================================

// CalculateFee quote một shipping type cho một shipment
func (s *shippingService) CalculateFee(ctx context.Context, req *model.CalculateFeeRequest) (*model.ShippingOption, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.ErrInvalidRequest("invalid calculate fee request", err)
	}

	weight := s.weights.Resolve(req.Weight, req.Items)
	loc := s.resolveLocation(ctx, req)

	orderTime := time.Now()
	if req.OrderTime != nil {
		orderTime = *req.OrderTime
	}

	opt := s.quote(model.ShippingType(req.ShippingType), weight, loc, req.Fragile, orderTime)

	logger.Debug("Shipping fee calculated", map[string]interface{}{
		"shipping_type": opt.Type,
		"available":     opt.Available,
		"fee":           opt.Fee.String(),
		"weight":        weight,
	})

	return opt, nil
}

// GetShippingOptions quote tất cả types song song.
// Mỗi type ghi vào slot riêng theo index → không cần lock,
// và response giữ đúng thứ tự DefaultShippingTypes.
func (s *shippingService) GetShippingOptions(ctx context.Context, req *model.ShippingOptionsRequest) (*model.ShippingOptionsResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.ErrInvalidRequest("invalid shipping options request", err)
	}

	calcReq := &model.CalculateFeeRequest{
		Weight:             req.Weight,
		Zone:               req.Zone,
		Region:             req.Region,
		City:               req.City,
		Destination:        req.Destination,
		DestinationAddress: req.DestinationAddress,
		Fragile:            req.Fragile,
	}
	calcReq.Normalize()

	weight := s.weights.Resolve(calcReq.Weight, nil)
	loc := s.resolveLocation(ctx, calcReq)
	orderTime := time.Now()

	options := make([]*model.ShippingOption, len(model.DefaultShippingTypes))

	var wg sync.WaitGroup
	for i, shippingType := range model.DefaultShippingTypes {
		wg.Add(1)
		go func(slot int, st model.ShippingType) {
			defer wg.Done()
			options[slot] = s.quote(st, weight, loc, calcReq.Fragile, orderTime)
		}(i, shippingType)
	}
	wg.Wait()

	return &model.ShippingOptionsResponse{Options: options}, nil
}

// =====================================================
// ADMIN OPERATIONS
// =====================================================

// ReloadRates refresh rate table + zone mappings từ DB
func (s *shippingService) ReloadRates(ctx context.Context) error {
	if err := s.rates.Reload(ctx); err != nil {
		return err
	}
	return s.reloadZoneMappings(ctx)
}

// ListRateRules trả toàn bộ rate rules kể cả inactive
func (s *shippingService) ListRateRules(ctx context.Context) ([]*model.RateRule, error) {
	return s.repo.ListRateRules(ctx)
}

// UpsertRateRule tạo/sửa rate rule rồi reload snapshot
func (s *shippingService) UpsertRateRule(ctx context.Context, req *model.UpsertRateRuleRequest) (*model.RateRule, error) {
	if err := req.Validate(); err != nil {
		return nil, model.ErrInvalidRequest("invalid rate rule", err)
	}

	saved, err := s.repo.UpsertRateRule(ctx, req.ToRateRule())
	if err != nil {
		return nil, err
	}

	if err := s.rates.Reload(ctx); err != nil {
		logger.Error("Rate table reload after upsert failed", err)
	}

	return saved, nil
}

// ListZoneMappings trả bảng zone hiện tại
func (s *shippingService) ListZoneMappings(ctx context.Context) ([]*model.ZoneMapping, error) {
	return s.repo.ListZoneMappings(ctx)
}
