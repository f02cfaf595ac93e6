package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"marketplace-backend/internal/domains/order/model"
	"marketplace-backend/internal/domains/order/repository"
	shipmodel "marketplace-backend/internal/domains/shipping/model"
	shipservice "marketplace-backend/internal/domains/shipping/service"
	"marketplace-backend/pkg/logger"
)

// =====================================================
// ORDER SERVICE - SHIPPING RECALCULATION
// =====================================================
// Invariant quan trọng nhất: order KHÔNG BAO GIỜ nhận shipping đắt hơn
// mà khách chưa trả phần chênh. Fee tăng → lưu vào pending fields,
// committed fields giữ nguyên cho tới khi payment request được paid.

type orderService struct {
	repo       repository.RepositoryInterface
	shipping   shipservice.ServiceInterface
	editWindow time.Duration
	staleAfter time.Duration
}

func NewOrderService(
	repo repository.RepositoryInterface,
	shipping shipservice.ServiceInterface,
	editWindowHours int,
	staleRequestHours int,
) ServiceInterface {
	return &orderService{
		repo:       repo,
		shipping:   shipping,
		editWindow: time.Duration(editWindowHours) * time.Hour,
		staleAfter: time.Duration(staleRequestHours) * time.Hour,
	}
}

// GetOrder trả order theo ID
func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound()
	}
	return order, nil
}

// RecalculateShipping xử lý PATCH shipping cho order
func (s *orderService) RecalculateShipping(ctx context.Context, orderID uuid.UUID, req *model.UpdateShippingRequest) (*model.RecalculationResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.ErrInvalidRequest("invalid shipping update", err)
	}
	if req.IsEmpty() {
		return nil, model.ErrInvalidRequest("no shipping changes provided", nil)
	}

	// ===== STEP 1: Load + guard =====
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !order.CanBeEdited(s.editWindow, now) {
		return nil, model.ErrEditWindowExpired()
	}

	// ===== STEP 2: Merge request với order hiện tại =====
	merged := s.mergeShipping(order, req)

	// ===== STEP 3: Quote lại fee với địa chỉ/type mới =====
	quoteReq := &shipmodel.CalculateFeeRequest{
		Weight:             order.WeightKg,
		ShippingType:       merged.ShippingType,
		Region:             merged.Region,
		City:               merged.City,
		DestinationAddress: buildAddress(merged.StreetAddress, merged.City),
		Fragile:            order.Fragile,
		OrderTime:          &now,
	}
	if merged.Lat != nil && merged.Lng != nil {
		quoteReq.Destination = &shipmodel.Coordinates{Lat: *merged.Lat, Lng: *merged.Lng}
	}

	option, err := s.shipping.CalculateFee(ctx, quoteReq)
	if err != nil {
		return nil, model.ErrInvalidRequest("shipping quote failed", err)
	}
	if !option.Available {
		return nil, model.ErrShippingUnavailable(option.UnavailableReason)
	}

	merged.ShippingFee = option.Fee
	merged.EstimatedDays = option.EstimatedDays
	if option.Zone != nil {
		zone := option.Zone.String()
		merged.Zone = &zone
	}
	merged.DistanceKm = option.DistanceKm

	oldFee := order.ShippingFee
	newFee := option.Fee

	// ===== STEP 4: So sánh fee và commit hoặc gate =====
	if newFee.LessThanOrEqual(oldFee) {
		if _, err := s.repo.UpdateShipping(ctx, order.ID, order.Version, merged); err != nil {
			return nil, err
		}

		logger.Info("Order shipping updated", map[string]interface{}{
			"order_id": order.ID.String(),
			"old_fee":  oldFee.String(),
			"new_fee":  newFee.String(),
		})

		return &model.RecalculationResponse{
			Result:         model.RecalcResultUpdated,
			ShippingFee:    newFee,
			OldShippingFee: oldFee,
			NewShippingFee: newFee,
			EstimatedDays:  option.EstimatedDays,
		}, nil
	}

	additional := newFee.Sub(oldFee)
	request := &model.AdditionalPaymentRequest{
		OrderID:          order.ID,
		OldFee:           oldFee,
		NewFee:           newFee,
		AdditionalAmount: additional,
		Status:           model.PaymentRequestPending,
	}

	saved, err := s.repo.SavePendingShipping(ctx, order.ID, order.Version, merged, request)
	if err != nil {
		return nil, err
	}

	logger.Info("Order shipping awaiting additional payment", map[string]interface{}{
		"order_id":           order.ID.String(),
		"old_fee":            oldFee.String(),
		"new_fee":            newFee.String(),
		"additional_amount":  additional.String(),
		"payment_request_id": saved.ID.String(),
	})

	return &model.RecalculationResponse{
		Result:           model.RecalcResultAwaitingPayment,
		ShippingFee:      oldFee, // fee hiện hành vẫn là fee cũ
		OldShippingFee:   oldFee,
		NewShippingFee:   newFee,
		AdditionalAmount: &additional,
		EstimatedDays:    option.EstimatedDays,
		PaymentRequestID: &saved.ID,
	}, nil
}

// ResolveAdditionalPayment đóng pending payment request
func (s *orderService) ResolveAdditionalPayment(ctx context.Context, orderID uuid.UUID, req *model.PaymentResolutionRequest) (*model.PaymentResolutionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.ErrInvalidRequest("invalid payment resolution", err)
	}

	request, err := s.repo.GetPendingPaymentRequest(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, model.ErrNoPendingPaymentRequest()
	}

	if model.PaymentRequestStatus(req.Status) == model.PaymentRequestPaid {
		order, err := s.repo.CommitPendingShipping(ctx, orderID, request.ID)
		if err != nil {
			return nil, err
		}

		logger.Info("Pending shipping committed after payment", map[string]interface{}{
			"order_id":           orderID.String(),
			"payment_request_id": request.ID.String(),
		})

		return &model.PaymentResolutionResponse{
			Result: model.ResolutionCommitted,
			Order:  order,
		}, nil
	}

	order, err := s.repo.RevertPendingShipping(ctx, orderID, request.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Pending shipping reverted", map[string]interface{}{
		"order_id":           orderID.String(),
		"payment_request_id": request.ID.String(),
	})

	return &model.PaymentResolutionResponse{
		Result: model.ResolutionReverted,
		Order:  order,
	}, nil
}

// AbandonStaleRequests abandon pending requests quá hạn (worker job)
func (s *orderService) AbandonStaleRequests(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.staleAfter)

	count, err := s.repo.AbandonStaleRequests(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		logger.Info("Stale payment requests abandoned", map[string]interface{}{
			"count":  count,
			"cutoff": cutoff.Format(time.RFC3339),
		})
	}

	return count, nil
}

// mergeShipping build ShippingUpdate: field trống trong request giữ giá trị hiện tại
func (s *orderService) mergeShipping(order *model.Order, req *model.UpdateShippingRequest) *repository.ShippingUpdate {
	upd := &repository.ShippingUpdate{
		Region:        order.Region,
		City:          order.City,
		StreetAddress: order.StreetAddress,
		Lat:           order.Lat,
		Lng:           order.Lng,
		ShippingType:  order.ShippingType.String(),
	}

	if req.Region != "" {
		upd.Region = req.Region
	}
	if req.City != "" {
		upd.City = req.City
	}
	if req.StreetAddress != "" {
		upd.StreetAddress = req.StreetAddress
	}
	if req.Lat != nil && req.Lng != nil {
		upd.Lat = req.Lat
		upd.Lng = req.Lng
	} else if req.StreetAddress != "" || req.City != "" || req.Region != "" {
		// Địa chỉ đổi bằng text → coordinates cũ không còn đúng
		upd.Lat = nil
		upd.Lng = nil
	}
	if req.ShippingType != "" {
		upd.ShippingType = req.ShippingType
	}

	return upd
}

func buildAddress(street, city string) string {
	parts := make([]string, 0, 2)
	if street != "" {
		parts = append(parts, street)
	}
	if city != "" {
		parts = append(parts, city)
	}
	return strings.Join(parts, ", ")
}
