package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"marketplace-backend/internal/domains/order/service"
	"marketplace-backend/pkg/logger"
)

// TypeAbandonStaleRequests là task type cho job dọn pending payment requests
const TypeAbandonStaleRequests = "order:abandon_stale_payment_requests"

type AbandonStaleRequestsPayload struct {
	Date time.Time `json:"date,omitempty"`
}

// NewAbandonStaleRequestsTask tạo task cho scheduler
func NewAbandonStaleRequestsTask() (*asynq.Task, error) {
	payload, err := json.Marshal(AbandonStaleRequestsPayload{Date: time.Now()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAbandonStaleRequests, payload), nil
}

// AbandonStaleRequestsHandler abandon các additional payment request
// pending quá lâu. Order giữ pending shipping mãi = khách không bao giờ
// trả phần chênh → dọn định kỳ để order quay về shipping cũ.
type AbandonStaleRequestsHandler struct {
	orderService service.ServiceInterface
}

func NewAbandonStaleRequestsHandler(orderService service.ServiceInterface) *AbandonStaleRequestsHandler {
	return &AbandonStaleRequestsHandler{
		orderService: orderService,
	}
}

func (h *AbandonStaleRequestsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload AbandonStaleRequestsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Unmarshal fail due to ", err)
		return err
	}

	log.Info().Msg("Starting abandon of stale payment requests")

	count, err := h.orderService.AbandonStaleRequests(ctx)
	if err != nil {
		logger.Error("Abandon stale payment requests failed due to ", err)
		return err
	}

	log.Info().
		Int64("abandoned", count).
		Msg("Stale payment requests processed")

	return nil
}
