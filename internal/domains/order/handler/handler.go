package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marketplace-backend/internal/domains/order/model"
	"marketplace-backend/internal/domains/order/service"
	"marketplace-backend/internal/shared/response"
)

// =====================================================
// ORDER HANDLER
// =====================================================

type OrderHandler struct {
	service service.ServiceInterface
}

func NewOrderHandler(svc service.ServiceInterface) *OrderHandler {
	return &OrderHandler{
		service: svc,
	}
}

func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, model.ErrCodeInvalidRequest, "Invalid order ID")
		return uuid.Nil, false
	}
	return id, true
}

// GetOrder handles GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		status, code, message := model.MapErrorToHTTP(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, order)
}

// UpdateShipping handles PATCH /api/v1/orders/:id/shipping
func (h *OrderHandler) UpdateShipping(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req model.UpdateShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, model.ErrCodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.RecalculateShipping(c.Request.Context(), orderID, &req)
	if err != nil {
		status, code, message := model.MapErrorToHTTP(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ResolvePayment handles POST /api/v1/orders/:id/shipping/payment-resolution
func (h *OrderHandler) ResolvePayment(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req model.PaymentResolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, model.ErrCodeInvalidRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.ResolveAdditionalPayment(c.Request.Context(), orderID, &req)
	if err != nil {
		status, code, message := model.MapErrorToHTTP(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, result)
}
