package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/domains/shipping/model"
	"marketplace-backend/internal/domains/shipping/service"
	"marketplace-backend/internal/shared/response"
)

// =====================================================
// SHIPPING HANDLER
// =====================================================

type ShippingHandler struct {
	service service.ServiceInterface
}

func NewShippingHandler(svc service.ServiceInterface) *ShippingHandler {
	return &ShippingHandler{
		service: svc,
	}
}

// CalculateFee handles POST /api/v1/shipping-rates/calculate
func (h *ShippingHandler) CalculateFee(c *gin.Context) {
	var req model.CalculateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "SHP001", "Invalid request body: "+err.Error())
		return
	}

	option, err := h.service.CalculateFee(c.Request.Context(), &req)
	if err != nil {
		status, code, message := model.MapErrorToHTTP(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, option)
}

// GetOptions handles GET /api/v1/shipping-rates/options
func (h *ShippingHandler) GetOptions(c *gin.Context) {
	var req model.ShippingOptionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "SHP001", "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.service.GetShippingOptions(c.Request.Context(), &req)
	if err != nil {
		status, code, message := model.MapErrorToHTTP(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// ListRateRules handles GET /api/v1/admin/shipping-rates
func (h *ShippingHandler) ListRateRules(c *gin.Context) {
	rules, err := h.service.ListRateRules(c.Request.Context())
	if err != nil {
		status, code, message := model.MapErrorToHTTP(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"rules": rules,
		"total": len(rules),
	})
}

// UpsertRateRule handles POST /api/v1/admin/shipping-rates
func (h *ShippingHandler) UpsertRateRule(c *gin.Context) {
	var req model.UpsertRateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "SHP001", "Invalid request body: "+err.Error())
		return
	}

	rule, err := h.service.UpsertRateRule(c.Request.Context(), &req)
	if err != nil {
		status, code, message := model.MapErrorToHTTP(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, rule)
}

// ReloadRates handles POST /api/v1/admin/shipping-rates/reload
func (h *ShippingHandler) ReloadRates(c *gin.Context) {
	if err := h.service.ReloadRates(c.Request.Context()); err != nil {
		status, code, message := model.MapErrorToHTTP(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "rate table reloaded",
	})
}

// ListZoneMappings handles GET /api/v1/admin/zone-mappings
func (h *ShippingHandler) ListZoneMappings(c *gin.Context) {
	mappings, err := h.service.ListZoneMappings(c.Request.Context())
	if err != nil {
		status, code, message := model.MapErrorToHTTP(err)
		response.ErrorResponse(c, status, code, message)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"mappings": mappings,
		"total":    len(mappings),
	})
}
