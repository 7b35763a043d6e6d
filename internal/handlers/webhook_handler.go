package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/relense/influencer-markt-sub001/internal/services"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
)

// WebhookHandler receives payment-processor callbacks. The route is
// unauthenticated; the amount check against the order total is the guard.
type WebhookHandler struct {
	*BaseHandler
	orderService *services.OrderService
}

func NewWebhookHandler(base *BaseHandler, orderService *services.OrderService) *WebhookHandler {
	return &WebhookHandler{
		BaseHandler:  base,
		orderService: orderService,
	}
}

func (h *WebhookHandler) RegisterRoutes(r *gin.RouterGroup) {
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/payments", h.PaymentCompleted)
	}
}

func (h *WebhookHandler) PaymentCompleted(c *gin.Context) {
	var req dto.PaymentWebhookRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.orderService.HandlePaymentWebhook(h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
