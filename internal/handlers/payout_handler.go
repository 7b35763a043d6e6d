package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/relense/influencer-markt-sub001/internal/middleware"
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/services"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
)

type PayoutHandler struct {
	*BaseHandler
	payoutService *services.PayoutService
}

func NewPayoutHandler(base *BaseHandler, payoutService *services.PayoutService) *PayoutHandler {
	return &PayoutHandler{
		BaseHandler:   base,
		payoutService: payoutService,
	}
}

func (h *PayoutHandler) RegisterRoutes(r *gin.RouterGroup) {
	payouts := r.Group("/payouts")
	payouts.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleInfluencer, models.UserRoleAdmin))
	{
		payouts.GET("/my", h.ListMyPayouts)
	}

	invoices := r.Group("/invoices")
	invoices.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleInfluencer, models.UserRoleAdmin))
	{
		invoices.GET("/my", h.ListMyInvoices)
	}
}

// ListMyPayouts godoc
// @Summary List my payouts
// @Description Returns the caller's earnings split into current-month pending, prior-months available and already-paid rows
// @Tags payouts
// @Produce json
// @Success 200 {object} dto.PayoutsResponse
// @Router /payouts/my [get]
func (h *PayoutHandler) ListMyPayouts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.payoutService.ListMyPayouts(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PayoutHandler) ListMyInvoices(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PageRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	invoices, total, next, err := h.payoutService.ListMyInvoices(h.GetDB(c), userID, req.Cursor, req.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"invoices":    invoices,
		"total":       total,
		"next_cursor": next,
	})
}
