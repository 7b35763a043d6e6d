package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/middleware"
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/services"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
)

type OrderHandler struct {
	*BaseHandler
	orderService  *services.OrderService
	reviewService *services.ReviewService
}

func NewOrderHandler(base *BaseHandler, orderService *services.OrderService, reviewService *services.ReviewService) *OrderHandler {
	return &OrderHandler{
		BaseHandler:   base,
		orderService:  orderService,
		reviewService: reviewService,
	}
}

func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:orderId", h.GetOrder)
		orders.PUT("/:orderId/delivery-date", h.UpdateDeliveryDate)

		// Lifecycle moves; each one is validated against the transition table.
		orders.POST("/:orderId/accept", h.AcceptOrder)
		orders.POST("/:orderId/reject", h.RejectOrder)
		orders.POST("/:orderId/cancel", h.CancelOrder)
		orders.POST("/:orderId/payment", h.SubmitPayment)
		orders.POST("/:orderId/delivered", h.MarkDelivered)
		orders.POST("/:orderId/confirm", h.ConfirmOrder)
		orders.POST("/:orderId/dispute", h.OpenDispute)

		orders.POST("/:orderId/reviews", h.CreateReview)
	}

	creating := r.Group("/orders")
	creating.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleBrand, models.UserRoleAdmin))
	{
		creating.POST("", h.CreateOrder)
	}

	admin := r.Group("/admin/orders")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.POST("/:orderId/resolve", h.ResolveDispute)
	}
}

// CreateOrder godoc
// @Summary Open an order
// @Description Opens an order in the awaiting status; when job_id is given the influencer must be an accepted applicant and is moved to the sent bucket
// @Tags orders
// @Accept json
// @Produce json
// @Param body body dto.CreateOrderRequest true "Order data"
// @Success 201 {object} dto.OrderResponse
// @Failure 409 {object} apperrors.ErrorResponse "Applicant not in the accepted bucket"
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.orderService.CreateOrder(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.GetOrder(h.GetDB(c), c.Param("orderId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ListOrdersRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	orders, total, next, err := h.orderService.ListOrders(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":      orders,
		"total":       total,
		"next_cursor": next,
	})
}

func (h *OrderHandler) AcceptOrder(c *gin.Context)   { h.lifecycleMove(c, h.orderService.AcceptOrder) }
func (h *OrderHandler) RejectOrder(c *gin.Context)   { h.lifecycleMove(c, h.orderService.RejectOrder) }
func (h *OrderHandler) CancelOrder(c *gin.Context)   { h.lifecycleMove(c, h.orderService.CancelOrder) }
func (h *OrderHandler) MarkDelivered(c *gin.Context) { h.lifecycleMove(c, h.orderService.MarkDelivered) }
func (h *OrderHandler) ConfirmOrder(c *gin.Context)  { h.lifecycleMove(c, h.orderService.ConfirmOrder) }
func (h *OrderHandler) OpenDispute(c *gin.Context)   { h.lifecycleMove(c, h.orderService.OpenDispute) }

func (h *OrderHandler) SubmitPayment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, intentID, err := h.orderService.SubmitPayment(h.GetDB(c), c.Param("orderId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":             resp,
		"payment_intent_id": intentID,
	})
}

func (h *OrderHandler) UpdateDeliveryDate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateDeliveryDateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.orderService.UpdateDeliveryDate(h.GetDB(c), c.Param("orderId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) ResolveDispute(c *gin.Context) {
	var req dto.ResolveDisputeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.orderService.ResolveDispute(h.GetDB(c), c.Param("orderId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) CreateReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.reviewService.CreateReview(h.GetDB(c), c.Param("orderId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrderHandler) lifecycleMove(c *gin.Context, move func(db *gorm.DB, orderID, userID string) (*dto.OrderResponse, error)) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := move(h.GetDB(c), c.Param("orderId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
