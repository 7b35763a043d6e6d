package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/relense/influencer-markt-sub001/internal/middleware"
	"github.com/relense/influencer-markt-sub001/internal/services"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
)

type MessageHandler struct {
	*BaseHandler
	messageService *services.MessageService
}

func NewMessageHandler(base *BaseHandler, messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    base,
		messageService: messageService,
	}
}

func (h *MessageHandler) RegisterRoutes(r *gin.RouterGroup) {
	messages := r.Group("/orders/:orderId/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.GET("", h.ListMessages)
		messages.POST("", h.SendMessage)
	}
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.messageService.SendMessage(h.GetDB(c), c.Param("orderId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PageRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	messages, total, next, err := h.messageService.ListMessages(h.GetDB(c), c.Param("orderId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"messages":    messages,
		"total":       total,
		"next_cursor": next,
	})
}
