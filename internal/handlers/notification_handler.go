package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/middleware"
	"github.com/relense/influencer-markt-sub001/internal/repositories"
	"github.com/relense/influencer-markt-sub001/internal/services"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService *services.NotificationService
	profileRepo         *repositories.ProfileRepository
}

func NewNotificationHandler(base *BaseHandler, notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
		profileRepo:         repositories.NewProfileRepository(),
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", h.ListNotifications)
		notifications.GET("/unread-count", h.CountUnread)
		notifications.POST("/:notificationId/read", h.MarkRead)
		notifications.POST("/read-all", h.MarkAllRead)
	}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	profileID, ok := h.requireProfileID(c)
	if !ok {
		return
	}

	var req dto.PageRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	notifications, total, next, err := h.notificationService.List(h.GetDB(c), profileID, req.Cursor, req.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
		"next_cursor":   next,
	})
}

func (h *NotificationHandler) CountUnread(c *gin.Context) {
	profileID, ok := h.requireProfileID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.CountUnread(h.GetDB(c), profileID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	profileID, ok := h.requireProfileID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(h.GetDB(c), c.Param("notificationId"), profileID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	profileID, ok := h.requireProfileID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(h.GetDB(c), profileID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *NotificationHandler) requireProfileID(c *gin.Context) (string, bool) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return "", false
	}

	profile, err := h.profileRepo.FindByUserID(h.GetDB(c), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.HandleError(c, apperrors.ErrProfileRequired)
		} else {
			h.HandleServiceError(c, err)
		}
		return "", false
	}
	return profile.ID, true
}
