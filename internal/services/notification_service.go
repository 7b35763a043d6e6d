package services

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/logger"
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/repositories"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/pagination"
)

type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
}

func NewNotificationService(notificationRepo *repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// EmitTx writes a notification row on the given handle. When the handle is a
// transaction the row commits or rolls back together with the primary write,
// which is what gives the delivery worker its at-least-once guarantee.
func (s *NotificationService) EmitTx(db *gorm.DB, notifierProfileID string, senderProfileID *string, entityType, entityID, action string, data map[string]any) error {
	n := &models.Notification{
		NotifierProfileID: notifierProfileID,
		SenderProfileID:   senderProfileID,
		EntityType:        entityType,
		EntityID:          entityID,
		Action:            action,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		n.Data = datatypes.JSON(raw)
	}
	return s.notificationRepo.Create(db, n)
}

// Emit is the best-effort variant used after a primary write has already
// committed. A failed insert is logged, never surfaced to the caller.
func (s *NotificationService) Emit(db *gorm.DB, notifierProfileID string, senderProfileID *string, entityType, entityID, action string, data map[string]any) {
	if err := s.EmitTx(db, notifierProfileID, senderProfileID, entityType, entityID, action, data); err != nil {
		logger.Error("failed to emit notification", "action", action, "entity_id", entityID, "error", err)
	}
}

func (s *NotificationService) List(db *gorm.DB, notifierProfileID string, cursorToken string, limit int) ([]dto.NotificationResponse, int64, string, error) {
	cursor, err := pagination.Decode(cursorToken)
	if err != nil {
		return nil, 0, "", err
	}
	limit = pagination.ClampLimit(limit)

	rows, total, err := s.notificationRepo.ListByNotifier(db, notifierProfileID, cursor, limit)
	if err != nil {
		return nil, 0, "", err
	}

	out := make([]dto.NotificationResponse, 0, len(rows))
	for _, n := range rows {
		out = append(out, dto.NotificationResponse{
			ID:         n.ID,
			EntityType: n.EntityType,
			EntityID:   n.EntityID,
			Action:     n.Action,
			SenderID:   n.SenderProfileID,
			IsRead:     n.IsRead,
			ReadAt:     n.ReadAt,
			CreatedAt:  n.CreatedAt,
		})
	}

	next := ""
	if len(rows) == limit {
		last := rows[len(rows)-1]
		next = pagination.Encode(last.CreatedAt, last.ID)
	}
	return out, total, next, nil
}

func (s *NotificationService) CountUnread(db *gorm.DB, notifierProfileID string) (int64, error) {
	return s.notificationRepo.CountUnread(db, notifierProfileID)
}

func (s *NotificationService) MarkRead(db *gorm.DB, notificationID, notifierProfileID string) error {
	return wrapNotFound(s.notificationRepo.MarkRead(db, notificationID, notifierProfileID))
}

func (s *NotificationService) MarkAllRead(db *gorm.DB, notifierProfileID string) error {
	return s.notificationRepo.MarkAllRead(db, notifierProfileID)
}
