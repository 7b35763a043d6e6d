package services

import (
	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/repositories"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
	"github.com/relense/influencer-markt-sub001/pkg/pagination"
)

// MessageService is the order-scoped thread between buyer and influencer.
// Only the two parties can read or write; the receiver is always the other
// party.
type MessageService struct {
	messageRepo   *repositories.MessageRepository
	orderRepo     *repositories.OrderRepository
	profileRepo   *repositories.ProfileRepository
	notifications *NotificationService
}

func NewMessageService(messageRepo *repositories.MessageRepository, orderRepo *repositories.OrderRepository, profileRepo *repositories.ProfileRepository, notifications *NotificationService) *MessageService {
	return &MessageService{
		messageRepo:   messageRepo,
		orderRepo:     orderRepo,
		profileRepo:   profileRepo,
		notifications: notifications,
	}
}

func (s *MessageService) SendMessage(db *gorm.DB, orderID, userID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	order, sender, err := s.loadThread(db, orderID, userID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		OrderID:           order.ID,
		SenderProfileID:   sender.ID,
		ReceiverProfileID: otherParty(order, sender.ID),
		Text:              req.Text,
	}
	if err := s.messageRepo.Create(db, message); err != nil {
		return nil, err
	}

	s.notifications.Emit(db, message.ReceiverProfileID, &sender.ID, "message", message.ID, models.ActionNewMessage, map[string]any{
		"order_id": order.ID,
	})
	return toMessageResponse(message), nil
}

func (s *MessageService) ListMessages(db *gorm.DB, orderID, userID string, req *dto.PageRequest) ([]dto.MessageResponse, int64, string, error) {
	if _, _, err := s.loadThread(db, orderID, userID); err != nil {
		return nil, 0, "", err
	}

	cursor, err := pagination.Decode(req.Cursor)
	if err != nil {
		return nil, 0, "", err
	}
	limit := pagination.ClampLimit(req.Limit)

	messages, total, err := s.messageRepo.ListByOrder(db, orderID, cursor, limit)
	if err != nil {
		return nil, 0, "", err
	}

	out := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, *toMessageResponse(&messages[i]))
	}

	next := ""
	if len(messages) == limit {
		last := messages[len(messages)-1]
		next = pagination.Encode(last.CreatedAt, last.ID)
	}
	return out, total, next, nil
}

func (s *MessageService) loadThread(db *gorm.DB, orderID, userID string) (*models.Order, *models.Profile, error) {
	profile, err := requireProfile(db, s.profileRepo, userID)
	if err != nil {
		return nil, nil, err
	}
	order, err := s.orderRepo.FindByID(db, orderID)
	if err != nil {
		return nil, nil, wrapNotFound(err)
	}
	if order.BuyerProfileID != profile.ID && order.InfluencerProfileID != profile.ID {
		return nil, nil, apperrors.ErrNotOrderParty
	}
	return order, profile, nil
}

func toMessageResponse(message *models.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:                message.ID,
		OrderID:           message.OrderID,
		SenderProfileID:   message.SenderProfileID,
		ReceiverProfileID: message.ReceiverProfileID,
		Text:              message.Text,
		CreatedAt:         message.CreatedAt,
	}
}
