package dto

import "time"

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,min=1,max=4000"`
}

type MessageResponse struct {
	ID                string    `json:"id"`
	OrderID           string    `json:"order_id"`
	SenderProfileID   string    `json:"sender_profile_id"`
	ReceiverProfileID string    `json:"receiver_profile_id"`
	Text              string    `json:"text"`
	CreatedAt         time.Time `json:"created_at"`
}
