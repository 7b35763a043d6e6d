package dto

import "time"

type CreateOrderRequest struct {
	InfluencerProfileID   string         `json:"influencer_profile_id" validate:"required"`
	JobID                 *string        `json:"job_id"`
	Platform              string         `json:"platform" validate:"required,platform"`
	ContentQuantities     map[string]int `json:"content_quantities" validate:"required,min=1"`
	BasePriceCents        int64          `json:"base_price_cents" validate:"required,min=1"`
	Details               string         `json:"details" validate:"max=5000"`
	RequestedDeliveryDate *time.Time     `json:"requested_delivery_date"`
}

type OrderResponse struct {
	ID                    string         `json:"id"`
	BuyerProfileID        string         `json:"buyer_profile_id"`
	BuyerName             string         `json:"buyer_name,omitempty"`
	InfluencerProfileID   string         `json:"influencer_profile_id"`
	InfluencerName        string         `json:"influencer_name,omitempty"`
	JobID                 *string        `json:"job_id,omitempty"`
	Platform              string         `json:"platform"`
	ContentQuantities     map[string]int `json:"content_quantities"`
	BasePriceCents        int64          `json:"base_price_cents"`
	TaxCents              int64          `json:"tax_cents"`
	TotalCents            int64          `json:"total_cents"`
	Details               string         `json:"details,omitempty"`
	OrderStatusID         int            `json:"order_status_id"`
	OrderStatus           string         `json:"order_status"`
	RequestedDeliveryDate *time.Time     `json:"requested_delivery_date,omitempty"`
	DateItWasDelivered    *time.Time     `json:"date_it_was_delivered,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
}

type ListOrdersRequest struct {
	Status int    `form:"status"`
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit"`
}

type UpdateDeliveryDateRequest struct {
	RequestedDeliveryDate time.Time `json:"requested_delivery_date" validate:"required"`
}

type ResolveDisputeRequest struct {
	Resolution string `json:"resolution" validate:"required,oneof=confirmed canceled on_hold"`
}

type PaymentWebhookRequest struct {
	OrderID     string `json:"order_id" validate:"required"`
	AmountCents int64  `json:"amount_cents" validate:"required,min=1"`
}
