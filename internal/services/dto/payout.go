package dto

import "time"

type PayoutItem struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"order_id"`
	AmountCents int64      `json:"amount_cents"`
	Paid        bool       `json:"paid"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// InvoiceItem is one line of an influencer's billing history, the monetary
// snapshot taken when the order was confirmed.
type InvoiceItem struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"order_id"`
	SaleBaseCents   int64     `json:"sale_base_cents"`
	TaxCents        int64     `json:"tax_cents"`
	SaleTotalCents  int64     `json:"sale_total_cents"`
	ServiceFeeCents int64     `json:"service_fee_cents"`
	NetPayoutCents  int64     `json:"net_payout_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

// PayoutsResponse splits a profile's unpaid earnings into the current-month
// pending bucket and the prior-months available bucket.
type PayoutsResponse struct {
	PendingCents   int64        `json:"pending_cents"`
	AvailableCents int64        `json:"available_cents"`
	Pending        []PayoutItem `json:"pending"`
	Available      []PayoutItem `json:"available"`
	Paid           []PayoutItem `json:"paid"`
}
