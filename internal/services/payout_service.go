package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/repositories"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/pagination"
)

// PayoutService reads an influencer's earnings. Rows opened in the current
// month are pending; unpaid rows from prior months are available and get
// settled by the monthly payout run.
type PayoutService struct {
	payoutRepo  *repositories.PayoutRepository
	invoiceRepo *repositories.InvoiceRepository
	profileRepo *repositories.ProfileRepository
}

func NewPayoutService(payoutRepo *repositories.PayoutRepository, invoiceRepo *repositories.InvoiceRepository, profileRepo *repositories.ProfileRepository) *PayoutService {
	return &PayoutService{payoutRepo: payoutRepo, invoiceRepo: invoiceRepo, profileRepo: profileRepo}
}

// monthStart returns the first instant of t's month in UTC, the boundary
// between the pending and available buckets.
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s *PayoutService) ListMyPayouts(db *gorm.DB, userID string) (*dto.PayoutsResponse, error) {
	profile, err := requireProfile(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	cutoff := monthStart(time.Now())

	pending, err := s.payoutRepo.ListUnpaidSince(db, profile.ID, cutoff)
	if err != nil {
		return nil, err
	}
	available, err := s.payoutRepo.ListUnpaidBefore(db, profile.ID, cutoff)
	if err != nil {
		return nil, err
	}
	paid, err := s.payoutRepo.ListPaid(db, profile.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.PayoutsResponse{
		Pending:   toPayoutItems(pending),
		Available: toPayoutItems(available),
		Paid:      toPayoutItems(paid),
	}
	for _, p := range pending {
		resp.PendingCents += p.AmountCents
	}
	for _, p := range available {
		resp.AvailableCents += p.AmountCents
	}
	return resp, nil
}

// ListMyInvoices pages over the caller's billing history, newest first.
func (s *PayoutService) ListMyInvoices(db *gorm.DB, userID, cursorToken string, limit int) ([]dto.InvoiceItem, int64, string, error) {
	profile, err := requireProfile(db, s.profileRepo, userID)
	if err != nil {
		return nil, 0, "", err
	}

	cursor, err := pagination.Decode(cursorToken)
	if err != nil {
		return nil, 0, "", err
	}
	limit = pagination.ClampLimit(limit)

	invoices, total, err := s.invoiceRepo.ListByProfile(db, profile.ID, cursor, limit)
	if err != nil {
		return nil, 0, "", err
	}

	out := make([]dto.InvoiceItem, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, dto.InvoiceItem{
			ID:              inv.ID,
			OrderID:         inv.OrderID,
			SaleBaseCents:   inv.SaleBaseCents,
			TaxCents:        inv.TaxCents,
			SaleTotalCents:  inv.SaleTotalCents,
			ServiceFeeCents: inv.ServiceFeeCents,
			NetPayoutCents:  inv.NetPayoutCents,
			CreatedAt:       inv.CreatedAt,
		})
	}

	next := ""
	if len(invoices) == limit {
		last := invoices[len(invoices)-1]
		next = pagination.Encode(last.CreatedAt, last.ID)
	}
	return out, total, next, nil
}

func toPayoutItems(payouts []models.Payout) []dto.PayoutItem {
	out := make([]dto.PayoutItem, 0, len(payouts))
	for _, p := range payouts {
		out = append(out, dto.PayoutItem{
			ID:          p.ID,
			OrderID:     p.OrderID,
			AmountCents: p.AmountCents,
			Paid:        p.Paid,
			PaidAt:      p.PaidAt,
			CreatedAt:   p.CreatedAt,
		})
	}
	return out
}
