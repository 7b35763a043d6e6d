package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/repositories"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
	"github.com/relense/influencer-markt-sub001/pkg/pagination"
)

// ReviewService handles the single review a buyer leaves on a confirmed
// order. Creating the review, moving the order to reviewed and opening the
// payout row are one transaction.
type ReviewService struct {
	reviewRepo    *repositories.ReviewRepository
	orderRepo     *repositories.OrderRepository
	invoiceRepo   *repositories.InvoiceRepository
	payoutRepo    *repositories.PayoutRepository
	profileRepo   *repositories.ProfileRepository
	notifications *NotificationService
}

func NewReviewService(
	reviewRepo *repositories.ReviewRepository,
	orderRepo *repositories.OrderRepository,
	invoiceRepo *repositories.InvoiceRepository,
	payoutRepo *repositories.PayoutRepository,
	profileRepo *repositories.ProfileRepository,
	notifications *NotificationService,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		orderRepo:     orderRepo,
		invoiceRepo:   invoiceRepo,
		payoutRepo:    payoutRepo,
		profileRepo:   profileRepo,
		notifications: notifications,
	}
}

func (s *ReviewService) CreateReview(db *gorm.DB, orderID, userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	author, err := requireProfile(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(db, orderID)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	if order.BuyerProfileID != author.ID {
		return nil, apperrors.ErrNotOrderParty
	}
	switch order.OrderStatusID {
	case models.OrderStatusConfirmed:
	case models.OrderStatusReviewed:
		return nil, apperrors.ErrReviewAlreadyExists
	default:
		return nil, apperrors.ErrOrderNotConfirmed
	}

	if _, err := s.reviewRepo.FindByOrderID(db, order.ID); err == nil {
		return nil, apperrors.ErrReviewAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindByOrderID(db, order.ID)
	if err != nil {
		return nil, wrapNotFound(err)
	}

	review := &models.Review{
		OrderID:         order.ID,
		AuthorProfileID: author.ID,
		TargetProfileID: order.InfluencerProfileID,
		Rating:          req.Rating,
		ReviewText:      req.ReviewText,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Create(tx, review); err != nil {
			return err
		}

		order.OrderStatusID = models.OrderStatusReviewed
		if err := s.orderRepo.Save(tx, order); err != nil {
			return err
		}

		payout := &models.Payout{
			OrderID:     order.ID,
			InvoiceID:   invoice.ID,
			ProfileID:   order.InfluencerProfileID,
			AmountCents: invoice.NetPayoutCents,
		}
		if err := s.payoutRepo.Create(tx, payout); err != nil {
			return err
		}

		return s.notifications.EmitTx(tx, order.InfluencerProfileID, &author.ID, "order", order.ID, models.ActionOrderReviewed, map[string]any{
			"rating": req.Rating,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(review, author.Name), nil
}

func (s *ReviewService) ListForProfile(db *gorm.DB, targetProfileID, cursorToken string, limit int) ([]dto.ReviewResponse, int64, float64, string, error) {
	cursor, err := pagination.Decode(cursorToken)
	if err != nil {
		return nil, 0, 0, "", err
	}
	limit = pagination.ClampLimit(limit)

	reviews, total, err := s.reviewRepo.ListByTarget(db, targetProfileID, cursor, limit)
	if err != nil {
		return nil, 0, 0, "", err
	}

	out := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, *s.toResponse(&reviews[i], reviews[i].Author.Name))
	}

	rating, err := s.reviewRepo.AverageRating(db, targetProfileID)
	if err != nil {
		return nil, 0, 0, "", err
	}

	next := ""
	if len(reviews) == limit {
		last := reviews[len(reviews)-1]
		next = pagination.Encode(last.CreatedAt, last.ID)
	}
	return out, total, rating, next, nil
}

func (s *ReviewService) toResponse(review *models.Review, authorName string) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:              review.ID,
		OrderID:         review.OrderID,
		AuthorProfileID: review.AuthorProfileID,
		AuthorName:      authorName,
		TargetProfileID: review.TargetProfileID,
		Rating:          review.Rating,
		ReviewText:      review.ReviewText,
		CreatedAt:       review.CreatedAt,
	}
}
