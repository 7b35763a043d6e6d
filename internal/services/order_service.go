package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/config"
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/payments"
	"github.com/relense/influencer-markt-sub001/internal/repositories"
	"github.com/relense/influencer-markt-sub001/internal/services/dto"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
	"github.com/relense/influencer-markt-sub001/pkg/pagination"
)

// OrderService drives the order lifecycle. Every status change is validated
// against models.OrderTransitions; there is no other path to mutate a status.
type OrderService struct {
	cfg             *config.Config
	orderRepo       *repositories.OrderRepository
	jobRepo         *repositories.JobRepository
	applicationRepo *repositories.ApplicationRepository
	profileRepo     *repositories.ProfileRepository
	invoiceRepo     *repositories.InvoiceRepository
	notifications   *NotificationService
	intents         payments.IntentCreator
}

func NewOrderService(
	cfg *config.Config,
	orderRepo *repositories.OrderRepository,
	jobRepo *repositories.JobRepository,
	applicationRepo *repositories.ApplicationRepository,
	profileRepo *repositories.ProfileRepository,
	invoiceRepo *repositories.InvoiceRepository,
	notifications *NotificationService,
	intents payments.IntentCreator,
) *OrderService {
	return &OrderService{
		cfg:             cfg,
		orderRepo:       orderRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		profileRepo:     profileRepo,
		invoiceRepo:     invoiceRepo,
		notifications:   notifications,
		intents:         intents,
	}
}

// CreateOrder opens an order in awaiting. When the order originates from a
// posting, the influencer must sit in the accepted bucket and is moved to
// sent in the same transaction that creates the order.
func (s *OrderService) CreateOrder(db *gorm.DB, buyerUserID string, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	buyer, err := requireProfile(db, s.profileRepo, buyerUserID)
	if err != nil {
		return nil, err
	}
	if req.InfluencerProfileID == buyer.ID {
		return nil, apperrors.ErrInvalidOperation("order", "cannot open an order with yourself")
	}
	if _, err := s.profileRepo.FindByID(db, req.InfluencerProfileID); err != nil {
		return nil, wrapNotFound(err)
	}

	taxCents := req.BasePriceCents * s.cfg.Billing.TaxRateBps / 10000

	order := &models.Order{
		BuyerProfileID:        buyer.ID,
		InfluencerProfileID:   req.InfluencerProfileID,
		JobID:                 req.JobID,
		Platform:              req.Platform,
		BasePriceCents:        req.BasePriceCents,
		TaxCents:              taxCents,
		TotalCents:            req.BasePriceCents + taxCents,
		Details:               req.Details,
		OrderStatusID:         models.OrderStatusAwaiting,
		RequestedDeliveryDate: req.RequestedDeliveryDate,
	}
	if order.ContentQuantities, err = toJSON(req.ContentQuantities); err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if req.JobID != nil {
			job, err := s.jobRepo.FindByID(tx, *req.JobID)
			if err != nil {
				return wrapNotFound(err)
			}
			if job.ProfileID != buyer.ID {
				return apperrors.ErrInsufficientPermissions
			}

			if err := s.orderRepo.Create(tx, order); err != nil {
				return err
			}

			application, err := s.applicationRepo.FindByJobAndProfile(tx, job.ID, req.InfluencerProfileID)
			if err != nil {
				return wrapNotFound(err)
			}
			if application.Bucket != models.BucketAccepted {
				return apperrors.ErrNotInBucket
			}
			application.Bucket = models.BucketSent
			application.OrderID = &order.ID
			if err := s.applicationRepo.Save(tx, application); err != nil {
				return err
			}
		} else if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}

		return s.notifications.EmitTx(tx, order.InfluencerProfileID, &buyer.ID, "order", order.ID, models.ActionOrderCreated, map[string]any{
			"total_cents": order.TotalCents,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(db, order.ID, buyerUserID)
}

func (s *OrderService) GetOrder(db *gorm.DB, orderID, userID string) (*dto.OrderResponse, error) {
	order, _, err := s.loadOrderForParty(db, orderID, userID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order)
}

func (s *OrderService) ListOrders(db *gorm.DB, userID string, req *dto.ListOrdersRequest) ([]dto.OrderResponse, int64, string, error) {
	profile, err := requireProfile(db, s.profileRepo, userID)
	if err != nil {
		return nil, 0, "", err
	}

	cursor, err := pagination.Decode(req.Cursor)
	if err != nil {
		return nil, 0, "", err
	}
	limit := pagination.ClampLimit(req.Limit)

	orders, total, err := s.orderRepo.ListByProfile(db, profile.ID, models.OrderStatus(req.Status), cursor, limit)
	if err != nil {
		return nil, 0, "", err
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp, err := toOrderResponse(&orders[i])
		if err != nil {
			return nil, 0, "", err
		}
		out = append(out, *resp)
	}

	next := ""
	if len(orders) == limit {
		last := orders[len(orders)-1]
		next = pagination.Encode(last.CreatedAt, last.ID)
	}
	return out, total, next, nil
}

// AcceptOrder: influencer takes the engagement, awaiting -> accepted.
func (s *OrderService) AcceptOrder(db *gorm.DB, orderID, userID string) (*dto.OrderResponse, error) {
	order, actor, err := s.loadOrderForParty(db, orderID, userID)
	if err != nil {
		return nil, err
	}
	if actor.ID != order.InfluencerProfileID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return s.applyTransition(db, order, actor, models.OrderStatusAccepted, order.BuyerProfileID, models.ActionOrderAccepted)
}

// RejectOrder: influencer declines, awaiting -> rejected (terminal).
func (s *OrderService) RejectOrder(db *gorm.DB, orderID, userID string) (*dto.OrderResponse, error) {
	order, actor, err := s.loadOrderForParty(db, orderID, userID)
	if err != nil {
		return nil, err
	}
	if actor.ID != order.InfluencerProfileID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return s.applyTransition(db, order, actor, models.OrderStatusRejected, order.BuyerProfileID, models.ActionOrderRejected)
}

// CancelOrder: either party may cancel wherever the transition table allows.
func (s *OrderService) CancelOrder(db *gorm.DB, orderID, userID string) (*dto.OrderResponse, error) {
	order, actor, err := s.loadOrderForParty(db, orderID, userID)
	if err != nil {
		return nil, err
	}
	return s.applyTransition(db, order, actor, models.OrderStatusCanceled, otherParty(order, actor.ID), models.ActionOrderCanceled)
}

// SubmitPayment moves accepted -> processing-payment and opens a payment
// intent with the processor. The order advances to in-progress only when the
// webhook confirms the charge.
func (s *OrderService) SubmitPayment(db *gorm.DB, orderID, userID string) (*dto.OrderResponse, string, error) {
	order, actor, err := s.loadOrderForParty(db, orderID, userID)
	if err != nil {
		return nil, "", err
	}
	if actor.ID != order.BuyerProfileID {
		return nil, "", apperrors.ErrInsufficientPermissions
	}

	resp, err := s.applyTransition(db, order, actor, models.OrderStatusProcessingPayment, order.InfluencerProfileID, models.ActionOrderPaymentPending)
	if err != nil {
		return nil, "", err
	}

	intentID, err := s.intents.CreateIntent(order.ID, order.TotalCents)
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.CodeExternalServiceError, "payment", "failed to create payment intent", 502)
	}
	return resp, intentID, nil
}

// HandlePaymentWebhook is the processor callback. The charged amount must
// match the order total exactly; a paid order moves to in-progress.
func (s *OrderService) HandlePaymentWebhook(db *gorm.DB, req *dto.PaymentWebhookRequest) error {
	order, err := s.orderRepo.FindByID(db, req.OrderID)
	if err != nil {
		return wrapNotFound(err)
	}
	if req.AmountCents != order.TotalCents {
		return apperrors.ErrConflict(
			fmt.Errorf("charged %d cents against a %d cent order", req.AmountCents, order.TotalCents),
			"payment", "Charged amount does not match the order total")
	}
	if !order.OrderStatusID.CanTransitionTo(models.OrderStatusInProgress) {
		return apperrors.ErrInvalidOrderTransition
	}

	order.OrderStatusID = models.OrderStatusInProgress
	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Save(tx, order); err != nil {
			return err
		}
		if err := s.notifications.EmitTx(tx, order.InfluencerProfileID, nil, "order", order.ID, models.ActionOrderInProgress, nil); err != nil {
			return err
		}
		return s.notifications.EmitTx(tx, order.BuyerProfileID, nil, "order", order.ID, models.ActionOrderInProgress, nil)
	})
}

// MarkDelivered: influencer flags the work as done, in-progress -> delivered.
func (s *OrderService) MarkDelivered(db *gorm.DB, orderID, userID string) (*dto.OrderResponse, error) {
	order, actor, err := s.loadOrderForParty(db, orderID, userID)
	if err != nil {
		return nil, err
	}
	if actor.ID != order.InfluencerProfileID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	now := time.Now().UTC()
	order.DateItWasDelivered = &now
	return s.applyTransition(db, order, actor, models.OrderStatusDelivered, order.BuyerProfileID, models.ActionOrderDelivered)
}

// ConfirmOrder: buyer approves the delivery. The status change and the
// invoice snapshot commit in one transaction; the counterparty notification
// row rides along and is delivered asynchronously.
func (s *OrderService) ConfirmOrder(db *gorm.DB, orderID, userID string) (*dto.OrderResponse, error) {
	order, actor, err := s.loadOrderForParty(db, orderID, userID)
	if err != nil {
		return nil, err
	}
	if actor.ID != order.BuyerProfileID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if err := s.confirmTx(db, order, &actor.ID); err != nil {
		return nil, err
	}
	return toOrderResponse(order)
}

// OpenDispute: buyer contests the delivery, delivered -> disputed.
func (s *OrderService) OpenDispute(db *gorm.DB, orderID, userID string) (*dto.OrderResponse, error) {
	order, actor, err := s.loadOrderForParty(db, orderID, userID)
	if err != nil {
		return nil, err
	}
	if actor.ID != order.BuyerProfileID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return s.applyTransition(db, order, actor, models.OrderStatusDisputed, order.InfluencerProfileID, models.ActionOrderDisputed)
}

// ResolveDispute is the admin arbitration step. A dispute settles to
// confirmed (influencer gets paid), canceled, or on-hold for further review.
func (s *OrderService) ResolveDispute(db *gorm.DB, orderID string, req *dto.ResolveDisputeRequest) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(db, orderID)
	if err != nil {
		return nil, wrapNotFound(err)
	}

	switch req.Resolution {
	case "confirmed":
		if err := s.confirmTx(db, order, nil); err != nil {
			return nil, err
		}
	case "canceled":
		if !order.OrderStatusID.CanTransitionTo(models.OrderStatusCanceled) {
			return nil, apperrors.ErrInvalidOrderTransition
		}
		order.OrderStatusID = models.OrderStatusCanceled
		if err := s.orderRepo.Save(db, order); err != nil {
			return nil, err
		}
		s.notifications.Emit(db, order.BuyerProfileID, nil, "order", order.ID, models.ActionOrderCanceled, nil)
		s.notifications.Emit(db, order.InfluencerProfileID, nil, "order", order.ID, models.ActionOrderCanceled, nil)
	case "on_hold":
		if !order.OrderStatusID.CanTransitionTo(models.OrderStatusOnHold) {
			return nil, apperrors.ErrInvalidOrderTransition
		}
		order.OrderStatusID = models.OrderStatusOnHold
		if err := s.orderRepo.Save(db, order); err != nil {
			return nil, err
		}
		s.notifications.Emit(db, order.BuyerProfileID, nil, "order", order.ID, models.ActionOrderOnHold, nil)
		s.notifications.Emit(db, order.InfluencerProfileID, nil, "order", order.ID, models.ActionOrderOnHold, nil)
	}
	return toOrderResponse(order)
}

// UpdateDeliveryDate is only allowed pre-delivery.
func (s *OrderService) UpdateDeliveryDate(db *gorm.DB, orderID, userID string, req *dto.UpdateDeliveryDateRequest) (*dto.OrderResponse, error) {
	order, _, err := s.loadOrderForParty(db, orderID, userID)
	if err != nil {
		return nil, err
	}
	if !order.OrderStatusID.DeliveryDateEditable() {
		return nil, apperrors.ErrOrderNotEditable
	}

	date := req.RequestedDeliveryDate
	order.RequestedDeliveryDate = &date
	if err := s.orderRepo.Save(db, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order)
}

// confirmTx performs the confirmation transaction: transition to confirmed,
// cut the invoice snapshot from the configured rates, queue the notification.
func (s *OrderService) confirmTx(db *gorm.DB, order *models.Order, actorProfileID *string) error {
	if !order.OrderStatusID.CanTransitionTo(models.OrderStatusConfirmed) {
		return apperrors.ErrInvalidOrderTransition
	}
	order.OrderStatusID = models.OrderStatusConfirmed

	serviceFeeCents := order.BasePriceCents * s.cfg.Billing.ServiceFeeBps / 10000
	invoice := &models.Invoice{
		OrderID:         order.ID,
		ProfileID:       order.InfluencerProfileID,
		SaleBaseCents:   order.BasePriceCents,
		TaxCents:        order.TaxCents,
		TaxRateBps:      s.cfg.Billing.TaxRateBps,
		SaleTotalCents:  order.TotalCents,
		ServiceFeeCents: serviceFeeCents,
		ServiceFeeBps:   s.cfg.Billing.ServiceFeeBps,
		NetPayoutCents:  order.BasePriceCents - serviceFeeCents,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Save(tx, order); err != nil {
			return err
		}
		if err := s.invoiceRepo.Create(tx, invoice); err != nil {
			return err
		}
		return s.notifications.EmitTx(tx, order.InfluencerProfileID, actorProfileID, "order", order.ID, models.ActionOrderConfirmed, map[string]any{
			"net_payout_cents": invoice.NetPayoutCents,
		})
	})
}

// applyTransition validates the move against the transition table, persists
// the order and notifies the counterparty in one transaction.
func (s *OrderService) applyTransition(db *gorm.DB, order *models.Order, actor *models.Profile, to models.OrderStatus, notifyProfileID, action string) (*dto.OrderResponse, error) {
	if !order.OrderStatusID.CanTransitionTo(to) {
		return nil, apperrors.ErrInvalidOrderTransition
	}
	order.OrderStatusID = to

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Save(tx, order); err != nil {
			return err
		}
		return s.notifications.EmitTx(tx, notifyProfileID, &actor.ID, "order", order.ID, action, nil)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order)
}

func (s *OrderService) loadOrderForParty(db *gorm.DB, orderID, userID string) (*models.Order, *models.Profile, error) {
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

func otherParty(order *models.Order, profileID string) string {
	if order.BuyerProfileID == profileID {
		return order.InfluencerProfileID
	}
	return order.BuyerProfileID
}

func toOrderResponse(order *models.Order) (*dto.OrderResponse, error) {
	resp := &dto.OrderResponse{
		ID:                    order.ID,
		BuyerProfileID:        order.BuyerProfileID,
		BuyerName:             order.Buyer.Name,
		InfluencerProfileID:   order.InfluencerProfileID,
		InfluencerName:        order.Influencer.Name,
		JobID:                 order.JobID,
		Platform:              order.Platform,
		BasePriceCents:        order.BasePriceCents,
		TaxCents:              order.TaxCents,
		TotalCents:            order.TotalCents,
		Details:               order.Details,
		OrderStatusID:         int(order.OrderStatusID),
		OrderStatus:           order.OrderStatusID.String(),
		RequestedDeliveryDate: order.RequestedDeliveryDate,
		DateItWasDelivered:    order.DateItWasDelivered,
		CreatedAt:             order.CreatedAt,
	}
	if err := fromJSON(order.ContentQuantities, &resp.ContentQuantities); err != nil {
		return nil, err
	}
	return resp, nil
}
