package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/internal/config"
	"github.com/relense/influencer-markt-sub001/internal/payments"
	"github.com/relense/influencer-markt-sub001/internal/repositories"
	"github.com/relense/influencer-markt-sub001/pkg/apperrors"
)

// ServiceContainer wires every service with its repositories so the app layer
// can hand them to handlers in one piece.
type ServiceContainer struct {
	Auth         *AuthService
	Profile      *ProfileService
	Job          *JobService
	Order        *OrderService
	Review       *ReviewService
	Payout       *PayoutService
	Message      *MessageService
	Notification *NotificationService
}

func NewServiceContainer(cfg *config.Config, intents payments.IntentCreator) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	jobRepo := repositories.NewJobRepository()
	applicationRepo := repositories.NewApplicationRepository()
	orderRepo := repositories.NewOrderRepository()
	reviewRepo := repositories.NewReviewRepository()
	invoiceRepo := repositories.NewInvoiceRepository()
	payoutRepo := repositories.NewPayoutRepository()
	messageRepo := repositories.NewMessageRepository()
	notificationRepo := repositories.NewNotificationRepository()

	notificationService := NewNotificationService(notificationRepo)
	reviewService := NewReviewService(reviewRepo, orderRepo, invoiceRepo, payoutRepo, profileRepo, notificationService)

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo, profileRepo),
		Profile:      NewProfileService(profileRepo, userRepo, reviewRepo),
		Job:          NewJobService(jobRepo, applicationRepo, profileRepo, notificationService),
		Order:        NewOrderService(cfg, orderRepo, jobRepo, applicationRepo, profileRepo, invoiceRepo, notificationService, intents),
		Review:       reviewService,
		Payout:       NewPayoutService(payoutRepo, invoiceRepo, profileRepo),
		Message:      NewMessageService(messageRepo, orderRepo, profileRepo, notificationService),
		Notification: notificationService,
	}
}

// wrapNotFound maps gorm's sentinel onto the API error space so handlers never
// see a raw record-not-found.
func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return err
}
