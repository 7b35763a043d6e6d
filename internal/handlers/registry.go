package handlers

// AppHandlers carries every handler so the routes package can register them
// in one place.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	JobHandler          *JobHandler
	OrderHandler        *OrderHandler
	PayoutHandler       *PayoutHandler
	MessageHandler      *MessageHandler
	NotificationHandler *NotificationHandler
	WebhookHandler      *WebhookHandler
}
