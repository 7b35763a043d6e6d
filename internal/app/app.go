package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/relense/influencer-markt-sub001/database"
	"github.com/relense/influencer-markt-sub001/internal/auth"
	"github.com/relense/influencer-markt-sub001/internal/config"
	"github.com/relense/influencer-markt-sub001/internal/email"
	"github.com/relense/influencer-markt-sub001/internal/handlers"
	"github.com/relense/influencer-markt-sub001/internal/logger"
	"github.com/relense/influencer-markt-sub001/internal/middleware"
	"github.com/relense/influencer-markt-sub001/internal/models"
	"github.com/relense/influencer-markt-sub001/internal/payments"
	"github.com/relense/influencer-markt-sub001/internal/routes"
	"github.com/relense/influencer-markt-sub001/internal/services"
	"github.com/relense/influencer-markt-sub001/internal/validator"
	"github.com/relense/influencer-markt-sub001/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.InitJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx, cfg, gormDB)

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := services.NewServiceContainer(cfg, payments.NewLoggingGateway())
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.Auth),
		ProfileHandler:      handlers.NewProfileHandler(baseHandler, container.Profile, container.Review),
		JobHandler:          handlers.NewJobHandler(baseHandler, container.Job),
		OrderHandler:        handlers.NewOrderHandler(baseHandler, container.Order, container.Review),
		PayoutHandler:       handlers.NewPayoutHandler(baseHandler, container.Payout),
		MessageHandler:      handlers.NewMessageHandler(baseHandler, container.Message),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.Notification),
		WebhookHandler:      handlers.NewWebhookHandler(baseHandler, container.Order),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func startWorkers(ctx context.Context, cfg *config.Config, db *gorm.DB) {
	sender := email.NewSender(cfg)
	workers.NewNotificationWorker(db, sender).Start(ctx)
	workers.NewPayoutWorker(db, payments.NewLoggingGateway()).Start(ctx)
	logger.Info("Background workers started")
}

// seedFirstAdmin creates the bootstrap admin account (user + profile) when the
// configured email does not exist yet.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var adminUser models.User
		result := tx.Where("email = ?", adminEmail).First(&adminUser)
		if result.Error == nil {
			logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", result.Error)
		}

		logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		newAdmin := &models.User{
			Email:        adminEmail,
			PasswordHash: string(hashedPassword),
			Role:         models.UserRoleAdmin,
		}
		if err := tx.Create(newAdmin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		profile := &models.Profile{
			UserID: newAdmin.ID,
			Name:   "Administrator",
		}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create admin profile: %w", err)
		}
		return nil
	})
}
