package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sanatech/marketing-api/internal/config"
	"github.com/sanatech/marketing-api/internal/database"
	"github.com/sanatech/marketing-api/internal/handler"
	"github.com/sanatech/marketing-api/internal/middleware"
	"github.com/sanatech/marketing-api/internal/models"
	"github.com/sanatech/marketing-api/internal/observability"
	"github.com/sanatech/marketing-api/internal/repository"
	"github.com/sanatech/marketing-api/internal/router"
	"github.com/sanatech/marketing-api/internal/service"
	cloud "github.com/sanatech/marketing-api/pkg/cloudinary"
	"github.com/sanatech/marketing-api/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Admin{}, &models.ContactSubmission{}, &models.Content{}, &models.UploadRecord{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient := database.OptionalRedis(cfg.RedisURL, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	observability.RegisterMetrics()

	validate := validator.New(validator.WithRequiredStructEnabled())

	contactRepo := repository.NewContactRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	contentRepo := repository.NewContentRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	sender := buildSender(cfg, logger)
	contactService := service.NewContactService(contactRepo, sender, validate, service.NotificationConfig{
		From:  cfg.EmailFrom,
		Inbox: cfg.ContactInbox,
	}, logger)
	adminContactService := service.NewAdminContactService(contactRepo, logger)
	authService := service.NewAuthService(adminRepo, validate, cfg.JWTSecret, cfg.JWTTTL, logger)
	dashboardService := service.NewDashboardService(contactRepo, contentRepo, redisClient, cfg.DashboardCacheTTL, logger)
	contentService := service.NewContentService(contentRepo, validate, logger)
	seedService := service.NewSeedService(contentRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	deps := router.Dependencies{
		ContactHandler:      handler.NewContactHandler(contactService, cfg.IsDevelopment(), logger),
		AdminContactHandler: handler.NewAdminContactHandler(adminContactService, logger),
		AdminHandler:        handler.NewAdminHandler(authService, dashboardService, logger),
		ContentHandler:      handler.NewContentHandler(contentService, dashboardService, logger),
		SeedHandler:         handler.NewSeedHandler(seedService, logger),
		AdminMiddleware:     middleware.AdminProtected(cfg.JWTSecret, adminRepo),
	}

	if cfg.CloudinaryCloudName != "" {
		uploader, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploadService := service.NewUploadService(uploader, uploadRepo, cfg.UploadMaxMB, logger)
		deps.UploadHandler = handler.NewUploadHandler(uploadService, logger)
	} else {
		logger.Warn().Msg("cloudinary not configured, upload routes disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSOrigins})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// buildSender picks the SMTP transport when configured, otherwise falls
// back to a log-only sender so local development works without a relay.
func buildSender(cfg config.Config, logger zerolog.Logger) mailer.Sender {
	if cfg.SMTPHost == "" && cfg.IsDevelopment() {
		return mailer.NewLogSender(logger)
	}
	return mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	}, logger)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
