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
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/workers-united/verify-api/internal/config"
	"github.com/workers-united/verify-api/internal/database"
	"github.com/workers-united/verify-api/internal/handler"
	"github.com/workers-united/verify-api/internal/middleware"
	"github.com/workers-united/verify-api/internal/models"
	"github.com/workers-united/verify-api/internal/repository"
	"github.com/workers-united/verify-api/internal/router"
	"github.com/workers-united/verify-api/internal/service"
	"github.com/workers-united/verify-api/pkg/ai"
	"github.com/workers-united/verify-api/pkg/brevo"
	cloud "github.com/workers-united/verify-api/pkg/cloudinary"
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

	if err := db.AutoMigrate(&models.Candidate{}, &models.Document{}, &models.DocumentRequirement{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("no redis url configured, admin caching and approval pub/sub disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	// Nil verifier switches the pipeline into degraded mode: uploads are
	// accepted and flagged for manual review.
	var verifier ai.DocumentVerifier
	if cfg.AIConfigured() {
		visionVerifier, err := ai.NewVisionVerifier(ai.VisionConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
		if err != nil {
			log.Fatalf("failed to create vision verifier: %v", err)
		}
		verifier = visionVerifier
	} else {
		logger.Warn().Msg("no openai api key configured, running in manual-review mode")
	}

	var notifier service.ApprovalNotifier
	if cfg.BrevoAPIKey != "" && cfg.BrevoSenderEmail != "" {
		mailer, err := brevo.New(brevo.Config{
			APIKey:      cfg.BrevoAPIKey,
			SenderEmail: cfg.BrevoSenderEmail,
			SenderName:  cfg.BrevoSenderName,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create brevo client: %v", err)
		}
		notifier = service.NewEmailApprovalNotifier(mailer, logger)
	} else {
		notifier = service.NewLogApprovalNotifier(logger)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	candidateRepo := repository.NewCandidateRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	requirementRepo := repository.NewRequirementRepository(db)

	publisher := service.NewApprovalPublisher(redisClient, natsConn, cfg.EventChannelBase, logger)
	aggregator := service.NewStatusAggregator(requirementRepo, candidateRepo, notifier, publisher, logger)
	verificationService := service.NewVerificationService(candidateRepo, documentRepo, aggregator, uploader, verifier, cfg.MaxUploadMB, logger)
	candidateService := service.NewCandidateService(candidateRepo, validate, logger)
	adminService := service.NewAdminDocumentService(candidateRepo, documentRepo, requirementRepo, aggregator, verifier, redisClient, cfg.AdminCacheTTL, logger)

	verifyHandler := handler.NewVerifyDocumentHandler(verificationService, logger)
	candidateHandler := handler.NewCandidateHandler(candidateService, logger)
	adminHandler := handler.NewAdminDocumentHandler(adminService, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.MaxUploadMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		VerifyDocumentHandler: verifyHandler,
		CandidateHandler:      candidateHandler,
		AdminDocumentHandler:  adminHandler,
		JWTMiddleware:         middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
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
