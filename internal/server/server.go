// Package server assembles the API: services, handlers, middleware and the
// background workers that run next to the HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"

	_ "github.com/sinfini-marketing/sinfini-web-be/docs"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/analytics"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/audit"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/auth"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/chatbot"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/email"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/export"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/jobs"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/llm"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/handlers"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/repositories"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/services"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/config"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/utils"
)

// Models lists every table the API owns, in dependency order
func Models() []interface{} {
	return []interface{}{
		&auth.User{},
		&audit.AuditLog{},
		&jobs.Job{},
		&models.Product{},
		&models.BlogPost{},
		&models.GalleryItem{},
		&models.ChatbotSettings{},
		&models.ChatLog{},
		&models.ContactMessage{},
	}
}

type Server struct {
	App *fiber.App

	cfg         *config.Config
	authService *auth.Service
	jobService  *jobs.Service
	scheduler   *jobs.Scheduler
	mailer      *email.Service
}

// New wires the API on top of db. Nothing runs until Start and Listen.
func New(cfg *config.Config, db *gorm.DB) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	auditService := audit.NewService(db)
	authService := auth.NewService(db, cfg.JWTSecret, cfg.JWTExpiresHours)

	var llmService *llm.Service
	if cfg.LLMFallback {
		llmService = llm.NewService(&llm.ProviderConfig{
			OpenAIKey: cfg.OpenAIKey,
			BaseURL:   cfg.OpenAIBaseURL,
			Model:     cfg.LLMModel,
		})
	}

	mailer, err := email.NewServiceFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure email: %w", err)
	}

	jobService := jobs.NewService(db)
	var notifier *jobs.Service
	if mailer != nil {
		notifier = jobService
		jobService.RegisterWorker(jobs.WorkerConfig{
			Queue:        jobs.QueueNotifications,
			Concurrency:  1,
			PollInterval: 5 * time.Second,
			Timeout:      30 * time.Second,
		}, services.ContactNotificationHandler(mailer))
	}

	productRepo := repositories.NewProductRepo(db)
	contactRepo := repositories.NewContactRepo(db)

	chatbotService := services.NewChatbotService(
		repositories.NewChatbotRepo(db),
		chatbot.NewMatcher(cfg.ChatbotFallback),
		llmService,
		auditService,
		cfg.EmailFromName,
	)

	cms := &handlers.Handlers{
		Products: handlers.NewProductHandler(services.NewProductService(productRepo, auditService, cfg.SiteURL)),
		Blog:     handlers.NewBlogHandler(services.NewBlogService(repositories.NewBlogRepo(db), auditService)),
		Gallery:  handlers.NewGalleryHandler(services.NewGalleryService(repositories.NewGalleryRepo(db), auditService)),
		Chatbot:  handlers.NewChatbotHandler(chatbotService, cfg.ChatbotFAQEncoding),
		Contact:  handlers.NewContactHandler(services.NewContactService(contactRepo, notifier, auditService)),
		Admin: handlers.NewAdminHandler(
			services.NewDashboardService(analytics.NewAggregator(db)),
			services.NewExportService(productRepo, contactRepo, export.NewService()),
			auditService,
		),
	}

	scheduler := jobs.NewScheduler()
	err = services.RegisterMaintenance(scheduler, cfg.MaintenanceCron, services.RetentionPolicy{
		AuditDays:   cfg.AuditRetentionDays,
		ChatLogDays: cfg.ChatLogRetentionDays,
	}, auditService, chatbotService, jobService)
	if err != nil {
		return nil, fmt.Errorf("invalid MAINTENANCE_CRON: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Sinfini Web API",
		ErrorHandler: errorHandler,
		BodyLimit:    2 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(utils.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", handlers.NewHealthHandler(db).GetHealth)

	api := app.Group("/api")
	auth.NewHandler(authService, auditService).RegisterRoutes(api)
	cms.RegisterRoutes(api, auth.AuthMiddleware(authService), handlers.RateLimit{
		Max:        cfg.RateLimitPerMinute,
		Expiration: time.Minute,
	})

	utils.LogInfo("API configured", map[string]interface{}{
		"llm_provider":   llmService.GetProviderName(),
		"email_provider": mailer.GetProviderName(),
		"faq_encoding":   cfg.ChatbotFAQEncoding,
	})

	return &Server{
		App:         app,
		cfg:         cfg,
		authService: authService,
		jobService:  jobService,
		scheduler:   scheduler,
		mailer:      mailer,
	}, nil
}

// AuthService is exposed for seeding
func (s *Server) AuthService() *auth.Service {
	return s.authService
}

// Start launches the notification worker and the maintenance scheduler
func (s *Server) Start(ctx context.Context) error {
	if s.mailer != nil {
		if err := s.jobService.StartWorkers(ctx); err != nil {
			return fmt.Errorf("failed to start workers: %w", err)
		}
	}
	s.scheduler.Start()
	return nil
}

// Listen blocks serving HTTP on the configured port
func (s *Server) Listen() error {
	return s.App.Listen(":" + s.cfg.Port)
}

// Shutdown stops accepting requests, then stops the background work
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.App.ShutdownWithContext(ctx)
	s.jobService.StopWorkers()
	s.scheduler.Stop()
	return err
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		utils.LogError("Unhandled error", err, map[string]interface{}{
			"path":       c.Path(),
			"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
		})
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}
