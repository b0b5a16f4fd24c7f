package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"abhinav/interview-coach/internal/config"
	"abhinav/interview-coach/internal/dsa"
	"abhinav/interview-coach/internal/handlers"
	"abhinav/interview-coach/internal/llm"
	"abhinav/interview-coach/internal/repositories"
	"abhinav/interview-coach/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	reportRepo := repositories.NewReportRepository(db)
	sessionStore := repositories.NewDSASessionRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	resumeParser := services.NewResumeParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini gateway with the configured retry budget
	geminiGateway, err := llm.NewGeminiGateway(cfg.Gemini.APIKey, cfg.Worker.RetryInitialDelay)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini gateway: %v", err)
	}
	gateway := llm.NewRetryGateway(geminiGateway, cfg.Worker.RetryMaxAttempts)
	log.Println("✅ Gemini gateway initialized successfully")

	// Initialize the rubric knowledge base
	knowledge, err := services.NewKnowledgeService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		gateway,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize knowledge base: %v", err)
	}

	if err := knowledge.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize rubric collection: %v", err)
	}
	log.Println("✅ Knowledge base initialized successfully")

	// Initialize DSA engine
	dsaEngine := dsa.NewEngine(gateway, sessionStore)

	// Initialize finalizer and worker
	finalizer := services.NewFinalizerService(reportRepo, sessionStore, gateway)
	worker := services.NewWorker(reportRepo, finalizer, cfg.Worker.Concurrency)
	log.Println("✅ Worker initialized successfully")

	ctx := context.Background()
	worker.Start(ctx)

	// Initialize handlers
	resumeHandler := handlers.NewResumeHandler(reportRepo, storageService, resumeParser)
	interviewHandler := handlers.NewInterviewHandler(reportRepo, gateway, knowledge)
	dsaHandler := handlers.NewDSAHandler(dsaEngine, reportRepo)
	reportHandler := handlers.NewReportHandler(reportRepo, worker)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview Coach API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/resume", resumeHandler.HandleUpload)

	api.Post("/interview/start", interviewHandler.HandleStart)
	api.Post("/interview/message", interviewHandler.HandleMessage)
	api.Post("/interview/feedback", interviewHandler.HandleFeedback)

	api.Post("/dsa/question", dsaHandler.HandleQuestion)
	api.Post("/dsa/submit", dsaHandler.HandleSubmit)
	api.Post("/dsa/reply", dsaHandler.HandleReply)
	api.Get("/dsa/report/:session_id", dsaHandler.HandleReport)

	api.Post("/report/:id/finalize", reportHandler.HandleFinalize)
	api.Get("/report/:id", reportHandler.HandleGet)
	api.Get("/reports", reportHandler.HandleList)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview Coach API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/resume",
				"POST /api/v1/interview/start",
				"POST /api/v1/interview/message",
				"POST /api/v1/interview/feedback",
				"POST /api/v1/dsa/question",
				"POST /api/v1/dsa/submit",
				"POST /api/v1/dsa/reply",
				"GET /api/v1/dsa/report/:session_id",
				"POST /api/v1/report/:id/finalize",
				"GET /api/v1/report/:id",
				"GET /api/v1/reports",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
