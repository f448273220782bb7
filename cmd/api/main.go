package main

import (
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

	"jobfit/resume-analyzer/internal/config"
	"jobfit/resume-analyzer/internal/handlers"
	"jobfit/resume-analyzer/internal/repositories"
	"jobfit/resume-analyzer/internal/services"
	"jobfit/resume-analyzer/web"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize similarity index (optional)
	var similarityService services.SimilarityService
	if cfg.Qdrant.URL != "" {
		similarityService, err = services.NewSimilarityService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		if err := similarityService.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Similarity index initialized successfully")
	} else {
		similarityService = services.NewNopSimilarityService()
		log.Println("ℹ️ QDRANT_URL not set, similarity search disabled")
	}

	// Initialize analyzer
	analyzerService := services.NewAnalyzerService(
		analysisRepo,
		geminiService,
		similarityService,
		cfg.Analysis.Timeout,
		cfg.Analysis.RetryMaxAttempts,
		float32(cfg.Analysis.Temperature),
	)
	log.Println("✅ Analyzer service initialized")

	// Initialize Handlers
	analyzeHandler := handlers.NewAnalyzeHandler(analyzerService)
	resultHandler := handlers.NewResultHandler(analysisRepo, analyzerService)
	reportHandler := handlers.NewReportHandler(analysisRepo)
	extractHandler := handlers.NewExtractHandler(
		storageService,
		pdfParser,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app. Read/write timeouts must outlast the analysis
	// timeout since the analyze call blocks the request.
	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer API",
		ReadTimeout:  cfg.Analysis.Timeout + 30*time.Second,
		WriteTimeout: cfg.Analysis.Timeout + 30*time.Second,
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
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
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
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/extract", extractHandler.HandleExtract)
	api.Get("/analyses", resultHandler.HandleListAnalyses)
	api.Get("/analyses/:id", resultHandler.HandleGetResult)
	api.Get("/analyses/:id/similar", resultHandler.HandleFindSimilar)
	api.Get("/analyses/:id/report", reportHandler.HandleDownloadReport)

	// The single-page form
	app.Get("/", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(web.IndexHTML)
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
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
