package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/trudransh/kpa-formsdb/internal/config"
	"github.com/trudransh/kpa-formsdb/internal/database"
	"github.com/trudransh/kpa-formsdb/internal/handlers"
	"github.com/trudransh/kpa-formsdb/internal/middleware"
	"github.com/trudransh/kpa-formsdb/internal/services"
	"github.com/trudransh/kpa-formsdb/internal/types"

	_ "github.com/trudransh/kpa-formsdb/docs/api" // Swagger docs
)

// @title KPA Form Data API
// @version 1.0.0
// @description Form data management backend with phone-number authentication and KPA inspection forms

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Optionally create the default user
	if err := database.Seed(db, cfg); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Auth wiring
	tokens := services.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	auth := services.NewAuthService(db, tokens, cfg.BcryptCost)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())
	app.Use(middleware.VersionMiddleware())

	// Prometheus metrics
	prometheus := fiberprometheus.New("kpa_formsdb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	rootHandler := &handlers.RootHandler{Cfg: cfg, DB: db}
	authHandler := &handlers.AuthHandler{Auth: auth}
	formHandler := &handlers.FormDataHandler{DB: db}
	kpaHandler := &handlers.KPAFormsHandler{DB: db}

	// Status routes
	app.Get("/", rootHandler.Root)
	app.Get("/health", rootHandler.Health)

	// Authentication routes
	v1 := app.Group("/v1")
	v1.Post("/auth/login", authHandler.Login)
	v1.Post("/auth/register", authHandler.Register)

	// Generic form data routes, all behind bearer auth
	requireUser := middleware.RequireUser(auth)
	v1.Post("/form-data", requireUser, formHandler.CreateFormData)
	v1.Get("/form-data", requireUser, formHandler.ListFormData)
	v1.Get("/form-data/:id", requireUser, formHandler.GetFormData)
	v1.Put("/form-data/:id", requireUser, formHandler.UpdateFormData)
	v1.Delete("/form-data/:id", requireUser, formHandler.DeleteFormData)

	// KPA form routes. These are open per the reference access policy; add
	// requireUser here to harden mutating routes.
	forms := app.Group("/api/forms")
	forms.Post("/wheel-specifications", kpaHandler.CreateWheelSpecification)
	forms.Get("/wheel-specifications", kpaHandler.ListWheelSpecifications)
	forms.Post("/bogie-checksheet", kpaHandler.CreateBogieChecksheet)
	forms.Get("/bogie-checksheet", kpaHandler.ListBogieChecksheets)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Middleware-raised errors carry their own code and type
	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}

	// Never leak internals on unexpected failures
	if code == fiber.StatusInternalServerError {
		log.Printf("Internal error on %s: %v", c.OriginalURL(), err)
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
