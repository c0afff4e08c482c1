package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/rajmohan-14/Travel-itinerary/database"
	"github.com/rajmohan-14/Travel-itinerary/internal/config"
	"github.com/rajmohan-14/Travel-itinerary/internal/handlers"
	"github.com/rajmohan-14/Travel-itinerary/internal/jobs"
	"github.com/rajmohan-14/Travel-itinerary/internal/middleware"
	"github.com/rajmohan-14/Travel-itinerary/internal/models"
	"github.com/rajmohan-14/Travel-itinerary/internal/routes"
	"github.com/rajmohan-14/Travel-itinerary/internal/services"
	"github.com/rajmohan-14/Travel-itinerary/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	log.Printf("🔍 OPENWEATHER_API configured: %v", cfg.Weather.APIKey != "")
	log.Printf("🔍 GEOAPIFY_API configured: %v", cfg.Places.APIKey != "")
	log.Printf("🔍 OPENROUTER_API_KEY configured: %v", cfg.AI.APIKey != "")

	// Initialize storage
	var store storage.Store

	if cfg.Server.UseMemoryStore {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		// Connect to database
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect(cfg.Database)

		// Run migrations
		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.User{},
			&models.UserOTP{},
			&models.Trip{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}
	storage.SetStore(store)

	// Session state lives in Redis when configured, memory otherwise
	var sessions services.SessionStore
	if cfg.Redis.Addr != "" {
		sessions = services.NewRedisSessionStore(cfg.Redis)
		log.Println("✅ Using Redis session store")
	} else {
		sessions = services.NewMemorySessionStore()
		log.Println("⚠️  Using in-memory session store")
	}

	// Initialize all services
	mailer := services.NewSMTPMailer(cfg.SMTP)
	otpService := services.NewOTPService(store)
	jwtManager := services.NewJWTManager(cfg.JWT)
	enricher := services.NewEnricher(
		services.NewWeatherClient(cfg.Weather),
		services.NewPlacesClient(cfg.Places),
		services.NewRoutingClient(cfg.Routing),
		services.NewAIClient(cfg.AI),
		store,
	)
	bookingService := services.NewBookingService(store, mailer)

	// Initialize and start the session cleanup job
	cleanupJob := jobs.NewCleanupJob(sessions)
	cleanupJob.Start()

	log.Println("✅ All services initialized")

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "TravelPlanner Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Handlers
	healthHandler := handlers.NewHealthHandler(store, storageType(cfg), fiber.Map{
		"weather": cfg.Weather.APIKey != "",
		"places":  cfg.Places.APIKey != "",
		"ai":      cfg.AI.APIKey != "",
		"mail":    cfg.SMTP.Username != "",
	})
	authHandler := handlers.NewAuthHandler(store, otpService, mailer, sessions, jwtManager)
	tripHandler := handlers.NewTripHandler(store, enricher)
	bookingHandler := handlers.NewBookingHandler(store, bookingService)

	routes.SetupRoutes(app, healthHandler, authHandler, tripHandler, bookingHandler,
		middleware.RequireAuth(jwtManager, sessions))

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		log.Println("⏹️  Stopping cleanup job...")
		cleanupJob.Stop()
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 TravelPlanner Backend starting on port %s", cfg.Server.Port)
	log.Printf("📊 Storage: %s", storageType(cfg))
	log.Printf("📬 Mail: %s", mailStatus(cfg))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + cfg.Server.Port))
}

func storageType(cfg *config.Config) string {
	if cfg.Server.UseMemoryStore {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func mailStatus(cfg *config.Config) string {
	if cfg.SMTP.Username == "" {
		return "Not configured"
	}
	return "Configured"
}
