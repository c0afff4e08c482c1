package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rajmohan-14/Travel-itinerary/internal/handlers"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	app *fiber.App,
	health *handlers.HealthHandler,
	auth *handlers.AuthHandler,
	trips *handlers.TripHandler,
	bookings *handlers.BookingHandler,
	requireAuth fiber.Handler,
) {
	// Landing / status
	app.Get("/", health.Status)
	app.Get("/health", health.Health)

	api := app.Group("/api")

	// Registration and OTP login
	authGroup := api.Group("/auth")
	authGroup.Post("/register", auth.Register)
	authGroup.Post("/verify-otp", auth.VerifyOTP)
	authGroup.Post("/resend-otp", auth.ResendOTP)
	authGroup.Post("/logout", requireAuth, auth.Logout)

	// Trip management (dashboard)
	tripGroup := api.Group("/trips", requireAuth)
	tripGroup.Get("/", trips.List)
	tripGroup.Post("/", trips.Create)
	tripGroup.Get("/:id", trips.Detail)
	tripGroup.Delete("/:id", trips.Delete)

	// Booking and notifications
	tripGroup.Post("/:id/book", bookings.Book)
	tripGroup.Post("/:id/resend-email", bookings.ResendEmail)
	tripGroup.Post("/:id/whatsapp-reminder", bookings.WhatsAppReminder)
	tripGroup.Get("/:id/ticket.pdf", bookings.TicketPDF)
}
