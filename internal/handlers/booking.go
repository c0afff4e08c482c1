package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rajmohan-14/Travel-itinerary/internal/models"
	"github.com/rajmohan-14/Travel-itinerary/internal/services"
	"github.com/rajmohan-14/Travel-itinerary/internal/storage"
)

// BookingHandler handles booking a trip and re-running its
// notifications
type BookingHandler struct {
	store    storage.Store
	bookings *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(store storage.Store, bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{
		store:    store,
		bookings: bookings,
	}
}

func (h *BookingHandler) tripAndUser(c *fiber.Ctx) (*models.Trip, *models.User, error) {
	userID := c.Locals("userID").(uint)

	id, err := tripIDParam(c)
	if err != nil {
		return nil, nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid trip ID",
		})
	}

	trip, err := h.store.GetTripByOwner(id, userID)
	if err != nil {
		return nil, nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Trip not found",
		})
	}

	user, err := h.store.GetUserByID(userID)
	if err != nil {
		return nil, nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return trip, user, nil
}

// Book sends the ticket email, prepares the WhatsApp link and reports
// the outcomes. The booking stands only if the email went out.
func (h *BookingHandler) Book(c *fiber.Ctx) error {
	trip, user, errResp := h.tripAndUser(c)
	if trip == nil {
		return errResp
	}

	result := h.bookings.Book(trip, user)

	if !result.EmailSent {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Failed to send tickets. Please try again.",
			"booking": result,
		})
	}

	return c.JSON(fiber.Map{
		"message": "🎫 Booking confirmed! Tickets sent to your email.",
		"booking": result,
	})
}

// ResendEmail re-sends the ticket email independently of booking state
func (h *BookingHandler) ResendEmail(c *fiber.Ctx) error {
	trip, user, errResp := h.tripAndUser(c)
	if trip == nil {
		return errResp
	}

	if err := h.bookings.SendTicketEmail(trip, user); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to resend email. Please try again.",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Ticket email resent successfully!",
	})
}

// WhatsAppReminder rebuilds the pre-filled confirmation link
func (h *BookingHandler) WhatsAppReminder(c *fiber.Ctx) error {
	trip, user, errResp := h.tripAndUser(c)
	if trip == nil {
		return errResp
	}

	url, err := h.bookings.BuildWhatsApp(trip, user)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to generate WhatsApp message. Please check your phone number.",
		})
	}

	return c.JSON(fiber.Map{
		"message":      "WhatsApp message ready! Open the link to send.",
		"whatsapp_url": url,
	})
}

// TicketPDF streams the ticket as a PDF download
func (h *BookingHandler) TicketPDF(c *fiber.Ctx) error {
	trip, user, errResp := h.tripAndUser(c)
	if trip == nil {
		return errResp
	}

	ticket, err := h.bookings.BuildTicket(trip, user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build ticket",
		})
	}

	pdfBytes, err := services.GenerateTicketPDF(ticket)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate PDF",
		})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="ticket-`+ticket.BookingReference+`.pdf"`)
	return c.Send(pdfBytes)
}
