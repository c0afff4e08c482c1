package handlers

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/rajmohan-14/Travel-itinerary/internal/models"
	"github.com/rajmohan-14/Travel-itinerary/internal/services"
	"github.com/rajmohan-14/Travel-itinerary/internal/storage"
)

// TripHandler handles trip CRUD and the creation-time enrichment
type TripHandler struct {
	store    storage.Store
	enricher *services.Enricher
	validate *validator.Validate
}

// NewTripHandler creates a new trip handler
func NewTripHandler(store storage.Store, enricher *services.Enricher) *TripHandler {
	return &TripHandler{
		store:    store,
		enricher: enricher,
		validate: validator.New(),
	}
}

func tripIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid trip id")
	}
	return uint(id), nil
}

// List returns the user's trips, newest first
func (h *TripHandler) List(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	trips, err := h.store.GetTripsByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve trips",
		})
	}

	return c.JSON(fiber.Map{
		"trips": trips,
		"count": len(trips),
	})
}

// Create validates the trip intent, creates the record and runs the
// enrichment pipeline over it
func (h *TripHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req models.TripRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid trip details",
		})
	}

	start, end, err := req.ParseDates()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Dates must be in YYYY-MM-DD format",
		})
	}

	// Reject before any network call
	if !end.After(start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "End date must be after start date.",
		})
	}

	// Contact number falls back to the one parked at registration
	phone := req.PhoneNumber
	if phone == "" {
		phone, _ = c.Locals("phone").(string)
	}

	trip := &models.Trip{
		UserID:      userID,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      req.Budget,
		Travelers:   req.Travelers,
		Interests:   req.Interests,
		PhoneNumber: phone,
	}

	if _, err := h.store.CreateTrip(trip); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create trip",
		})
	}

	// Provider failures degrade inside the pipeline; only a storage
	// failure surfaces here. The un-enriched trip row survives either way.
	if err := h.enricher.Enrich(trip); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Something went wrong while planning the trip",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Trip planned successfully! You can now book and get tickets.",
		"trip":      trip,
		"itinerary": models.ParseItineraryBlob(trip.Itinerary),
	})
}

// Detail returns one trip with its parsed itinerary
func (h *TripHandler) Detail(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := tripIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid trip ID",
		})
	}

	trip, err := h.store.GetTripByOwner(id, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Trip not found",
		})
	}

	return c.JSON(fiber.Map{
		"trip":      trip,
		"itinerary": models.ParseItineraryBlob(trip.Itinerary),
	})
}

// Delete removes a trip immediately and unconditionally
func (h *TripHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := tripIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid trip ID",
		})
	}

	trip, err := h.store.GetTripByOwner(id, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Trip not found",
		})
	}

	if err := h.store.DeleteTrip(id, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete trip",
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Trip to %s deleted successfully!", trip.Destination),
	})
}
