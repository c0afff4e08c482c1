package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rajmohan-14/Travel-itinerary/internal/storage"
)

// HealthHandler serves the service banner and the monitoring probe
type HealthHandler struct {
	store       storage.Store
	storageType string
	providers   fiber.Map
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store storage.Store, storageType string, providers fiber.Map) *HealthHandler {
	return &HealthHandler{
		store:       store,
		storageType: storageType,
		providers:   providers,
	}
}

// Status is the root banner with record counts and provider flags
func (h *HealthHandler) Status(c *fiber.Ctx) error {
	response := fiber.Map{
		"service":   "TravelPlanner Backend API",
		"version":   "1.0.0",
		"status":    "healthy",
		"storage":   h.storageType,
		"providers": h.providers,
	}

	if users, trips, otps, err := h.store.Counts(); err == nil {
		response["records"] = fiber.Map{
			"users": users,
			"trips": trips,
			"otps":  otps,
		}
	}

	return c.JSON(response)
}

// Health is the lightweight probe for monitoring
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if _, _, _, err := h.store.Counts(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "healthy",
		"version": "1.0.0",
	})
}
