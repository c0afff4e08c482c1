package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/rajmohan-14/Travel-itinerary/internal/models"
	"github.com/rajmohan-14/Travel-itinerary/internal/services"
	"github.com/rajmohan-14/Travel-itinerary/internal/storage"
)

// AuthHandler handles registration and the OTP login flow
type AuthHandler struct {
	store    storage.Store
	otps     *services.OTPService
	mailer   services.Mailer
	sessions services.SessionStore
	jwt      *services.JWTManager
	validate *validator.Validate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(store storage.Store, otps *services.OTPService, mailer services.Mailer, sessions services.SessionStore, jwt *services.JWTManager) *AuthHandler {
	return &AuthHandler{
		store:    store,
		otps:     otps,
		mailer:   mailer,
		sessions: sessions,
		jwt:      jwt,
		validate: validator.New(),
	}
}

// Register creates the user, issues a 5-digit code and emails it
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var reg models.UserRegistration
	if err := c.BodyParser(&reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid registration details",
		})
	}

	// Duplicate checks before any side effect
	if _, err := h.store.GetUserByEmail(reg.Email); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "This email is already registered.",
		})
	}
	if _, err := h.store.GetUserByUsername(reg.Username); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "This username is already taken.",
		})
	}

	user, err := h.store.CreateUser(&models.User{
		Username: reg.Username,
		Email:    reg.Email,
		IsActive: true,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register user",
		})
	}

	code, err := h.otps.Issue(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue OTP",
		})
	}

	if err := h.mailer.SendOTPEmail(user.Email, "Your OTP for Travel Planner Login", code); err != nil {
		log.Printf("❌ OTP email failed for %s: %v", user.Email, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("Error sending email: %v", err),
		})
	}

	// Park the contact number until verification establishes a session
	if err := h.sessions.SavePending(c.Context(), user.Email, services.PendingRegistration{Phone: reg.Phone}); err != nil {
		log.Printf("⚠️  Failed to save pending registration for %s: %v", user.Email, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("OTP sent to %s. Please check your inbox.", user.Email),
		"email":   user.Email,
	})
}

// VerifyOTP checks the submitted code and establishes a session
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email" validate:"required,email"`
		OTP   string `json:"otp" validate:"required,len=5,numeric"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A 5-digit OTP is required",
		})
	}

	user, err := h.store.GetUserByEmail(req.Email)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found.",
		})
	}

	ok, err := h.otps.Verify(user.ID, req.OTP)
	if err != nil || !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid OTP. Please try again.",
		})
	}

	// Pick up the phone number parked at registration
	phone := ""
	if pending, err := h.sessions.GetPending(c.Context(), user.Email); err == nil && pending != nil {
		phone = pending.Phone
		_ = h.sessions.DeletePending(c.Context(), user.Email)
	}

	token, err := h.jwt.GenerateToken(user.ID, phone)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful!",
		"token":   token,
		"user":    user,
	})
}

// ResendOTP regenerates and re-emails a code, replacing any prior one
func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email is required",
		})
	}

	user, err := h.store.GetUserByEmail(req.Email)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found.",
		})
	}

	code, err := h.otps.Issue(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue OTP",
		})
	}

	if err := h.mailer.SendOTPEmail(user.Email, "Resent OTP for Travel Planner Login", code); err != nil {
		log.Printf("❌ OTP resend failed for %s: %v", user.Email, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("Error resending OTP: %v", err),
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("A new OTP has been sent to %s.", user.Email),
	})
}

// Logout revokes the current session token
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals("tokenID").(string)
	exp, _ := c.Locals("tokenExp").(time.Time)

	if jti != "" {
		if err := h.sessions.RevokeToken(c.Context(), jti, exp); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to log out",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "You have been logged out successfully.",
	})
}
