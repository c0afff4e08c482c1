package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rajmohan-14/Travel-itinerary/internal/utils"
)

// Trip is a planned journey owned by one user. The enrichment fields
// (weather, hotels, attractions, itinerary, distance) are filled in by
// the enrichment pipeline after creation; booking fields flip when the
// ticket email goes out.
type Trip struct {
	gorm.Model

	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Destination string    `json:"destination" gorm:"not null"`
	StartDate   time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate     time.Time `json:"end_date" gorm:"type:date;not null"`
	Budget      *float64  `json:"budget"`
	Travelers   int       `json:"travelers" gorm:"default:1"`
	Interests   string    `json:"interests"`

	// Enrichment outputs
	Weather     string   `json:"weather"`
	Hotels      string   `json:"hotels"`
	Attractions string   `json:"attractions"`
	Itinerary   string   `json:"itinerary"` // JSON blob, or raw text on parse failure
	DistanceKM  *float64 `json:"distance_km"`

	// Booking state
	IsBooked         bool   `json:"is_booked" gorm:"default:false"`
	BookingReference string `json:"booking_reference"`
	TicketsSent      bool   `json:"tickets_sent" gorm:"default:false"`
	WhatsappSent     bool   `json:"whatsapp_sent" gorm:"default:false"`
	PhoneNumber      string `json:"phone_number"`
}

// DurationDays returns the trip length in days (end minus start).
func (t *Trip) DurationDays() int {
	return int(t.EndDate.Sub(t.StartDate).Hours() / 24)
}

// FormattedBudget renders the budget as rupees with thousand grouping,
// e.g. ₹50,000.00, or "Not specified" when no budget was given.
func (t *Trip) FormattedBudget() string {
	if t.Budget == nil {
		return "Not specified"
	}
	return "₹" + utils.FormatAmount(*t.Budget)
}

// GenerateBookingReference sets the booking reference once, from the
// persisted trip ID plus a random 4-digit suffix. Calling it again
// returns the existing reference unchanged. The caller persists.
func (t *Trip) GenerateBookingReference() string {
	if t.BookingReference == "" {
		t.BookingReference = fmt.Sprintf("TRP%06d%04d", t.ID, utils.RandomInRange(1000, 9999))
	}
	return t.BookingReference
}

// TripRequest is the trip creation payload.
type TripRequest struct {
	Destination string   `json:"destination" validate:"required,max=100"`
	StartDate   string   `json:"start_date" validate:"required"`
	EndDate     string   `json:"end_date" validate:"required"`
	Budget      *float64 `json:"budget" validate:"omitempty,gte=0"`
	Travelers   int      `json:"travelers" validate:"required,gte=1"`
	Interests   string   `json:"interests" validate:"max=200"`
	PhoneNumber string   `json:"phone_number" validate:"omitempty,max=15"`
}

// ParseDates parses the request's date strings (YYYY-MM-DD).
func (r *TripRequest) ParseDates() (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", strings.TrimSpace(r.StartDate))
	if err != nil {
		return start, end, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err = time.Parse("2006-01-02", strings.TrimSpace(r.EndDate))
	if err != nil {
		return start, end, fmt.Errorf("invalid end_date: %w", err)
	}
	return start, end, nil
}
