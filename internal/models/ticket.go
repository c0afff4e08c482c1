package models

import "time"

// Ticket is the payload assembled for the booking confirmation email,
// WhatsApp message and PDF.
type Ticket struct {
	BookingReference string           `json:"booking_reference"`
	TicketID         string           `json:"ticket_id"`
	Destination      string           `json:"destination"`
	TravelerName     string           `json:"traveler_name"`
	TravelerEmail    string           `json:"traveler_email"`
	StartDate        string           `json:"start_date"`
	EndDate          string           `json:"end_date"`
	Duration         int              `json:"duration"`
	Travelers        int              `json:"travelers"`
	TotalCost        string           `json:"total_cost"`
	ItinerarySummary ItinerarySummary `json:"itinerary_summary"`
	DailyPlans       []DayPlan        `json:"daily_plans"`
	BookingDate      string           `json:"booking_date"`
}

// NewBookingDate formats the booking timestamp the way it appears on
// the ticket.
func NewBookingDate(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
