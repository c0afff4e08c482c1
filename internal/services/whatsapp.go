package services

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/rajmohan-14/Travel-itinerary/internal/models"
)

// ErrNoPhoneNumber is returned when a trip has no contact number to
// build a WhatsApp link for.
var ErrNoPhoneNumber = fmt.Errorf("no phone number on trip")

// NormalizePhone strips a contact number down to digits and prefixes
// the country code 91 when it looks like a bare 10-digit Indian number.
func NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	phone := digits.String()

	if !strings.HasPrefix(phone, "91") && len(phone) == 10 {
		phone = "91" + phone
	}
	return phone
}

// BuildWhatsAppLink produces a wa.me deep link pre-filled with the
// booking confirmation. Nothing is sent: the user opens the link and
// sends the message themselves.
func BuildWhatsAppLink(trip *models.Trip, user *models.User, ticket *models.Ticket) (string, error) {
	if trip.PhoneNumber == "" {
		return "", ErrNoPhoneNumber
	}

	phone := NormalizePhone(trip.PhoneNumber)

	message := fmt.Sprintf(`🎫 *Travel Booking Confirmed!*

*Booking Reference:* %s
*Destination:* %s
*Travel Dates:* %s to %s
*Duration:* %d days
*Travelers:* %d
*Total Budget:* %s

Your detailed itinerary has been sent to your email: %s

Thank you for choosing TravelPlanner! 🌍

_This is an automated message. Please do not reply._`,
		ticket.BookingReference,
		trip.Destination,
		trip.StartDate.Format("2006-01-02"),
		trip.EndDate.Format("2006-01-02"),
		trip.DurationDays(),
		trip.Travelers,
		trip.FormattedBudget(),
		user.Email,
	)

	// QueryEscape uses '+' for spaces; wa.me wants percent-encoding
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")

	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, encoded), nil
}

// SendSMS is a stub kept for parity with the notification flow: no SMS
// gateway is wired up, so it just logs and reports success.
func SendSMS(trip *models.Trip) bool {
	log.Printf("📲 SMS would be sent to: %s", trip.PhoneNumber)
	return true
}
