package services

import (
	"fmt"
	"html/template"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/rajmohan-14/Travel-itinerary/internal/models"
	"github.com/rajmohan-14/Travel-itinerary/internal/storage"
	"github.com/rajmohan-14/Travel-itinerary/internal/utils"
)

// BookingService assembles tickets and dispatches booking
// notifications. Only the email outcome decides whether the booking
// succeeded; the WhatsApp link and SMS stub are advisory.
type BookingService struct {
	store  storage.Store
	mailer Mailer
}

func NewBookingService(store storage.Store, mailer Mailer) *BookingService {
	return &BookingService{store: store, mailer: mailer}
}

// BookingResult collects the outcomes of the three notification paths.
type BookingResult struct {
	Reference   string `json:"booking_reference"`
	EmailSent   bool   `json:"email_sent"`
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
	SMSSent     bool   `json:"sms_sent"`
}

// EnsureReference lazily generates and persists the trip's booking
// reference. Idempotent: an existing reference is never replaced.
func (s *BookingService) EnsureReference(trip *models.Trip) (string, error) {
	if trip.BookingReference != "" {
		return trip.BookingReference, nil
	}
	ref := trip.GenerateBookingReference()
	if err := s.store.UpdateTrip(trip); err != nil {
		return "", err
	}
	return ref, nil
}

// BuildTicket assembles the ticket payload from the trip and its stored
// itinerary. Missing or unparsable itinerary blobs default to empty
// structures rather than failing the booking.
func (s *BookingService) BuildTicket(trip *models.Trip, user *models.User) (*models.Ticket, error) {
	ref, err := s.EnsureReference(trip)
	if err != nil {
		return nil, err
	}

	view := models.ParseItineraryBlob(trip.Itinerary)

	return &models.Ticket{
		BookingReference: ref,
		TicketID:         utils.GenerateTicketID(),
		Destination:      trip.Destination,
		TravelerName:     user.Username,
		TravelerEmail:    user.Email,
		StartDate:        trip.StartDate.Format("2006-01-02"),
		EndDate:          trip.EndDate.Format("2006-01-02"),
		Duration:         trip.DurationDays(),
		Travelers:        trip.Travelers,
		TotalCost:        trip.FormattedBudget(),
		ItinerarySummary: view.SummaryOrEmpty(),
		DailyPlans:       view.DaysOrEmpty(),
		BookingDate:      models.NewBookingDate(time.Now()),
	}, nil
}

// SendTicketEmail renders and sends the ticket mail, then flips the
// trip's booking flags. The trip is only marked booked after the mail
// actually went out.
func (s *BookingService) SendTicketEmail(trip *models.Trip, user *models.User) error {
	ticket, err := s.BuildTicket(trip, user)
	if err != nil {
		return err
	}

	htmlBody, err := renderTicketHTML(ticket)
	if err != nil {
		return fmt.Errorf("failed to render ticket: %w", err)
	}
	textBody := StripTags(htmlBody)

	subject := fmt.Sprintf("🎫 Your Travel Ticket to %s - %s", trip.Destination, ticket.BookingReference)
	if err := s.mailer.SendTicketEmail(user.Email, subject, textBody, htmlBody); err != nil {
		log.Printf("❌ Ticket email failed for trip %d: %v", trip.ID, err)
		return err
	}

	trip.IsBooked = true
	trip.TicketsSent = true
	return s.store.UpdateTrip(trip)
}

// Book runs the full dispatch: ticket email (decisive), WhatsApp link
// build and SMS stub (advisory).
func (s *BookingService) Book(trip *models.Trip, user *models.User) *BookingResult {
	result := &BookingResult{}

	if err := s.SendTicketEmail(trip, user); err == nil {
		result.EmailSent = true
	}
	result.Reference = trip.BookingReference

	url, err := s.BuildWhatsApp(trip, user)
	if err != nil {
		log.Printf("⚠️  WhatsApp link not built for trip %d: %v", trip.ID, err)
	} else {
		result.WhatsAppURL = url
	}

	result.SMSSent = SendSMS(trip)
	return result
}

// BuildWhatsApp builds the pre-filled confirmation link and records
// that a WhatsApp notification was prepared.
func (s *BookingService) BuildWhatsApp(trip *models.Trip, user *models.User) (string, error) {
	ticket, err := s.BuildTicket(trip, user)
	if err != nil {
		return "", err
	}

	url, err := BuildWhatsAppLink(trip, user, ticket)
	if err != nil {
		return "", err
	}

	trip.WhatsappSent = true
	if err := s.store.UpdateTrip(trip); err != nil {
		return "", err
	}
	return url, nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags derives the plain-text alternative from the HTML body.
func StripTags(html string) string {
	text := tagPattern.ReplaceAllString(html, "")

	// Collapse runs of blank lines left behind by block elements
	var lines []string
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				lines = append(lines, "")
			}
			blank = true
			continue
		}
		blank = false
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

var ticketTemplate = template.Must(template.New("ticket").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>🎫 Travel Ticket - {{.Destination}}</h2>
  <p><strong>Booking Reference:</strong> {{.BookingReference}}</p>
  <p><strong>Ticket ID:</strong> {{.TicketID}}</p>
  <hr>
  <h3>Traveler</h3>
  <p>{{.TravelerName}} ({{.TravelerEmail}})</p>
  <h3>Trip Details</h3>
  <p>
    <strong>Dates:</strong> {{.StartDate}} to {{.EndDate}} ({{.Duration}} days)<br>
    <strong>Travelers:</strong> {{.Travelers}}<br>
    <strong>Total Budget:</strong> {{.TotalCost}}<br>
    <strong>Booked:</strong> {{.BookingDate}}
  </p>
  {{if .DailyPlans}}
  <h3>Your Itinerary</h3>
  {{range .DailyPlans}}
  <h4>Day {{.Day}}{{if .Date}} - {{.Date}}{{end}}</h4>
  <ul>
    {{range .Activities}}
    <li>{{.Time}} - {{.Activity}}{{if .Location}} at {{.Location}}{{end}}{{if .Cost}} ({{.Cost}}){{end}}</li>
    {{end}}
  </ul>
  {{if .TotalCost}}<p><em>Day total: {{.TotalCost}}</em></p>{{end}}
  {{end}}
  {{end}}
  {{if .ItinerarySummary.BestTransportation}}
  <h3>Summary</h3>
  <p>
    <strong>Estimated cost:</strong> {{.ItinerarySummary.TotalEstimatedCost}}<br>
    <strong>Transport:</strong> {{.ItinerarySummary.BestTransportation}}
  </p>
  {{end}}
  {{if .ItinerarySummary.MustSee}}
  <p><strong>Must see:</strong>
    {{range $i, $place := .ItinerarySummary.MustSee}}{{if $i}}, {{end}}{{$place}}{{end}}
  </p>
  {{end}}
  {{if .ItinerarySummary.Tips}}
  <h3>Tips</h3>
  <ul>
    {{range .ItinerarySummary.Tips}}<li>{{.}}</li>{{end}}
  </ul>
  {{end}}
  <hr>
  <p style="color: #888; font-size: 12px;">
    Thank you for choosing TravelPlanner! This is an automated message.
  </p>
</body>
</html>`))

func renderTicketHTML(ticket *models.Ticket) (string, error) {
	var out strings.Builder
	if err := ticketTemplate.Execute(&out, ticket); err != nil {
		return "", err
	}
	return out.String(), nil
}
