package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/rajmohan-14/Travel-itinerary/internal/models"
)

// pdfText maps strings onto what the built-in PDF fonts can render.
func pdfText(s string) string {
	s = strings.ReplaceAll(s, "₹", "Rs. ")
	s = strings.ReplaceAll(s, "🎫", "")
	return strings.TrimSpace(s)
}

// GenerateTicketPDF renders the ticket payload as a downloadable PDF.
func GenerateTicketPDF(ticket *models.Ticket) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "TravelPlanner", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Travel Ticket - "+pdfText(ticket.BookingReference), "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Section Helper ───────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, pdfText(value), "", 1, "L", false, 0, "")
	}

	// ── Traveler Info ─────────────────────────────────────────
	sectionHeader("Traveler Information")
	row("Name", ticket.TravelerName)
	row("Email", ticket.TravelerEmail)
	row("Ticket ID", ticket.TicketID)
	row("Booked", ticket.BookingDate)
	pdf.Ln(4)

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Destination", ticket.Destination)
	row("Dates", fmt.Sprintf("%s to %s", ticket.StartDate, ticket.EndDate))
	row("Duration", fmt.Sprintf("%d days", ticket.Duration))
	row("Travelers", fmt.Sprintf("%d", ticket.Travelers))
	row("Total Budget", ticket.TotalCost)
	pdf.Ln(4)

	// ── Daily Plans ───────────────────────────────────────────
	if len(ticket.DailyPlans) > 0 {
		sectionHeader("Itinerary")
		for _, day := range ticket.DailyPlans {
			pdf.SetFont("Helvetica", "B", 10)
			title := fmt.Sprintf("Day %d", day.Day)
			if day.Date != "" {
				title += " - " + day.Date
			}
			pdf.CellFormat(170, 7, title, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			for _, act := range day.Activities {
				line := act.Time + "  " + act.Activity
				if act.Location != "" {
					line += " at " + act.Location
				}
				if act.Cost != "" {
					line += " (" + act.Cost + ")"
				}
				pdf.MultiCell(170, 5, pdfText(line), "", "L", false)
			}
			if day.TotalCost != "" {
				pdf.SetFont("Helvetica", "I", 9)
				pdf.CellFormat(170, 6, "Day total: "+pdfText(day.TotalCost), "", 1, "L", false, 0, "")
			}
			pdf.Ln(2)
		}
	}

	// ── Summary ───────────────────────────────────────────────
	summary := ticket.ItinerarySummary
	if summary.BestTransportation != "" || len(summary.MustSee) > 0 {
		sectionHeader("Summary")
		if summary.TotalEstimatedCost != "" {
			row("Estimated cost", summary.TotalEstimatedCost)
		}
		if summary.BestTransportation != "" {
			row("Transport", summary.BestTransportation)
		}
		if len(summary.MustSee) > 0 {
			row("Must see", strings.Join(summary.MustSee, ", "))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
