package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rajmohan-14/Travel-itinerary/internal/models"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "919876543210"},
		{"919876543210", "919876543210"},
		{"+91 98765 43210", "919876543210"},
		{"98-76-54-32-10", "919876543210"},
		{"12345", "12345"},          // too short for the 91 prefix rule
		{"9191919191", "9191919191"}, // 10 digits but already 91-prefixed
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildWhatsAppLink(t *testing.T) {
	start, _ := time.Parse("2006-01-02", "2026-03-01")
	end, _ := time.Parse("2006-01-02", "2026-03-05")
	trip := &models.Trip{
		Destination: "Goa",
		StartDate:   start,
		EndDate:     end,
		Travelers:   2,
		PhoneNumber: "9876543210",
	}
	user := &models.User{Email: "traveler@example.com"}
	ticket := &models.Ticket{BookingReference: "TRP0000071234"}

	link, err := BuildWhatsAppLink(trip, user, ticket)
	if err != nil {
		t.Fatalf("BuildWhatsAppLink: %v", err)
	}

	if !strings.HasPrefix(link, "https://wa.me/919876543210?text=") {
		t.Errorf("link has wrong prefix: %s", link)
	}
	if strings.Contains(link, "+") {
		t.Error("link must use %20 for spaces, found '+'")
	}
	if !strings.Contains(link, "TRP0000071234") {
		t.Error("booking reference missing from message")
	}
}

func TestBuildWhatsAppLinkNoPhone(t *testing.T) {
	trip := &models.Trip{Destination: "Goa"}
	_, err := BuildWhatsAppLink(trip, &models.User{}, &models.Ticket{})
	if !errors.Is(err, ErrNoPhoneNumber) {
		t.Fatalf("expected ErrNoPhoneNumber, got %v", err)
	}
}
