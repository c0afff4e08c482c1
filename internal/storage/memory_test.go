package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/rajmohan-14/Travel-itinerary/internal/models"
)

func TestMemoryStoreUsers(t *testing.T) {
	store := NewMemoryStore()

	user, err := store.CreateUser(&models.User{Username: "asha", Email: "  Asha@Example.COM "})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("user got no ID")
	}
	if user.Email != "asha@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if !user.IsActive {
		t.Error("new users should be active")
	}

	// Lookup is case-insensitive on email.
	found, err := store.GetUserByEmail("ASHA@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("found wrong user: %d", found.ID)
	}

	if _, err := store.GetUserByUsername("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreOTPReuse(t *testing.T) {
	store := NewMemoryStore()
	user, _ := store.CreateUser(&models.User{Username: "asha", Email: "asha@example.com"})

	first, err := store.GetOrCreateOTP(user.ID)
	if err != nil {
		t.Fatalf("GetOrCreateOTP: %v", err)
	}
	second, err := store.GetOrCreateOTP(user.ID)
	if err != nil {
		t.Fatalf("GetOrCreateOTP (again): %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected one OTP record per user, got IDs %d and %d", first.ID, second.ID)
	}

	code := "12345"
	first.Code = &code
	if err := store.UpdateOTP(first); err != nil {
		t.Fatalf("UpdateOTP: %v", err)
	}

	stored, err := store.GetOTPByUser(user.ID)
	if err != nil {
		t.Fatalf("GetOTPByUser: %v", err)
	}
	if stored.Code == nil || *stored.Code != "12345" {
		t.Errorf("code not stored: %v", stored.Code)
	}
}

func TestMemoryStoreTripOwnership(t *testing.T) {
	store := NewMemoryStore()

	trip, err := store.CreateTrip(&models.Trip{UserID: 1, Destination: "Goa"})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	if _, err := store.GetTripByOwner(trip.ID, 1); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	// Another user's ID must not see the trip.
	if _, err := store.GetTripByOwner(trip.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for non-owner, got %v", err)
	}
	if err := store.DeleteTrip(trip.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("non-owner delete should fail, got %v", err)
	}

	if err := store.DeleteTrip(trip.ID, 1); err != nil {
		t.Fatalf("DeleteTrip: %v", err)
	}
	if _, err := store.GetTripByOwner(trip.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted trip still readable: %v", err)
	}
}

func TestMemoryStoreTripsSortedNewestFirst(t *testing.T) {
	store := NewMemoryStore()

	older, _ := store.CreateTrip(&models.Trip{UserID: 1, Destination: "Goa"})
	newer, _ := store.CreateTrip(&models.Trip{UserID: 1, Destination: "Manali"})
	store.CreateTrip(&models.Trip{UserID: 2, Destination: "Kerala"})

	// Force distinct timestamps
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer.CreatedAt = time.Now()

	trips, err := store.GetTripsByUser(1)
	if err != nil {
		t.Fatalf("GetTripsByUser: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("got %d trips, want 2", len(trips))
	}
	if trips[0].Destination != "Manali" || trips[1].Destination != "Goa" {
		t.Errorf("trips not newest-first: %s, %s", trips[0].Destination, trips[1].Destination)
	}
}

func TestMemoryStoreCounts(t *testing.T) {
	store := NewMemoryStore()
	user, _ := store.CreateUser(&models.User{Username: "asha", Email: "asha@example.com"})
	store.GetOrCreateOTP(user.ID)
	store.CreateTrip(&models.Trip{UserID: user.ID, Destination: "Goa"})

	users, trips, otps, err := store.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if users != 1 || trips != 1 || otps != 1 {
		t.Errorf("counts = %d users, %d trips, %d otps", users, trips, otps)
	}
}
