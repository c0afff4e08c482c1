package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestCreateTripEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "asha", "asha@example.com", "9876543210")

	resp, body := env.createTrip(t, token, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create returned %d: %v", resp.StatusCode, body)
	}

	trip, _ := body["trip"].(map[string]any)
	if trip == nil {
		t.Fatal("no trip in response")
	}
	if trip["weather"] != "28°C, clear sky" {
		t.Errorf("weather = %v", trip["weather"])
	}
	if trip["attractions"] != "Baga Beach, Fort Aguada" {
		t.Errorf("attractions = %v", trip["attractions"])
	}
	if trip["hotels"] != "Taj Holiday Village" {
		t.Errorf("hotels = %v", trip["hotels"])
	}
	if trip["distance_km"] != 450.0 {
		t.Errorf("distance_km = %v", trip["distance_km"])
	}
	// Contact number falls back to the one given at registration.
	if trip["phone_number"] != "9876543210" {
		t.Errorf("phone_number = %v", trip["phone_number"])
	}

	itinerary, _ := body["itinerary"].(map[string]any)
	if itinerary == nil {
		t.Fatal("no itinerary in response")
	}
	parsed, _ := itinerary["parsed"].(map[string]any)
	if parsed == nil {
		t.Fatal("itinerary did not parse")
	}
	days, _ := parsed["itinerary"].([]any)
	if len(days) != 4 {
		t.Errorf("itinerary has %d day entries, want 4", len(days))
	}
}

func TestCreateTripRejectsBadDates(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "asha", "asha@example.com", "")

	// End before start, and end equal to start: both rejected.
	for _, end := range []string{"2026-02-27", "2026-03-01"} {
		resp, body := env.createTrip(t, token, fiber.Map{"end_date": end})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("end_date %s returned %d", end, resp.StatusCode)
		}
		if errMessage(body) != "End date must be after start date." {
			t.Errorf("error = %q", errMessage(body))
		}
	}

	// Rejected trips never reach the providers.
	if env.weather.calls != 0 || env.generator.calls != 0 {
		t.Errorf("providers were called for rejected trips: weather=%d ai=%d",
			env.weather.calls, env.generator.calls)
	}

	resp, _ := env.createTrip(t, token, fiber.Map{"end_date": "05-03-2026"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed date returned %d", resp.StatusCode)
	}
}

func TestCreateTripBudgetValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "asha", "asha@example.com", "")

	resp, _ := env.createTrip(t, token, fiber.Map{"budget": -1})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("negative budget returned %d", resp.StatusCode)
	}

	// Zero and absent budgets are both fine.
	resp, _ = env.createTrip(t, token, fiber.Map{"budget": 0})
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("zero budget returned %d", resp.StatusCode)
	}

	resp, body := env.createTrip(t, token, fiber.Map{"budget": nil})
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("absent budget returned %d", resp.StatusCode)
	}
	trip, _ := body["trip"].(map[string]any)
	if trip["budget"] != nil {
		t.Errorf("budget should be null, got %v", trip["budget"])
	}
}

func TestCreateTripRequiresTravelers(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "asha", "asha@example.com", "")

	resp, _ := env.createTrip(t, token, fiber.Map{"travelers": 0})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("zero travelers returned %d", resp.StatusCode)
	}
}

func TestListTrips(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "asha", "asha@example.com", "")

	resp, body := env.request(t, "GET", "/api/trips/", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list returned %d", resp.StatusCode)
	}
	if body["count"] != 0.0 {
		t.Errorf("count = %v, want 0", body["count"])
	}

	env.createTrip(t, token, nil)
	env.createTrip(t, token, fiber.Map{"destination": "Manali"})

	_, body = env.request(t, "GET", "/api/trips/", token, nil)
	if body["count"] != 2.0 {
		t.Errorf("count = %v, want 2", body["count"])
	}
}

func TestTripOwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerAndLogin(t, "asha", "asha@example.com", "")
	other := env.registerAndLogin(t, "ravi", "ravi@example.com", "")

	resp, body := env.createTrip(t, owner, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create returned %d", resp.StatusCode)
	}
	trip, _ := body["trip"].(map[string]any)
	tripID := int(trip["ID"].(float64))

	// The other user can neither read nor delete it.
	resp, _ = env.request(t, "GET", "/api/trips/"+itoa(tripID), other, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-user read returned %d", resp.StatusCode)
	}
	resp, _ = env.request(t, "DELETE", "/api/trips/"+itoa(tripID), other, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-user delete returned %d", resp.StatusCode)
	}

	// The owner still sees it.
	resp, _ = env.request(t, "GET", "/api/trips/"+itoa(tripID), owner, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("owner read returned %d", resp.StatusCode)
	}
}

func TestDeleteTrip(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "asha", "asha@example.com", "")

	_, body := env.createTrip(t, token, nil)
	trip, _ := body["trip"].(map[string]any)
	tripID := int(trip["ID"].(float64))

	resp, body := env.request(t, "DELETE", "/api/trips/"+itoa(tripID), token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete returned %d", resp.StatusCode)
	}
	if body["message"] != "Trip to Goa deleted successfully!" {
		t.Errorf("message = %v", body["message"])
	}

	resp, _ = env.request(t, "GET", "/api/trips/"+itoa(tripID), token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("deleted trip still readable: %d", resp.StatusCode)
	}
}

func TestTripInvalidID(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "asha", "asha@example.com", "")

	resp, _ := env.request(t, "GET", "/api/trips/not-a-number", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid id returned %d", resp.StatusCode)
	}
}
