package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rajmohan-14/Travel-itinerary/internal/config"
	"github.com/rajmohan-14/Travel-itinerary/internal/handlers"
	"github.com/rajmohan-14/Travel-itinerary/internal/middleware"
	"github.com/rajmohan-14/Travel-itinerary/internal/models"
	"github.com/rajmohan-14/Travel-itinerary/internal/routes"
	"github.com/rajmohan-14/Travel-itinerary/internal/services"
	"github.com/rajmohan-14/Travel-itinerary/internal/storage"
)

// ---------------- fakes ----------------

type sentMail struct {
	to      string
	subject string
	code    string
}

type fakeMailer struct {
	otps    []sentMail
	tickets []sentMail
	fail    bool
}

func (f *fakeMailer) SendOTPEmail(to, subject, code string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.otps = append(f.otps, sentMail{to: to, subject: subject, code: code})
	return nil
}

func (f *fakeMailer) SendTicketEmail(to, subject, textBody, htmlBody string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.tickets = append(f.tickets, sentMail{to: to, subject: subject})
	return nil
}

func (f *fakeMailer) lastOTP(t *testing.T) string {
	t.Helper()
	if len(f.otps) == 0 {
		t.Fatal("no OTP mail was sent")
	}
	return f.otps[len(f.otps)-1].code
}

type fakeWeather struct {
	calls int
}

func (f *fakeWeather) Current(place string) (*services.CurrentWeather, error) {
	f.calls++
	return &services.CurrentWeather{
		TempC: 28, Description: "clear sky",
		Lat: 15.49, Lon: 73.82, HasCoords: true,
	}, nil
}

type fakePlaces struct {
	calls int
}

func (f *fakePlaces) FindAttractions(lat, lon float64) ([]string, error) {
	f.calls++
	return []string{"Baga Beach", "Fort Aguada"}, nil
}

func (f *fakePlaces) FindHotels(lat, lon float64) ([]string, error) {
	f.calls++
	return []string{"Taj Holiday Village"}, nil
}

type fakeRoutes struct {
	calls int
}

func (f *fakeRoutes) DrivingDistanceKM(lat, lon float64) (float64, error) {
	f.calls++
	return 450.0, nil
}

type fakeGenerator struct {
	calls int
}

func (f *fakeGenerator) GenerateItinerary(destination string, days int, budgetDisplay string, travelers int, interests string) (models.ItineraryView, error) {
	f.calls++
	plans := make([]models.DayPlan, days)
	for i := range plans {
		plans[i] = models.DayPlan{Day: i + 1}
	}
	return models.ItineraryView{Parsed: &models.Itinerary{Days: plans}}, nil
}

// ---------------- test app ----------------

type testEnv struct {
	app       *fiber.App
	store     *storage.MemoryStore
	mailer    *fakeMailer
	sessions  services.SessionStore
	weather   *fakeWeather
	places    *fakePlaces
	routing   *fakeRoutes
	generator *fakeGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:     storage.NewMemoryStore(),
		mailer:    &fakeMailer{},
		sessions:  services.NewMemorySessionStore(),
		weather:   &fakeWeather{},
		places:    &fakePlaces{},
		routing:   &fakeRoutes{},
		generator: &fakeGenerator{},
	}

	otps := services.NewOTPService(env.store)
	jwtManager := services.NewJWTManager(config.JWTConfig{Secret: "test-secret", Duration: time.Hour})
	enricher := services.NewEnricher(env.weather, env.places, env.routing, env.generator, env.store)
	bookings := services.NewBookingService(env.store, env.mailer)

	env.app = fiber.New()
	routes.SetupRoutes(
		env.app,
		handlers.NewHealthHandler(env.store, "memory", fiber.Map{}),
		handlers.NewAuthHandler(env.store, otps, env.mailer, env.sessions, jwtManager),
		handlers.NewTripHandler(env.store, enricher),
		handlers.NewBookingHandler(env.store, bookings),
		middleware.RequireAuth(jwtManager, env.sessions),
	)
	return env
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(raw))

	var parsed map[string]any
	if json.Valid(raw) {
		json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

// registerAndLogin walks the full OTP flow and returns a session token.
func (e *testEnv) registerAndLogin(t *testing.T, username, email, phone string) string {
	t.Helper()

	resp, body := e.request(t, "POST", "/api/auth/register", "", fiber.Map{
		"username": username,
		"email":    email,
		"phone":    phone,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register returned %d: %v", resp.StatusCode, body)
	}

	resp, body = e.request(t, "POST", "/api/auth/verify-otp", "", fiber.Map{
		"email": email,
		"otp":   e.mailer.lastOTP(t),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify-otp returned %d: %v", resp.StatusCode, body)
	}

	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("no token in login response")
	}
	return token
}

func (e *testEnv) createTrip(t *testing.T, token string, overrides fiber.Map) (*http.Response, map[string]any) {
	t.Helper()

	payload := fiber.Map{
		"destination": "Goa",
		"start_date":  "2026-03-01",
		"end_date":    "2026-03-05",
		"budget":      50000,
		"travelers":   2,
		"interests":   "beaches, nightlife",
	}
	for k, v := range overrides {
		payload[k] = v
	}
	return e.request(t, "POST", "/api/trips/", token, payload)
}

func errMessage(body map[string]any) string {
	msg, _ := body["error"].(string)
	return msg
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
