package services

import (
	"regexp"
	"testing"

	"github.com/rajmohan-14/Travel-itinerary/internal/models"
	"github.com/rajmohan-14/Travel-itinerary/internal/storage"
)

func otpFixture(t *testing.T) (*OTPService, storage.Store, uint) {
	t.Helper()
	store := storage.NewMemoryStore()
	user, err := store.CreateUser(&models.User{Username: "asha", Email: "asha@example.com"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return NewOTPService(store), store, user.ID
}

func TestOTPIssueAndVerify(t *testing.T) {
	svc, _, userID := otpFixture(t)

	code, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !regexp.MustCompile(`^[0-9]{5}$`).MatchString(code) {
		t.Fatalf("code %q is not 5 digits", code)
	}

	ok, err := svc.Verify(userID, code)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("correct code rejected")
	}
}

func TestOTPSingleUse(t *testing.T) {
	svc, _, userID := otpFixture(t)

	code, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if ok, _ := svc.Verify(userID, code); !ok {
		t.Fatal("first verification failed")
	}
	// The code is consumed: replaying it must fail.
	if ok, _ := svc.Verify(userID, code); ok {
		t.Fatal("consumed code accepted a second time")
	}
}

func TestOTPWrongCodeRejected(t *testing.T) {
	svc, _, userID := otpFixture(t)

	code, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	wrong := "00000"
	if wrong == code {
		wrong = "00001"
	}
	if ok, _ := svc.Verify(userID, wrong); ok {
		t.Fatal("wrong code accepted")
	}
	// The stored code survives a failed attempt.
	if ok, _ := svc.Verify(userID, code); !ok {
		t.Fatal("correct code rejected after a wrong attempt")
	}
}

func TestOTPReissueOverwrites(t *testing.T) {
	svc, _, userID := otpFixture(t)

	first, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	second, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue (resend): %v", err)
	}

	if first != second {
		// The old code must be dead once a new one is issued.
		if ok, _ := svc.Verify(userID, first); ok {
			t.Fatal("stale code accepted after reissue")
		}
	}
	if ok, _ := svc.Verify(userID, second); !ok {
		t.Fatal("latest code rejected")
	}
}

func TestOTPVerifyUnknownUser(t *testing.T) {
	svc, _, _ := otpFixture(t)

	if _, err := svc.Verify(999, "12345"); err == nil {
		t.Fatal("expected error for user with no issued code")
	}
}
