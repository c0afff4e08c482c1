package services

import (
	"fmt"
	"time"

	"github.com/rajmohan-14/Travel-itinerary/internal/storage"
	"github.com/rajmohan-14/Travel-itinerary/internal/utils"
)

// OTPService issues and verifies the single-use 5-digit login codes.
type OTPService struct {
	store storage.Store
}

func NewOTPService(store storage.Store) *OTPService {
	return &OTPService{store: store}
}

// Issue generates a fresh code for the user, overwriting any unconsumed
// prior code. Exactly one code is live per user at a time.
func (s *OTPService) Issue(userID uint) (string, error) {
	code, err := utils.GenerateOTP()
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}

	otp, err := s.store.GetOrCreateOTP(userID)
	if err != nil {
		return "", err
	}

	otp.Code = &code
	otp.IssuedAt = time.Now()
	if err := s.store.UpdateOTP(otp); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks the submitted code against the stored one. On match the
// code is cleared so it can't be used twice.
func (s *OTPService) Verify(userID uint, code string) (bool, error) {
	otp, err := s.store.GetOTPByUser(userID)
	if err != nil {
		return false, err
	}

	if otp.Code == nil || *otp.Code != code {
		return false, nil
	}

	otp.Code = nil
	if err := s.store.UpdateOTP(otp); err != nil {
		return false, err
	}
	return true, nil
}
