package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP generates a cryptographically secure 5-digit login code.
func GenerateOTP() (string, error) {
	max := big.NewInt(100000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}

	// Format with leading zeros to ensure exactly 5 digits
	return fmt.Sprintf("%05d", n.Int64()), nil
}

// RandomInRange returns a secure random integer in [min, max].
func RandomInRange(min, max int64) int64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(max-min+1))
	return min + n.Int64()
}

// GenerateTicketID generates a random ticket identifier like TKT483920.
func GenerateTicketID() string {
	return fmt.Sprintf("TKT%06d", RandomInRange(100000, 999999))
}
