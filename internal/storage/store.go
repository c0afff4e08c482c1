package storage

import (
	"errors"

	"github.com/rajmohan-14/Travel-itinerary/internal/models"
)

// ErrNotFound is returned when a record doesn't exist (or isn't owned
// by the requesting user).
var ErrNotFound = errors.New("record not found")

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// User operations
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)

	// OTP operations: one record per user, reused across (re)sends
	GetOrCreateOTP(userID uint) (*models.UserOTP, error)
	GetOTPByUser(userID uint) (*models.UserOTP, error)
	UpdateOTP(otp *models.UserOTP) error

	// Trip operations
	CreateTrip(trip *models.Trip) (*models.Trip, error)
	GetTripByOwner(id, userID uint) (*models.Trip, error)
	GetTripsByUser(userID uint) ([]*models.Trip, error)
	UpdateTrip(trip *models.Trip) error
	DeleteTrip(id, userID uint) error

	// Counts for the status endpoint
	Counts() (users, trips, otps int64, err error)
}
