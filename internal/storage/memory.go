package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rajmohan-14/Travel-itinerary/internal/models"
)

// MemoryStore holds all data in memory for testing
type MemoryStore struct {
	users map[uint]*models.User
	otps  map[uint]*models.UserOTP // keyed by user ID
	trips map[uint]*models.Trip

	// Mutexes for thread safety
	userMu sync.RWMutex
	otpMu  sync.RWMutex
	tripMu sync.RWMutex

	// Counters for ID generation
	userCounter uint
	otpCounter  uint
	tripCounter uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[uint]*models.User),
		otps:  make(map[uint]*models.UserOTP),
		trips: make(map[uint]*models.Trip),
	}
}

// User operations
func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	m.userCounter++
	user.ID = m.userCounter
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.TrimSpace(user.Username)
	user.IsActive = true
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) GetUserByID(id uint) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	return user, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

// OTP operations
func (m *MemoryStore) GetOrCreateOTP(userID uint) (*models.UserOTP, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	if otp, exists := m.otps[userID]; exists {
		return otp, nil
	}

	m.otpCounter++
	otp := &models.UserOTP{
		UserID:   userID,
		IssuedAt: time.Now(),
	}
	otp.ID = m.otpCounter
	otp.CreatedAt = time.Now()
	otp.UpdatedAt = time.Now()

	m.otps[userID] = otp
	return otp, nil
}

func (m *MemoryStore) GetOTPByUser(userID uint) (*models.UserOTP, error) {
	m.otpMu.RLock()
	defer m.otpMu.RUnlock()

	otp, exists := m.otps[userID]
	if !exists {
		return nil, ErrNotFound
	}
	return otp, nil
}

func (m *MemoryStore) UpdateOTP(otp *models.UserOTP) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	if _, exists := m.otps[otp.UserID]; !exists {
		return ErrNotFound
	}
	otp.UpdatedAt = time.Now()
	m.otps[otp.UserID] = otp
	return nil
}

// Trip operations
func (m *MemoryStore) CreateTrip(trip *models.Trip) (*models.Trip, error) {
	m.tripMu.Lock()
	defer m.tripMu.Unlock()

	m.tripCounter++
	trip.ID = m.tripCounter
	trip.CreatedAt = time.Now()
	trip.UpdatedAt = time.Now()

	m.trips[trip.ID] = trip
	return trip, nil
}

func (m *MemoryStore) GetTripByOwner(id, userID uint) (*models.Trip, error) {
	m.tripMu.RLock()
	defer m.tripMu.RUnlock()

	trip, exists := m.trips[id]
	if !exists || trip.UserID != userID {
		return nil, ErrNotFound
	}
	return trip, nil
}

func (m *MemoryStore) GetTripsByUser(userID uint) ([]*models.Trip, error) {
	m.tripMu.RLock()
	defer m.tripMu.RUnlock()

	var trips []*models.Trip
	for _, trip := range m.trips {
		if trip.UserID == userID {
			trips = append(trips, trip)
		}
	}

	// Newest first
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})
	return trips, nil
}

func (m *MemoryStore) UpdateTrip(trip *models.Trip) error {
	m.tripMu.Lock()
	defer m.tripMu.Unlock()

	if _, exists := m.trips[trip.ID]; !exists {
		return ErrNotFound
	}
	trip.UpdatedAt = time.Now()
	m.trips[trip.ID] = trip
	return nil
}

func (m *MemoryStore) DeleteTrip(id, userID uint) error {
	m.tripMu.Lock()
	defer m.tripMu.Unlock()

	trip, exists := m.trips[id]
	if !exists || trip.UserID != userID {
		return ErrNotFound
	}
	delete(m.trips, id)
	return nil
}

func (m *MemoryStore) Counts() (users, trips, otps int64, err error) {
	m.userMu.RLock()
	users = int64(len(m.users))
	m.userMu.RUnlock()

	m.tripMu.RLock()
	trips = int64(len(m.trips))
	m.tripMu.RUnlock()

	m.otpMu.RLock()
	otps = int64(len(m.otps))
	m.otpMu.RUnlock()

	return users, trips, otps, nil
}
