package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rajmohan-14/Travel-itinerary/internal/models"
)

// DatabaseStore is the GORM-backed store used outside of tests.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store backed by the given database handle
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// User operations
func (s *DatabaseStore) CreateUser(user *models.User) (*models.User, error) {
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *DatabaseStore) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

// OTP operations
func (s *DatabaseStore) GetOrCreateOTP(userID uint) (*models.UserOTP, error) {
	var otp models.UserOTP
	err := s.db.Where("user_id = ?", userID).First(&otp).Error
	if err == nil {
		return &otp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	otp = models.UserOTP{UserID: userID}
	if err := s.db.Create(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}

func (s *DatabaseStore) GetOTPByUser(userID uint) (*models.UserOTP, error) {
	var otp models.UserOTP
	if err := s.db.Where("user_id = ?", userID).First(&otp).Error; err != nil {
		return nil, translateErr(err)
	}
	return &otp, nil
}

func (s *DatabaseStore) UpdateOTP(otp *models.UserOTP) error {
	// Save with Select so a cleared (nil) code is written out too
	return s.db.Model(otp).Select("code", "issued_at").Updates(map[string]interface{}{
		"code":      otp.Code,
		"issued_at": otp.IssuedAt,
	}).Error
}

// Trip operations
func (s *DatabaseStore) CreateTrip(trip *models.Trip) (*models.Trip, error) {
	if err := s.db.Create(trip).Error; err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *DatabaseStore) GetTripByOwner(id, userID uint) (*models.Trip, error) {
	var trip models.Trip
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&trip).Error; err != nil {
		return nil, translateErr(err)
	}
	return &trip, nil
}

func (s *DatabaseStore) GetTripsByUser(userID uint) ([]*models.Trip, error) {
	var trips []*models.Trip
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (s *DatabaseStore) UpdateTrip(trip *models.Trip) error {
	return s.db.Save(trip).Error
}

func (s *DatabaseStore) DeleteTrip(id, userID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Trip{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) Counts() (users, trips, otps int64, err error) {
	if err = s.db.Model(&models.User{}).Count(&users).Error; err != nil {
		return
	}
	if err = s.db.Model(&models.Trip{}).Count(&trips).Error; err != nil {
		return
	}
	err = s.db.Model(&models.UserOTP{}).Count(&otps).Error
	return
}
