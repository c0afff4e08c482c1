package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is a registered traveler. Accounts are created at registration
// and activated immediately; login happens through email OTP only.
type User struct {
	gorm.Model

	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

// BeforeCreate hook to normalize identity fields
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Username = strings.TrimSpace(u.Username)
	return nil
}

// UserRegistration is the registration request payload
type UserRegistration struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=2,max=150"`
	Phone    string `json:"phone" validate:"omitempty,max=15"`
}
