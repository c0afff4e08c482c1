package models

import (
	"time"

	"gorm.io/gorm"
)

// UserOTP holds the single live login code for a user. The code is
// regenerated on every (re)send and cleared once verified, so at most
// one code is live per user at any time.
type UserOTP struct {
	gorm.Model
	UserID   uint      `gorm:"uniqueIndex;not null"`
	Code     *string   // nil once consumed
	IssuedAt time.Time `gorm:"not null"`
}
