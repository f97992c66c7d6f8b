package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null" json:"-"`

	// OTP state. Both fields are written or cleared together in a single
	// update; only the OTP service mutates them.
	OtpCode   *string `gorm:"type:varchar(6)"`
	OtpExpiry *time.Time

	// Optional profile fields.
	Height   float64
	Sex      string
	Birthday *time.Time
}
