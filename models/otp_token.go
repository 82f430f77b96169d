package models

import "time"

// OTPToken holds one issued one-time passcode. At most one token per
// (Recipient, ContactType) is active: issuing a new one deactivates the
// previous ones first. Expired tokens stay in the table but are inert.
type OTPToken struct {
	ID          uint      `gorm:"primaryKey"`
	Recipient   string    `gorm:"size:255;index;not null"`
	OTPHash     string    `gorm:"size:255;not null"`
	ExpiresAt   time.Time `gorm:"not null"`
	ContactType string    `gorm:"size:16;index;default:phone"` // "email" | "phone"
	IsActive    bool      `gorm:"default:true"`
	Verified    bool      `gorm:"default:false"`
	CreatedAt   time.Time
}
