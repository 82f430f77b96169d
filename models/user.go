package models

import "time"

// User is provisioned on first Google sign-in or first successful OTP
// verification, keyed by email.
type User struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	UserName       string  `gorm:"size:255" json:"username"`
	Email          string  `gorm:"uniqueIndex;not null" json:"email"`
	Status         string  `gorm:"size:16;default:Active" json:"status"`
	EntryUser      string  `gorm:"size:32" json:"-"` // provisioning source
	TargetWeightKg float64 `json:"target_weight_kg,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
