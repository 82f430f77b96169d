package services

import (
	"context"
	"errors"
	"time"

	"wellnessbuddy/models"
	"wellnessbuddy/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const otpTTL = 5 * time.Minute

var (
	ErrOTPNotFound = errors.New("no active OTP found")
	ErrOTPExpired  = errors.New("OTP expired")
	ErrOTPMismatch = errors.New("invalid OTP")
)

type OTPService struct{ db *gorm.DB }

func NewOTPService(db *gorm.DB) *OTPService { return &OTPService{db: db} }

// Issue deactivates any previous token for the recipient, then stores a
// fresh 6-digit code hashed with bcrypt. The deactivate-then-insert pair is
// not atomic; two concurrent issues can briefly leave two active tokens,
// which the 5-minute expiry bounds. Returns the plain code for delivery.
func (s *OTPService) Issue(ctx context.Context, recipient, contactType string) (string, error) {
	if err := s.db.WithContext(ctx).
		Model(&models.OTPToken{}).
		Where("recipient = ? AND contact_type = ? AND is_active = ?", recipient, contactType, true).
		Update("is_active", false).Error; err != nil {
		return "", err
	}

	code := utils.GenerateOTP()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	token := &models.OTPToken{
		Recipient:   recipient,
		OTPHash:     string(hash),
		ExpiresAt:   time.Now().Add(otpTTL),
		ContactType: contactType,
		IsActive:    true,
	}
	if err := s.db.WithContext(ctx).Create(token).Error; err != nil {
		return "", err
	}

	utils.Log.WithFields(logrus.Fields{
		"recipient":    recipient,
		"contact_type": contactType,
	}).Info("OTP issued")
	return code, nil
}

// Verify consumes the newest active token for the recipient. Expired and
// mismatched codes are distinct failures so the client can prompt
// appropriately; a match deactivates the token permanently.
func (s *OTPService) Verify(ctx context.Context, recipient, otp, contactType string) error {
	var token models.OTPToken
	err := s.db.WithContext(ctx).
		Where("recipient = ? AND contact_type = ? AND is_active = ?", recipient, contactType, true).
		Order("id DESC").
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOTPNotFound
	}
	if err != nil {
		return err
	}

	if err := checkToken(&token, otp, time.Now()); err != nil {
		return err
	}

	return s.db.WithContext(ctx).
		Model(&token).
		Updates(map[string]any{"verified": true, "is_active": false}).Error
}

// checkToken validates expiry then the bcrypt hash.
func checkToken(token *models.OTPToken, otp string, now time.Time) error {
	if now.After(token.ExpiresAt) {
		return ErrOTPExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(token.OTPHash), []byte(otp)) != nil {
		return ErrOTPMismatch
	}
	return nil
}
