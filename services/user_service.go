package services

import (
	"context"
	"errors"
	"strings"

	"wellnessbuddy/models"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct{ db *gorm.DB }

func NewUserService(db *gorm.DB) *UserService { return &UserService{db: db} }

// UpsertByEmail returns the existing user for the email or provisions a new
// active one. userName falls back to the email's local part; entryUser
// records which flow created the row ("Google Sign-In" or "Wellness Buddy").
func (s *UserService) UpsertByEmail(ctx context.Context, email, userName, entryUser string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if userName == "" {
		userName = strings.SplitN(email, "@", 2)[0]
	}
	user = models.User{
		UserName:  userName,
		Email:     email,
		Status:    "Active",
		EntryUser: entryUser,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// LookupByEmail finds an active user; clients use this to resolve the
// database user ID behind an identity-provider email.
func (s *UserService) LookupByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, "Active").
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
