package services

import (
	"context"
	"encoding/json"
	"errors"

	"wellnessbuddy/models"
	"wellnessbuddy/nutrition"
	"wellnessbuddy/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

type AnalysisService struct {
	db  *gorm.DB
	hub *RealtimeHub
}

// hub may be nil; saves then simply skip the realtime broadcast.
func NewAnalysisService(db *gorm.DB, hub *RealtimeHub) *AnalysisService {
	return &AnalysisService{db: db, hub: hub}
}

type SaveAnalysisInput struct {
	UserID         string
	ImagePath      string
	AnalysisResult json.RawMessage
	DeviceInfo     string
}

// Save normalizes the payload into the canonical shape and inserts one row.
// Two concurrent saves of the same photo each get their own row; there is no
// dedup.
func (s *AnalysisService) Save(ctx context.Context, input SaveAnalysisInput) (*models.NutritionAnalysis, error) {
	res := nutrition.Normalize(input.AnalysisResult, input.DeviceInfo)

	rec := &models.NutritionAnalysis{
		UserID:          input.UserID,
		ImagePath:       input.ImagePath,
		AnalysisData:    string(res.Blob),
		ConfidenceScore: res.Confidence,
		TotalCalories:   res.Nutrients.Calories,
		TotalProtein:    res.Nutrients.Protein,
		TotalCarbs:      res.Nutrients.Carbs,
		TotalFat:        res.Nutrients.Fat,
		TotalFiber:      res.Nutrients.Fiber,
		ProcessedBy:     res.Source,
		DeviceInfo:      input.DeviceInfo,
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}

	utils.Log.WithFields(logrus.Fields{
		"user_id": rec.UserID,
		"id":      rec.ID,
		"shape":   res.Kind.String(),
		"source":  rec.ProcessedBy,
	}).Info("analysis saved")

	if s.hub != nil {
		s.hub.BroadcastAnalysisSaved(rec.UserID, rec)
	}
	return rec, nil
}

// List returns one user's analyses newest-first plus the total row count for
// pagination.
func (s *AnalysisService) List(ctx context.Context, userID string, limit, offset int) ([]models.NutritionAnalysis, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.db.WithContext(ctx).
		Model(&models.NutritionAnalysis{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.NutritionAnalysis
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

// Delete removes one analysis by ID. Missing rows report ErrAnalysisNotFound.
func (s *AnalysisService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.NutritionAnalysis{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAnalysisNotFound
	}

	utils.Log.WithFields(logrus.Fields{"id": id}).Info("analysis deleted")
	return nil
}
