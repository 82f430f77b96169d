package models

import "time"

// NutritionAnalysis is one saved food analysis. Rows are insert-only: a
// record is created by a save, never updated, and removed only by an
// explicit user delete. The Total* columns mirror the blob's total object so
// daily aggregation can run without parsing JSON; nil means the producer did
// not supply the field.
type NutritionAnalysis struct {
	ID              uint     `gorm:"primaryKey" json:"ID"`
	UserID          string   `gorm:"size:64;index;not null" json:"UserID"`
	ImagePath       string   `gorm:"size:512;not null" json:"ImagePath"`
	AnalysisData    string   `gorm:"type:text" json:"AnalysisData"`
	ConfidenceScore *float64 `json:"ConfidenceScore"`
	TotalCalories   *float64 `json:"TotalCalories"`
	TotalProtein    *float64 `json:"TotalProtein"`
	TotalCarbs      *float64 `json:"TotalCarbs"`
	TotalFat        *float64 `json:"TotalFat"`
	TotalFiber      *float64 `json:"TotalFiber"`
	ProcessedBy     string   `gorm:"size:32;index" json:"ProcessedBy"` // "background_service" | "manual_app"
	DeviceInfo      string   `gorm:"size:255" json:"DeviceInfo"`

	CreatedAt time.Time `gorm:"index" json:"CreatedAt"`
}

func (NutritionAnalysis) TableName() string { return "food_nutrition_analyses" }
