package controllers

import (
	"net/http"
	"time"

	"wellnessbuddy/models"
	"wellnessbuddy/nutrition"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// ServiceHealth pings the database and reports global capture counters.
func (h *HealthController) ServiceHealth(c *gin.Context) {
	ts := time.Now().Format(time.RFC3339)

	var one int
	if err := h.DB.WithContext(c.Request.Context()).Raw("SELECT 1").Scan(&one).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":    "unhealthy",
			"timestamp": ts,
			"error":     err.Error(),
			"database":  gin.H{"connected": false},
		})
		return
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var total, today, background int64
	base := h.DB.WithContext(c.Request.Context()).Model(&models.NutritionAnalysis{})
	base.Session(&gorm.Session{}).Count(&total)
	base.Session(&gorm.Session{}).
		Where("created_at >= ?", todayStart).
		Count(&today)
	base.Session(&gorm.Session{}).
		Where("processed_by = ?", nutrition.SourceBackground).
		Count(&background)

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": ts,
		"database":  gin.H{"connected": true, "testQuery": one == 1},
		"statistics": gin.H{
			"totalAnalyses":      total,
			"todayAnalyses":      today,
			"backgroundAnalyses": background,
		},
	})
}
