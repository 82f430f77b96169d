package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strconv"
	"time"

	"wellnessbuddy/services"

	"github.com/gin-gonic/gin"
)

type AnalysisController struct {
	Svc *services.AnalysisService
}

func NewAnalysisController(svc *services.AnalysisService) *AnalysisController {
	return &AnalysisController{Svc: svc}
}

type SaveAnalysisRequest struct {
	UserID         string          `json:"userId"`
	ImagePath      string          `json:"imagePath"`
	AnalysisResult json.RawMessage `json:"analysisResult"`
	DeviceInfo     string          `json:"deviceInfo"`
	Timestamp      string          `json:"timestamp"`
}

func (h *AnalysisController) SaveAnalysis(c *gin.Context) {
	var req SaveAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.ImagePath == "" || len(req.AnalysisResult) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Missing required fields: userId, imagePath, analysisResult",
		})
		return
	}

	rec, err := h.Svc.Save(c.Request.Context(), services.SaveAnalysisInput{
		UserID:         req.UserID,
		ImagePath:      req.ImagePath,
		AnalysisResult: req.AnalysisResult,
		DeviceInfo:     req.DeviceInfo,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to save analysis",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      rec.ID,
		"message": "Analysis saved successfully",
		"data": gin.H{
			"userId":    rec.UserID,
			"imagePath": path.Base(rec.ImagePath),
			"nutrition": gin.H{
				"calories": rec.TotalCalories,
				"protein":  rec.TotalProtein,
				"carbs":    rec.TotalCarbs,
				"fat":      rec.TotalFat,
				"fiber":    rec.TotalFiber,
			},
			"confidence": rec.ConfidenceScore,
			"timestamp":  rec.CreatedAt.Format(time.RFC3339),
		},
	})
}

func (h *AnalysisController) GetAnalysis(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "UserId is required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, total, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rows,
		"pagination": gin.H{
			"total":   total,
			"limit":   limit,
			"offset":  offset,
			"hasMore": int64(offset+limit) < total,
		},
	})
}

type DeleteAnalysisRequest struct {
	ID uint `json:"id"`
}

func (h *AnalysisController) DeleteAnalysis(c *gin.Context) {
	var req DeleteAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Analysis ID is required",
		})
		return
	}

	err := h.Svc.Delete(c.Request.Context(), req.ID)
	if errors.Is(err, services.ErrAnalysisNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Analysis not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete analysis",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Analysis deleted successfully",
		"deletedId": req.ID,
	})
}
