package controllers

import (
	"errors"
	"net/http"
	"strings"

	"wellnessbuddy/services"

	"github.com/gin-gonic/gin"
)

type AnalyzeController struct {
	Gemini *services.GeminiService
	Vision *services.VisionService // nil disables the pre-check
}

func NewAnalyzeController(gemini *services.GeminiService, vision *services.VisionService) *AnalyzeController {
	return &AnalyzeController{Gemini: gemini, Vision: vision}
}

type AnalyzeFoodRequest struct {
	ImageBase64 string `json:"imageBase64"`
	MimeType    string `json:"mimeType"`
	FoodText    string `json:"foodText"`
}

// AnalyzeFood runs AI nutrition estimation on either a photo or a food
// description and returns the canonical {foods, total, confidence} shape
// that save-analysis accepts.
func (h *AnalyzeController) AnalyzeFood(c *gin.Context) {
	var req AnalyzeFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.ImageBase64 == "" && req.FoodText == "") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "imageBase64 or foodText is required"})
		return
	}

	if req.ImageBase64 != "" {
		// Accept both raw base64 and data URIs.
		mimeType := req.MimeType
		data := req.ImageBase64
		if strings.HasPrefix(data, "data:") {
			if meta, rest, ok := strings.Cut(data, ","); ok {
				data = rest
				mimeType = strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
			}
		}
		if mimeType == "" {
			mimeType = "image/jpeg"
		}

		if h.Vision != nil {
			labels, err := h.Vision.DetectLabels(c.Request.Context(), data)
			if err == nil && !services.LooksLikeFood(labels) {
				c.JSON(http.StatusBadRequest, gin.H{
					"message": "No food detected in the image",
					"labels":  labels,
				})
				return
			}
		}

		rec, err := h.Gemini.AnalyzeImage(c.Request.Context(), data, mimeType)
		if err != nil {
			h.analysisError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "analysis": rec})
		return
	}

	rec, err := h.Gemini.AnalyzeText(c.Request.Context(), req.FoodText)
	if err != nil {
		h.analysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": rec})
}

func (h *AnalyzeController) analysisError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrInvalidResponseFormat) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Invalid response format from analysis",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Analysis failed",
		"error":   err.Error(),
	})
}
