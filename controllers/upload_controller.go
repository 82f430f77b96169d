package controllers

import (
	"net/http"

	"wellnessbuddy/utils"

	"github.com/gin-gonic/gin"
)

type UploadImageRequest struct {
	ImageBase64 string `json:"imageBase64" binding:"required"`
}

// UploadImage stores a food photo and returns the path to pass along as
// imagePath in save-analysis.
func UploadImage(c *gin.Context) {
	var req UploadImageRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "imageBase64 is required"})
		return
	}

	imagePath, err := utils.UploadFoodImageToS3(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "imagePath": imagePath})
}
