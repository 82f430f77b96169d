package controllers

import (
	"errors"
	"net/http"

	"wellnessbuddy/services"
	"wellnessbuddy/utils"

	"github.com/gin-gonic/gin"
)

type OTPController struct {
	OTP   *services.OTPService
	Users *services.UserService
}

func NewOTPController(otp *services.OTPService, users *services.UserService) *OTPController {
	return &OTPController{OTP: otp, Users: users}
}

type SendOTPRequest struct {
	Recipient   string `json:"recipient"`
	ContactType string `json:"contactType"`
}

func (h *OTPController) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Recipient == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Recipient is required"})
		return
	}
	if req.ContactType == "" {
		req.ContactType = "phone"
	}

	code, err := h.OTP.Issue(c.Request.Context(), req.Recipient, req.ContactType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if req.ContactType == "email" {
		if err := utils.SendOTPEmail(req.Recipient, code); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent"})
}

type VerifyOTPRequest struct {
	Recipient   string `json:"recipient"`
	OTP         string `json:"otp"`
	ContactType string `json:"contactType"`
}

func (h *OTPController) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Recipient == "" || req.OTP == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Recipient and OTP are required"})
		return
	}
	if req.ContactType == "" {
		req.ContactType = "email"
	}

	err := h.OTP.Verify(c.Request.Context(), req.Recipient, req.OTP, req.ContactType)
	switch {
	case errors.Is(err, services.ErrOTPNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "No active OTP found"})
		return
	case errors.Is(err, services.ErrOTPExpired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "OTP expired"})
		return
	case errors.Is(err, services.ErrOTPMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	user, err := h.Users.UpsertByEmail(c.Request.Context(), req.Recipient, "", "Wellness Buddy")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	token, err := utils.GenerateJWT(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP verified successfully",
		"user":    user,
		"token":   token,
	})
}
