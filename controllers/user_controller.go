package controllers

import (
	"errors"
	"net/http"

	"wellnessbuddy/services"
	"wellnessbuddy/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Svc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{Svc: svc}
}

type SaveGoogleUserRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

func (h *UserController) SaveGoogleUser(c *gin.Context) {
	var req SaveGoogleUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.DisplayName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and Display Name are required"})
		return
	}

	user, err := h.Svc.UpsertByEmail(c.Request.Context(), req.Email, req.DisplayName, "Google Sign-In")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	token, err := utils.GenerateJWT(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "token": token})
}

// Me returns the profile of the authenticated user; AuthMiddleware puts the
// email claim on the context.
func (h *UserController) Me(c *gin.Context) {
	email := c.GetString("email")
	user, err := h.Svc.LookupByEmail(c.Request.Context(), email)
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// LookupUserID resolves the database user behind an identity-provider email.
// Both GET (query params) and POST (JSON body) are accepted.
func (h *UserController) LookupUserID(c *gin.Context) {
	email := c.Query("email")
	if c.Request.Method == http.MethodPost {
		var body struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&body); err == nil && body.Email != "" {
			email = body.Email
		}
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	user, err := h.Svc.LookupByEmail(c.Request.Context(), email)
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"userId":   user.ID,
		"userName": user.UserName,
		"email":    user.Email,
	})
}
