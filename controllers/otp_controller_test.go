package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func otpRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctl := NewOTPController(nil, nil)
	r.POST("/api/send-otp", ctl.SendOTP)
	r.POST("/api/verify-otp", ctl.VerifyOTP)
	return r
}

func TestSendOTPRequiresRecipient(t *testing.T) {
	w := perform(otpRouter(), http.MethodPost, "/api/send-otp", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Recipient is required")
}

func TestVerifyOTPRequiresRecipientAndCode(t *testing.T) {
	cases := []string{
		`{}`,
		`{"recipient":"user@example.com"}`,
		`{"otp":"123456"}`,
	}
	for _, body := range cases {
		w := perform(otpRouter(), http.MethodPost, "/api/verify-otp", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Recipient and OTP are required")
	}
}
