package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"furnimart/internal/models"
	"furnimart/internal/ratelimit"
	"furnimart/internal/services"
)

type OTPHandler struct {
	otpService services.OTPService
	limiter    *ratelimit.Limiter
}

func NewOTPHandler(otpService services.OTPService, limiter *ratelimit.Limiter) *OTPHandler {
	return &OTPHandler{otpService: otpService, limiter: limiter}
}

// @Summary      Send a verification code
// @Description  Emails a one-time code valid for 10 minutes
// @Tags         OTP
// @Accept       json
// @Produce      json
// @Param        request  body      models.SendOTPRequest  true  "Target email"
// @Success      200      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Router       /api/send-otp [post]
func (h *OTPHandler) SendOTP(c *gin.Context) {
	var req models.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))

	key := ratelimit.Key("otp", c.ClientIP(), email)
	if !h.limiter.Allow(key) {
		retryAfter(c, h.limiter, key)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many OTP requests, try again later"})
		return
	}

	if err := h.otpService.Issue(email); err != nil {
		log.Printf("[otp][send] failed email=%q: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Verification code sent",
		"email":   email,
	})
}

// @Summary      Verify a code
// @Description  Consumes a one-time code and marks the email verified
// @Tags         OTP
// @Accept       json
// @Produce      json
// @Param        request  body      models.VerifyOTPRequest  true  "Email and code"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Router       /api/verify-otp [post]
func (h *OTPHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if err := h.otpService.Verify(email, req.OTP); err != nil {
		if errors.Is(err, services.ErrInvalidOrExpiredCode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired code"})
			return
		}
		log.Printf("[otp][verify] failed email=%q: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Email verified",
		"email":      email,
		"verifiedAt": time.Now().UTC().Format(time.RFC3339),
	})
}
