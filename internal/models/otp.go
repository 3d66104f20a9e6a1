package models

import "time"

// OtpCode is one issued verification code. Every send creates a new row;
// old rows are never reused and age out via the cleanup task.
type OtpCode struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"` // travels by email only
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}
