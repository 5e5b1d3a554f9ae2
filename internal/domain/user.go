package domain

import "time"

// User is a registered account. Email is the natural key and is unique.
type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	Nama         string    `json:"nama" dynamodbav:"nama"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"password"`
	Verified     bool      `json:"is_verified" dynamodbav:"is_verified"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
}

type RegisterRequest struct {
	Nama     string `json:"nama" validate:"required"`
	Email    string `json:"email" validate:"required,simple_email"`
	Password string `json:"password" validate:"required,min=6,max_bytes=72"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required"`
}
