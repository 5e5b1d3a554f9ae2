package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")

	// Registration and OTP lifecycle outcomes.
	ErrAlreadyVerified = errors.New("account already verified")
	ErrOTPNotFound     = errors.New("otp not found")
	ErrOTPExpired      = errors.New("otp expired")
	ErrOTPMismatch     = errors.New("otp mismatch")

	// ErrDelivery marks a failed hand-off to the notification channel.
	// The OTP record written before the send is left in place.
	ErrDelivery = errors.New("notification delivery failed")
)
