package handler

import (
	"errors"
	"net/http"

	"github.com/go-otp-register/internal/domain"
	"github.com/go-otp-register/internal/pkg/validate"
	"go.uber.org/zap"
)

const (
	msgFieldsRequired   = "All fields are required."
	msgInvalidEmail     = "Invalid email format."
	msgPasswordTooShort = "Password must be at least 6 characters."
	msgPasswordTooLong  = "Password must be at most 72 bytes."
	msgVerifyRequired   = "Email and OTP code are required."
	msgEmailRequired    = "Email is required."

	msgEmailTaken       = "Email is already registered. Please use another email."
	msgAlreadyVerified  = "Account is already verified."
	msgEmailUnknown     = "Email not found. Please register first."
	msgOTPNotFound      = "OTP code not found. Please register again."
	msgOTPExpired       = "OTP code has expired. Please request a new one."
	msgOTPMismatch      = "Incorrect OTP code. Please try again."
	msgRegisterDelivery = "Registration succeeded, but the verification email could not be sent. Check the mail credentials."
	msgResendDelivery   = "Failed to send the email. Check the mail credentials."
	msgDatabase         = "Database error."
)

// validationMessage picks one message for a failed shape check, most basic
// problem first.
func validationMessage(err error) string {
	var ve *validate.Error
	if !errors.As(err, &ve) {
		return "invalid request body"
	}
	switch {
	case ve.Has("required"):
		return msgFieldsRequired
	case ve.Has("simple_email"):
		return msgInvalidEmail
	case ve.Has("min"):
		return msgPasswordTooShort
	case ve.Has("max_bytes"):
		return msgPasswordTooLong
	}
	return ve.Error()
}

// otpErrorStatus maps OTP validation outcomes to a status and message.
func otpErrorStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, domain.ErrOTPNotFound):
		return http.StatusBadRequest, msgOTPNotFound, true
	case errors.Is(err, domain.ErrOTPExpired):
		return http.StatusBadRequest, msgOTPExpired, true
	case errors.Is(err, domain.ErrOTPMismatch):
		return http.StatusBadRequest, msgOTPMismatch, true
	}
	return 0, "", false
}

// internalError logs the detail and answers with the generic persistence message.
func internalError(w http.ResponseWriter, r *http.Request, log *zap.Logger, op string, err error) {
	log.Error(op+" failed", zap.Error(err), zap.String("path", r.URL.Path))
	writeError(w, http.StatusInternalServerError, msgDatabase)
}
