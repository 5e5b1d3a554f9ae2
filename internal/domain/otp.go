package domain

import "time"

// OTPLength is the number of digits in an issued code.
const OTPLength = 6

// OTPState is derived from an OTPRecord and the current time; it is never stored.
type OTPState int

const (
	OTPStateNone OTPState = iota
	OTPStateActive
	OTPStateExpired
)

func (s OTPState) String() string {
	switch s {
	case OTPStateActive:
		return "active"
	case OTPStateExpired:
		return "expired"
	default:
		return "none"
	}
}

// OTPRecord is one issued code. Email is an informal reference to User.Email.
type OTPRecord struct {
	OTPID     string    `json:"id" dynamodbav:"otp_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Code      string    `json:"otp_code" dynamodbav:"otp_code"`
	ExpiresAt time.Time `json:"expires_at" dynamodbav:"expires_at"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// State reports the lifecycle state of r at now. A nil record is OTPStateNone.
func (r *OTPRecord) State(now time.Time) OTPState {
	if r == nil {
		return OTPStateNone
	}
	if now.Before(r.ExpiresAt) {
		return OTPStateActive
	}
	return OTPStateExpired
}
