package dynamo

import "time"

// DynamoDB attribute names used in key, update and projection expressions.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldEmail     = "email"
	fieldOTPID     = "otp_id"
	fieldNama      = "nama"
	fieldPassword  = "password"
	fieldVerified  = "is_verified"
	fieldTTL       = "ttl"
	fieldUserID    = "user_id"
	fieldCreatedAt = "created_at"
)

// expiredRetention keeps an expired OTP readable (so it can be reported as
// expired rather than missing) before DynamoDB TTL removes it.
const expiredRetention = 24 * time.Hour

const tableWaitTimeout = 30 * time.Second
