package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOTPRecord_State(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rec := &OTPRecord{Email: "alice@example.com", Code: "012345", CreatedAt: issued, ExpiresAt: issued.Add(5 * time.Minute)}

	tests := []struct {
		name string
		rec  *OTPRecord
		now  time.Time
		want OTPState
	}{
		{"nil record", nil, issued, OTPStateNone},
		{"just issued", rec, issued, OTPStateActive},
		{"one nanosecond before expiry", rec, rec.ExpiresAt.Add(-time.Nanosecond), OTPStateActive},
		{"exactly at expiry", rec, rec.ExpiresAt, OTPStateExpired},
		{"long after expiry", rec, rec.ExpiresAt.Add(time.Hour), OTPStateExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.State(tt.now))
		})
	}
}

func TestOTPState_String(t *testing.T) {
	assert.Equal(t, "none", OTPStateNone.String())
	assert.Equal(t, "active", OTPStateActive.String())
	assert.Equal(t, "expired", OTPStateExpired.String())
}
