package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_PORT", "PORT", "STORE_DRIVER", "OTP_STORE", "SMTP_USERNAME", "GMAIL_USER",
		"SMTP_PASSWORD", "GMAIL_APP_PASSWORD", "SMTP_FROM", "NOTIFY_TIMEOUT", "OTP_TTL",
		"REDIS_DB", "ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, DriverSQLite, cfg.OTPStore)
	assert.Equal(t, "register.db", cfg.SQLitePath)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 10*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, ChannelSMTP, cfg.NotifyChannel)
	assert.Equal(t, "noreply@example.com", cfg.SMTPFrom)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "users", cfg.DynamoTables.Users)
	assert.Equal(t, "otp_codes", cfg.DynamoTables.OTPCodes)
}

func TestLoad_LegacyVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("GMAIL_USER", "sender@gmail.com")
	t.Setenv("GMAIL_APP_PASSWORD", "app-pass")

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "sender@gmail.com", cfg.SMTPUsername)
	assert.Equal(t, "app-pass", cfg.SMTPPassword)
	assert.Equal(t, "sender@gmail.com", cfg.SMTPFrom)
}

func TestLoad_ExplicitOverridesLegacy(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("GMAIL_USER", "legacy@gmail.com")
	t.Setenv("SMTP_USERNAME", "smtp-user")

	cfg := Load()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "smtp-user", cfg.SMTPUsername)
}

func TestLoad_OTPStoreFollowsDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "Postgres")
	cfg := Load()
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, DriverPostgres, cfg.OTPStore)

	t.Setenv("OTP_STORE", "redis")
	cfg = Load()
	assert.Equal(t, DriverRedis, cfg.OTPStore)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("NOTIFY_TIMEOUT", "soon")
	t.Setenv("OTP_TTL", "-1m")
	t.Setenv("REDIS_DB", "x")

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 0, cfg.RedisDB)
}
