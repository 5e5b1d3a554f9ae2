package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverDynamo   = "dynamo"
	DriverRedis    = "redis"
)

// Notification channels.
const (
	ChannelSMTP = "smtp"
	ChannelSNS  = "sns"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string
	AppEnv         string
	LogLevel       string
	LogFile        string
	AllowedOrigins []string // CORS allowed origins
	StaticDir      string   // optional front-end directory served at /

	StoreDriver string // sqlite | postgres | dynamo
	OTPStore    string // defaults to StoreDriver; may also be redis
	SQLitePath  string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	OTPTTL        time.Duration
	NotifyChannel string
	NotifyTimeout time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPFromName string
	SMTPUsername string
	SMTPPassword string

	SNSRegion   string
	SNSTopicARN string
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users    string
	OTPCodes string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	storeDriver := strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite))
	smtpUser := getEnv("SMTP_USERNAME", os.Getenv("GMAIL_USER"))
	return &Config{
		AppPort:        getEnv("APP_PORT", getEnv("PORT", "3000")),
		AppEnv:         getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		StaticDir:      getEnv("STATIC_DIR", ""),

		StoreDriver: storeDriver,
		OTPStore:    strings.ToLower(getEnv("OTP_STORE", storeDriver)),
		SQLitePath:  getEnv("SQLITE_PATH", "register.db"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:    getEnv("DYNAMO_TABLE_USERS", "users"),
			OTPCodes: getEnv("DYNAMO_TABLE_OTP_CODES", "otp_codes"),
		},

		OTPTTL:        getEnvDuration("OTP_TTL", 5*time.Minute),
		NotifyChannel: strings.ToLower(getEnv("NOTIFY_CHANNEL", ChannelSMTP)),
		NotifyTimeout: getEnvDuration("NOTIFY_TIMEOUT", 10*time.Second),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", getEnv("GMAIL_USER", "noreply@example.com")),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Registrasi OTP"),
		SMTPUsername: smtpUser,
		SMTPPassword: getEnv("SMTP_PASSWORD", os.Getenv("GMAIL_APP_PASSWORD")),

		SNSRegion:   getEnv("SNS_REGION", "us-east-1"),
		SNSTopicARN: getEnv("SNS_TOPIC_ARN", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
