package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-otp-register/internal/domain"
	"github.com/go-otp-register/internal/pkg/id"
	"go.uber.org/zap"
)

const (
	defaultTTL           = 5 * time.Minute
	defaultNotifyTimeout = 10 * time.Second
)

// Service manages the lifecycle of one-time codes: issuing replaces any
// previous code for the email, validating consumes it.
type Service interface {
	Issue(ctx context.Context, u *domain.User) error
	Validate(ctx context.Context, email, code string) error
}

// Notifier delivers a freshly issued code to its owner.
type Notifier interface {
	Notify(ctx context.Context, u *domain.User, code string) error
}

type ledger interface {
	Insert(ctx context.Context, rec *domain.OTPRecord) error
	Latest(ctx context.Context, email string) (*domain.OTPRecord, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type verifiedMarker interface {
	MarkVerified(ctx context.Context, email string) error
}

type service struct {
	ledger        ledger
	users         verifiedMarker
	notifier      Notifier
	log           *zap.Logger
	ttl           time.Duration
	notifyTimeout time.Duration
	now           func() time.Time
	generate      func() (string, error)
}

type ServiceDeps struct {
	Ledger        ledger
	Users         verifiedMarker
	Notifier      Notifier
	Logger        *zap.Logger
	TTL           time.Duration
	NotifyTimeout time.Duration
	// Now and GenerateCode default to time.Now and GenerateCode.
	Now          func() time.Time
	GenerateCode func() (string, error)
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		ledger:        deps.Ledger,
		users:         deps.Users,
		notifier:      deps.Notifier,
		log:           deps.Logger,
		ttl:           deps.TTL,
		notifyTimeout: deps.NotifyTimeout,
		now:           deps.Now,
		generate:      deps.GenerateCode,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.ttl <= 0 {
		s.ttl = defaultTTL
	}
	if s.notifyTimeout <= 0 {
		s.notifyTimeout = defaultNotifyTimeout
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.generate == nil {
		s.generate = GenerateCode
	}
	return s
}

func (s *service) Issue(ctx context.Context, u *domain.User) error {
	if err := s.ledger.DeleteByEmail(ctx, u.Email); err != nil {
		s.log.Warn("failed to delete previous OTP codes", zap.String("email", u.Email), zap.Error(err))
	}

	code, err := s.generate()
	if err != nil {
		return fmt.Errorf("generate OTP code: %w", err)
	}
	now := s.now().UTC()
	rec := &domain.OTPRecord{
		OTPID:     id.NewAt(now),
		Email:     u.Email,
		Code:      code,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.ledger.Insert(ctx, rec); err != nil {
		return fmt.Errorf("store OTP code: %w", err)
	}

	nctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	if err := s.notifier.Notify(nctx, u, code); err != nil {
		s.log.Error("failed to deliver OTP code", zap.String("email", u.Email), zap.Error(err))
		return fmt.Errorf("deliver OTP code: %w: %w", domain.ErrDelivery, err)
	}
	s.log.Info("OTP code issued", zap.String("email", u.Email), zap.Time("expires_at", rec.ExpiresAt))
	return nil
}

func (s *service) Validate(ctx context.Context, email, code string) error {
	rec, err := s.ledger.Latest(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no OTP code for %s: %w", email, domain.ErrOTPNotFound)
	}
	if err != nil {
		return fmt.Errorf("load OTP code: %w", err)
	}

	if rec.State(s.now()) == domain.OTPStateExpired {
		if err := s.ledger.DeleteByEmail(ctx, email); err != nil {
			s.log.Warn("failed to delete expired OTP code", zap.String("email", email), zap.Error(err))
		}
		return fmt.Errorf("OTP code for %s: %w", email, domain.ErrOTPExpired)
	}
	if rec.Code != code {
		return fmt.Errorf("OTP code for %s: %w", email, domain.ErrOTPMismatch)
	}

	if err := s.users.MarkVerified(ctx, email); err != nil {
		return fmt.Errorf("mark user verified: %w", err)
	}
	if err := s.ledger.DeleteByEmail(ctx, email); err != nil {
		s.log.Warn("failed to delete used OTP code", zap.String("email", email), zap.Error(err))
	}
	s.log.Info("user verified", zap.String("email", email))
	return nil
}

// GenerateCode returns a uniformly random, zero-padded numeric code.
func GenerateCode() (string, error) {
	limit := big.NewInt(1)
	for range domain.OTPLength {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", domain.OTPLength, n.Int64()), nil
}
