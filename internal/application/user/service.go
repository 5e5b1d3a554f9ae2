package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-otp-register/internal/domain"
	"github.com/go-otp-register/internal/pkg/id"
	"github.com/go-otp-register/internal/pkg/keylock"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Resend(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
	List(ctx context.Context) ([]domain.User, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	UpdateCredentials(ctx context.Context, email, nama, passwordHash string) error
	List(ctx context.Context) ([]domain.User, error)
}

type otpIssuer interface {
	Issue(ctx context.Context, u *domain.User) error
	Validate(ctx context.Context, email, code string) error
}

type service struct {
	repo  userStore
	otp   otpIssuer
	locks *keylock.Locker
	log   *zap.Logger
	now   func() time.Time
}

type ServiceDeps struct {
	UserRepo userStore
	OTP      otpIssuer
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:  deps.UserRepo,
		otp:   deps.OTP,
		locks: keylock.New(),
		log:   deps.Logger,
		now:   deps.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Register creates the account, or overwrites name and password of an
// unverified one, then issues a fresh code. A delivery failure is returned
// together with the stored user.
func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	unlock := s.locks.Lock(req.Email)
	defer unlock()

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil && existing.Verified {
		return nil, fmt.Errorf("email %s: %w", req.Email, domain.ErrAlreadyVerified)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var u *domain.User
	if existing == nil {
		now := s.now().UTC()
		u = &domain.User{
			UserID:       id.NewAt(now),
			Nama:         req.Nama,
			Email:        req.Email,
			PasswordHash: string(hash),
			CreatedAt:    now,
		}
		if err := s.repo.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		s.log.Info("user registered", zap.String("email", u.Email))
	} else {
		if err := s.repo.UpdateCredentials(ctx, req.Email, req.Nama, string(hash)); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		u = existing
		u.Nama = req.Nama
		u.PasswordHash = string(hash)
		s.log.Info("unverified user re-registered", zap.String("email", u.Email))
	}

	if err := s.otp.Issue(ctx, u); err != nil {
		return u, err
	}
	return u, nil
}

func (s *service) Resend(ctx context.Context, email string) error {
	unlock := s.locks.Lock(email)
	defer unlock()

	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("email %s: %w", email, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if u.Verified {
		return fmt.Errorf("email %s: %w", email, domain.ErrAlreadyVerified)
	}
	return s.otp.Issue(ctx, u)
}

func (s *service) Verify(ctx context.Context, email, code string) error {
	unlock := s.locks.Lock(email)
	defer unlock()
	return s.otp.Validate(ctx, email, code)
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}
