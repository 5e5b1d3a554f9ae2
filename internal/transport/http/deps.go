package http

import (
	"context"

	"github.com/go-otp-register/internal/application/otp"
	"github.com/go-otp-register/internal/domain"
	"go.uber.org/zap"
)

// UserRepository is the credential store the router's services need.
// Implemented by sqlstore.UserRepo and dynamo.UserRepo.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	UpdateCredentials(ctx context.Context, email, nama, passwordHash string) error
	MarkVerified(ctx context.Context, email string) error
	List(ctx context.Context) ([]domain.User, error)
}

// OTPRepository is the OTP ledger. Implemented by sqlstore.OTPRepo,
// dynamo.OTPRepo and redisstore.OTPRepo.
type OTPRepository interface {
	Insert(ctx context.Context, rec *domain.OTPRecord) error
	Latest(ctx context.Context, email string) (*domain.OTPRecord, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo UserRepository
	OTPRepo  OTPRepository
	Notifier otp.Notifier
	Logger   *zap.Logger
}
