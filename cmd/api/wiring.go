package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-otp-register/internal/application/otp"
	"github.com/go-otp-register/internal/config"
	"github.com/go-otp-register/internal/infrastructure/dynamo"
	"github.com/go-otp-register/internal/infrastructure/redisstore"
	"github.com/go-otp-register/internal/infrastructure/smtp"
	"github.com/go-otp-register/internal/infrastructure/sns"
	"github.com/go-otp-register/internal/infrastructure/sqlstore"
	"github.com/go-otp-register/internal/pkg/dbx"
	transporthttp "github.com/go-otp-register/internal/transport/http"
	"go.uber.org/zap"
)

// stores holds the selected backends and the resources to release on exit.
type stores struct {
	users   transporthttp.UserRepository
	otps    transporthttp.OTPRepository
	closers []func() error
}

func (s *stores) close(log *zap.Logger) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			log.Warn("failed to close store", zap.Error(err))
		}
	}
}

func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	st := &stores{}
	var (
		sqlDB     *sqlstore.DB
		dynClient *dynamodb.Client
	)

	switch cfg.StoreDriver {
	case config.DriverSQLite, config.DriverPostgres:
		dsn := cfg.SQLitePath
		if cfg.StoreDriver == config.DriverPostgres {
			dsn = cfg.DatabaseURL
		}
		db, err := sqlstore.Open(ctx, dbx.Dialect(cfg.StoreDriver), dsn)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, db.Close)
		if err := db.Bootstrap(ctx); err != nil {
			st.close(log)
			return nil, err
		}
		sqlDB = db
		st.users = sqlstore.NewUserRepo(db)
	case config.DriverDynamo:
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		dynamo.Bootstrap(ctx, client, cfg.DynamoTables, log.Named("dynamo"))
		dynClient = client
		st.users = dynamo.NewUserRepo(client, cfg.DynamoTables.Users)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	switch cfg.OTPStore {
	case config.DriverRedis:
		rdb, err := redisstore.NewClient(ctx, cfg)
		if err != nil {
			st.close(log)
			return nil, err
		}
		st.closers = append(st.closers, rdb.Close)
		st.otps = redisstore.NewOTPRepo(rdb)
	case cfg.StoreDriver:
		if sqlDB != nil {
			st.otps = sqlstore.NewOTPRepo(sqlDB)
		} else {
			st.otps = dynamo.NewOTPRepo(dynClient, cfg.DynamoTables.OTPCodes)
		}
	default:
		st.close(log)
		return nil, fmt.Errorf("OTP_STORE %q must be %q or match STORE_DRIVER %q", cfg.OTPStore, config.DriverRedis, cfg.StoreDriver)
	}
	return st, nil
}

func newNotifier(ctx context.Context, cfg *config.Config) (otp.Notifier, error) {
	switch cfg.NotifyChannel {
	case config.ChannelSMTP:
		return otp.NewMailNotifier(smtp.NewMailer(cfg), cfg.OTPTTL), nil
	case config.ChannelSNS:
		p, err := sns.NewPublisher(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return otp.NewMailNotifier(p, cfg.OTPTTL), nil
	default:
		return nil, fmt.Errorf("unknown NOTIFY_CHANNEL %q", cfg.NotifyChannel)
	}
}
