package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-otp-register/internal/domain"
	"github.com/redis/go-redis/v9"
)

// expiredRetention keeps an expired OTP readable (so it can be reported as
// expired rather than missing) before the key itself expires.
const expiredRetention = 24 * time.Hour

// OTPRepo stores issued codes as a Redis list per email, newest first.
type OTPRepo struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewOTPRepo(rdb redis.UniversalClient) *OTPRepo {
	return &OTPRepo{rdb: rdb, prefix: "otp_codes:"}
}

func (r *OTPRepo) key(email string) string {
	return r.prefix + email
}

func (r *OTPRepo) Insert(ctx context.Context, rec *domain.OTPRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal otp: %w", err)
	}
	key := r.key(rec.Email)
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, b)
		pipe.ExpireAt(ctx, key, rec.ExpiresAt.Add(expiredRetention))
		return nil
	})
	return err
}

func (r *OTPRepo) Latest(ctx context.Context, email string) (*domain.OTPRecord, error) {
	raw, err := r.rdb.LIndex(ctx, r.key(email), 0).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("otp not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var rec domain.OTPRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal otp: %w", err)
	}
	return &rec, nil
}

func (r *OTPRepo) DeleteByEmail(ctx context.Context, email string) error {
	return r.rdb.Del(ctx, r.key(email)).Err()
}

func (r *OTPRepo) CountByEmail(ctx context.Context, email string) (int, error) {
	n, err := r.rdb.LLen(ctx, r.key(email)).Result()
	return int(n), err
}
