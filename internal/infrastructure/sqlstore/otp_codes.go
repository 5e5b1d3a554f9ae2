package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-otp-register/internal/domain"
)

// OTPRepo persists issued codes in the otp_codes table.
type OTPRepo struct {
	db *DB
}

func NewOTPRepo(db *DB) *OTPRepo {
	return &OTPRepo{db: db}
}

func (r *OTPRepo) Insert(ctx context.Context, rec *domain.OTPRecord) error {
	_, err := r.db.db.ExecContext(ctx,
		r.db.q(`INSERT INTO otp_codes (id, email, otp_code, expires_at, created_at) VALUES (?, ?, ?, ?, ?)`),
		rec.OTPID, rec.Email, rec.Code, formatTime(rec.ExpiresAt), formatTime(rec.CreatedAt))
	return err
}

// Latest returns the most recently created record for email.
func (r *OTPRepo) Latest(ctx context.Context, email string) (*domain.OTPRecord, error) {
	row := r.db.db.QueryRowContext(ctx, r.db.q(
		`SELECT id, email, otp_code, expires_at, created_at FROM otp_codes
		 WHERE email = ? ORDER BY created_at DESC, id DESC LIMIT 1`), email)
	var (
		rec              domain.OTPRecord
		expires, created sqlTime
	)
	if err := row.Scan(&rec.OTPID, &rec.Email, &rec.Code, &expires, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("otp not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	rec.ExpiresAt = expires.t
	rec.CreatedAt = created.t
	return &rec, nil
}

func (r *OTPRepo) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.db.db.ExecContext(ctx, r.db.q(`DELETE FROM otp_codes WHERE email = ?`), email)
	return err
}

func (r *OTPRepo) CountByEmail(ctx context.Context, email string) (int, error) {
	var n int
	err := r.db.db.QueryRowContext(ctx, r.db.q(`SELECT COUNT(*) FROM otp_codes WHERE email = ?`), email).Scan(&n)
	return n, err
}
