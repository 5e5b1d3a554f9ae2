package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-otp-register/internal/domain"
)

// UserRepo persists users in the users table.
type UserRepo struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.db.QueryRowContext(ctx,
		r.db.q(`SELECT id, nama, email, password, is_verified, created_at FROM users WHERE email = ?`), email)
	var (
		u       domain.User
		created sqlTime
	)
	if err := row.Scan(&u.UserID, &u.Nama, &u.Email, &u.PasswordHash, &u.Verified, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	u.CreatedAt = created.t
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.db.ExecContext(ctx,
		r.db.q(`INSERT INTO users (id, nama, email, password, is_verified, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		u.UserID, u.Nama, u.Email, u.PasswordHash, u.Verified, formatTime(u.CreatedAt))
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	return err
}

func (r *UserRepo) UpdateCredentials(ctx context.Context, email, nama, passwordHash string) error {
	return r.exec(ctx, `UPDATE users SET nama = ?, password = ? WHERE email = ?`, nama, passwordHash, email)
}

func (r *UserRepo) MarkVerified(ctx context.Context, email string) error {
	return r.exec(ctx, `UPDATE users SET is_verified = ? WHERE email = ?`, true, email)
}

// List returns every user without the password hash, oldest first.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.db.QueryContext(ctx,
		`SELECT id, nama, email, is_verified, created_at FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var (
			u       domain.User
			created sqlTime
		)
		if err := rows.Scan(&u.UserID, &u.Nama, &u.Email, &u.Verified, &created); err != nil {
			return nil, err
		}
		u.CreatedAt = created.t
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.db.ExecContext(ctx, r.db.q(query), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return nil
}
