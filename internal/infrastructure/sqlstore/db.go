package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-otp-register/internal/pkg/dbx"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width UTC so stored timestamps sort lexicographically
// in SQLite TEXT columns and parse unchanged in Postgres.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DB owns the *sql.DB shared by the SQL repositories.
type DB struct {
	db      *sql.DB
	dialect dbx.Dialect
}

// Open connects to SQLite (dsn is a file path or URI) or Postgres (dsn is a
// connection URL) and pings the server.
func Open(ctx context.Context, dialect dbx.Dialect, dsn string) (*DB, error) {
	var driver string
	switch dialect {
	case dbx.SQLite:
		driver = "sqlite"
	case dbx.Postgres:
		driver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}
	if dsn == "" {
		return nil, fmt.Errorf("%s dsn is required", dialect)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if dialect == dbx.SQLite {
		// A single writer avoids SQLITE_BUSY between pooled connections.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return &DB{db: db, dialect: dialect}, nil
}

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// Bootstrap applies pending schema migrations for the connection's dialect.
// Safe to call on every startup.
func (d *DB) Bootstrap(ctx context.Context) error {
	dir, dialect := "migrations/sqlite", goose.DialectSQLite3
	if d.dialect == dbx.Postgres {
		dir, dialect = "migrations/postgres", goose.DialectPostgres
	}
	fsys, err := fs.Sub(migrations, dir)
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(dialect, d.db, fsys)
	if err != nil {
		return fmt.Errorf("migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) q(query string) string {
	return d.dialect.Rebind(query)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// sqlTime scans timestamps returned either as time.Time (pgx) or as text
// (SQLite).
type sqlTime struct{ t time.Time }

func (s *sqlTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		s.t = v.UTC()
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	case nil:
		s.t = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (s *sqlTime) parse(v string) error {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			s.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unparseable timestamp %q", v)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
