package dbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	q := "UPDATE users SET nama = ?, password = ? WHERE email = ?"
	assert.Equal(t, q, SQLite.Rebind(q))
	assert.Equal(t, "UPDATE users SET nama = $1, password = $2 WHERE email = $3", Postgres.Rebind(q))
}

func TestRebind_NoPlaceholders(t *testing.T) {
	q := "SELECT id, nama FROM users ORDER BY created_at"
	assert.Equal(t, q, Postgres.Rebind(q))
}
