// Package postgrestest opens the integration database used by repository tests.
package postgrestest

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/dwikikusuma/marketplace/pkg/postgres"
)

// LockKey is the advisory lock that serializes tests sharing the database.
// Packages run in parallel under go test, so each test holds it from Open
// until cleanup.
const LockKey int64 = 0x6d6b74706c616365

// Open connects to TEST_DATABASE_URL, takes LockKey, applies migrations and
// empties every table. The test is skipped when the variable is unset.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := postgres.Open(postgres.Config{URL: dsn, MaxOpenConns: 20})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	conn, err := db.Conn(ctx)
	if err != nil {
		t.Fatalf("lock conn: %v", err)
	}
	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, LockKey); err != nil {
		_ = conn.Close()
		t.Fatalf("advisory lock: %v", err)
	}
	t.Cleanup(func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, LockKey)
		_ = conn.Close()
	})

	if err := postgres.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	const truncate = `TRUNCATE reports, wishlist, comments, order_items, orders,
cart_items, carts, listings, users RESTART IDENTITY CASCADE`
	if _, err := db.ExecContext(ctx, truncate); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

// SeedUser inserts a user and returns its id.
func SeedUser(t *testing.T, db *sql.DB, username string, admin bool) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(`
INSERT INTO users (username, email, password_hash, name, surname, is_admin)
VALUES ($1, $1 || '@example.com', 'x', 'n', 's', $2)
RETURNING id`, username, admin).Scan(&id)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

// SeedListing inserts a listing owned by sellerID and returns its id.
func SeedListing(t *testing.T, db *sql.DB, sellerID int64, name, price string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(`
INSERT INTO listings (seller_id, name, price) VALUES ($1, $2, $3::numeric)
RETURNING id`, sellerID, name, price).Scan(&id)
	if err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	return id
}
