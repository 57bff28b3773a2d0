package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// testSchema mirrors the production tables the repositories expect.
// Orders cascade on customer deletion so the inactivity purge can bulk
// delete customers directly.
var testSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT,
		last_order_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		stock INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		customer_id UUID NOT NULL REFERENCES customers (id) ON DELETE CASCADE,
		order_date TIMESTAMPTZ NOT NULL,
		total_amount NUMERIC(10,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_id UUID NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products (id),
		price NUMERIC(10,2) NOT NULL
	)`,
}

// SetupTestDB creates a connection to the test database and bootstraps the
// CRM tables. Tests that call this are skipped unless CRM_TEST_DB is set,
// so the unit suite stays runnable without PostgreSQL.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	connStr := os.Getenv("CRM_TEST_DB")
	if connStr == "" {
		t.Skip("CRM_TEST_DB not set, skipping database test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	for _, stmt := range testSchema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to bootstrap test schema: %v", err)
		}
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// SetupTestTransaction creates a test database connection and begins a transaction
// The transaction is automatically rolled back when the test ends
// This ensures test isolation without needing cleanup
func SetupTestTransaction(t *testing.T) (*sql.DB, *sql.Tx) {
	t.Helper()

	db := SetupTestDB(t)

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		tx.Rollback()
	})

	return db, tx
}

// CleanupTestDB removes all CRM rows between tests.
// Use this if you're not using transactions.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	// order_items and orders go first so customer/product deletes succeed
	for _, table := range []string{"order_items", "orders", "customers", "products"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Logf("Warning: Failed to clean up %s: %v", table, err)
		}
	}
}

// CreateTestCustomer inserts a customer row and returns its id
func CreateTestCustomer(t *testing.T, db *sql.DB, name, email string) string {
	t.Helper()

	var id string
	query := `
		INSERT INTO customers (id, name, email, created_at)
		VALUES (gen_random_uuid(), $1, $2, NOW())
		RETURNING id
	`
	if err := db.QueryRow(query, name, email).Scan(&id); err != nil {
		t.Fatalf("Failed to create test customer: %v", err)
	}
	return id
}

// CreateTestProduct inserts a product row and returns its id
func CreateTestProduct(t *testing.T, db *sql.DB, name, price string, stock int) string {
	t.Helper()

	var id string
	query := `
		INSERT INTO products (id, name, price, stock, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, NOW())
		RETURNING id
	`
	if err := db.QueryRow(query, name, price, stock).Scan(&id); err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return id
}
