package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Account table. Names are unique because positions reference
		-- accounts by name (platform), not by foreign key.
		CREATE TABLE account (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(50) NOT NULL UNIQUE,
			is_default BOOLEAN DEFAULT FALSE NOT NULL
		);

		-- Position table
		CREATE TABLE position (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			code VARCHAR(20) NOT NULL,
			name VARCHAR(100) NOT NULL,
			platform VARCHAR(50) NOT NULL,
			holding_shares FLOAT NOT NULL,
			cost_price FLOAT NOT NULL,
			current_nav FLOAT NOT NULL,
			last_update DATE NOT NULL,
			day_change_pct FLOAT DEFAULT 0 NOT NULL,
			day_change_val FLOAT DEFAULT 0 NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX idx_position_platform ON position(platform);
		CREATE INDEX idx_position_code ON position(code);

		-- System setting table (values may be stored encrypted)
		CREATE TABLE system_setting (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			"key" VARCHAR(30) NOT NULL UNIQUE,
			value VARCHAR(1000) NOT NULL,
			updated_at DATETIME
		);
	`

	_, err := db.Exec(schema)
	return err
}

// SeedDefaultAccounts inserts the seeded default accounts the production
// migrations create. Tests exercising account protection or the rename
// cascade call this explicitly; everything else starts from a clean table.
func SeedDefaultAccounts(t *testing.T, db *sql.DB) {
	t.Helper()

	seed := `
		INSERT INTO account (id, name, is_default) VALUES
			('5c1f1c9e-0d3a-4b6e-9a1f-6f0a2f1c0001', 'Default', TRUE),
			('5c1f1c9e-0d3a-4b6e-9a1f-6f0a2f1c0002', 'Alipay', TRUE),
			('5c1f1c9e-0d3a-4b6e-9a1f-6f0a2f1c0003', 'Tencent', TRUE),
			('5c1f1c9e-0d3a-4b6e-9a1f-6f0a2f1c0004', 'Bank', TRUE),
			('5c1f1c9e-0d3a-4b6e-9a1f-6f0a2f1c0005', 'Others', TRUE);
	`

	if _, err := db.Exec(seed); err != nil {
		t.Fatalf("Failed to seed default accounts: %v", err)
	}
}
