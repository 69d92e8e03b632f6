package testutil

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"opply/internal/infrastructure/mysql"
)

const defaultTestDSN = "root:@tcp(localhost:3306)/opply_test?parseTime=true&clientFoundRows=true"

// SetupTestDB opens the integration test database, applying migrations on
// first use. Tests calling it are skipped when no database is reachable, so
// the suite stays runnable without infrastructure.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database unavailable: %v", err)
	}

	if err := mysql.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrating test database: %v", err)
	}

	return db
}

// CleanupTestDB empties all tables, children first so foreign keys hold.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{
		"order_items",
		"orders",
		"product_ingredients",
		"products",
		"ingredients",
		"suppliers",
		"buyers",
	}

	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("cleaning table %s: %v", table, err)
		}
	}
}
