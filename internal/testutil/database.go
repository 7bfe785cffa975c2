package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration-test database. Expects a MySQL instance
// on localhost:3306 with a database named 'brewline_test'; tests skip when
// it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/brewline_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	if _, err := db.Exec("DELETE FROM orders"); err != nil {
		t.Logf("failed to clean orders table: %v", err)
	}

	db.Close()
}

// SetupTestTables creates the orders table used by the integration tests.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id CHAR(36) NOT NULL PRIMARY KEY,
		userId VARCHAR(128) NOT NULL,
		itemName VARCHAR(255) NOT NULL,
		cupSize VARCHAR(50) NOT NULL DEFAULT 'N/A',
		sugarLevel VARCHAR(50) NOT NULL DEFAULT 'N/A',
		quantity INT NOT NULL,
		orderType VARCHAR(20) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'Pending',
		appFeedbackGiven TINYINT(1) NOT NULL DEFAULT 0,
		appRating INT,
		appComment TEXT,
		createdAt DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		updatedAt DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
		INDEX idx_status (status),
		INDEX idx_feedback (appFeedbackGiven)
	)`

	if _, err := db.Exec(createOrdersTable); err != nil {
		t.Logf("failed to create orders table: %v", err)
	}
}
