package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Supported drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

const (
	pingAttempts = 5
	pingBackoff  = 2 * time.Second
)

// InitDB opens the store for the given driver, applies connection settings
// and makes sure the users/tasks/activity_log tables exist.
func InitDB(driver, dsn string) (*sql.DB, error) {
	schema, ok := schemas[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	switch driver {
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	case DriverMySQL:
		var err error
		if dsn, err = mysqlDSN(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		if err := configureSQLite(db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if err := pingWithRetry(db, pingAttempts, pingBackoff); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := ensureSchema(db, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// sqliteDSN attaches the per-connection pragmas so every pooled connection
// enforces foreign keys, not only the first one.
func sqliteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// mysqlDSN makes the driver decode DATETIME columns into time.Time in UTC,
// which the activity timestamps rely on.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

func configureSQLite(db *sql.DB) error {
	// single writer; per-request connections queue on this one
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("set journal mode: %w", err)
	}
	return nil
}

// pingWithRetry gives a freshly started database container a few chances to come up.
func pingWithRetry(db *sql.DB, attempts int, backoff time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(backoff)
		}
	}
	return fmt.Errorf("ping database after %d attempts: %w", attempts, err)
}

func ensureSchema(db *sql.DB, stmts []string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
