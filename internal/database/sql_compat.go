package database

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
)

var (
	activeDriverMu sync.RWMutex
	activeDriver   string
)

// setActiveDriver records the driver Connect actually opened, so the compat
// helpers agree with the live connection even when DB_DRIVER is unset.
func setActiveDriver(driver string) {
	activeDriverMu.Lock()
	activeDriver = strings.ToLower(driver)
	activeDriverMu.Unlock()
}

// GetDBDriver returns the active database driver name.
// Tests may override via TEST_DB_DRIVER.
func GetDBDriver() string {
	if driver := os.Getenv("TEST_DB_DRIVER"); driver != "" {
		return strings.ToLower(driver)
	}
	activeDriverMu.RLock()
	driver := activeDriver
	activeDriverMu.RUnlock()
	if driver == "" {
		driver = os.Getenv("DB_DRIVER")
	}
	if driver == "" {
		driver = "sqlite3"
	}
	return strings.ToLower(driver)
}

// IsMySQL returns true if using MySQL/MariaDB.
func IsMySQL() bool {
	driver := GetDBDriver()
	return driver == "mysql" || driver == "mariadb"
}

// IsPostgreSQL returns true if using PostgreSQL.
func IsPostgreSQL() bool {
	return GetDBDriver() == "postgres"
}

// IsSQLite returns true if using SQLite.
func IsSQLite() bool {
	return GetDBDriver() == "sqlite3"
}

var dollarPlaceholder = regexp.MustCompile(`\$\d+`)

// ConvertPlaceholders converts SQL placeholders to the format required by the
// current database. All queries in the codebase use ? placeholders; this is
// the only function that may rewrite them.
//
// - PostgreSQL: ? becomes $1, $2, ...
// - MySQL and SQLite: ? passed through as-is
//
// Queries written with $N placeholders panic: they would silently break the
// moment the driver changes.
func ConvertPlaceholders(query string) string {
	if dollarPlaceholder.MatchString(query) {
		panic(fmt.Sprintf("ConvertPlaceholders: $N placeholders are not allowed, use ?\nQuery: %s", query))
	}

	if !IsPostgreSQL() {
		return query
	}

	result := strings.Builder{}
	paramNum := 1
	for _, c := range query {
		if c == '?' {
			result.WriteString(fmt.Sprintf("$%d", paramNum))
			paramNum++
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// UpsertConflictClause returns the driver-specific tail of an upsert keyed on
// keyColumn, updating setColumns from the inserted values.
func UpsertConflictClause(keyColumn string, setColumns []string) string {
	if IsMySQL() {
		parts := make([]string, len(setColumns))
		for i, col := range setColumns {
			parts[i] = fmt.Sprintf("%s = VALUES(%s)", col, col)
		}
		return "ON DUPLICATE KEY UPDATE " + strings.Join(parts, ", ")
	}

	// PostgreSQL and SQLite share ON CONFLICT syntax.
	parts := make([]string, len(setColumns))
	for i, col := range setColumns {
		parts[i] = fmt.Sprintf("%s = excluded.%s", col, col)
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", keyColumn, strings.Join(parts, ", "))
}

// QuoteIdentifier quotes a table or column name for the active driver.
func QuoteIdentifier(name string) string {
	if IsMySQL() {
		return fmt.Sprintf("`%s`", name)
	}
	return name
}
