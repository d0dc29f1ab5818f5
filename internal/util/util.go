package util

import (
	"database/sql"
	"os"

	"github.com/shopspring/decimal"
)

func DecimalPointer(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// NewTestDb opens the database named by PRICING_TEST_DB_URL. ok is false
// when the variable is unset so db-backed tests can skip.
func NewTestDb() (db *sql.DB, ok bool, err error) {
	connStr := os.Getenv("PRICING_TEST_DB_URL")
	if connStr == "" {
		return nil, false, nil
	}
	dbConn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, true, err
	}

	return dbConn, true, nil
}
