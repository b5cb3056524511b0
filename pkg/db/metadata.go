package db

import (
	"database/sql"
	"fmt"
)

// Metadata keys.
const (
	metaSchemaVersion     = "schema_version"
	metaLastInvoiceNumber = "last_invoice_number"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

func getMetadata(q querier, key string) (string, error) {
	var value string
	err := q.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}
	return value, nil
}

func setMetadata(q querier, key, value string) error {
	query := `
		INSERT INTO metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := q.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}
	return nil
}

// GetMetadata retrieves a metadata value. Missing keys return "".
func (s *Store) GetMetadata(key string) (string, error) {
	return getMetadata(s.conn.db, key)
}

// SetMetadata sets a metadata value.
func (s *Store) SetMetadata(key, value string) error {
	return setMetadata(s.conn.db, key, value)
}
