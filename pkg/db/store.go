package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the storage format of invoice and timesheet dates.
const DateLayout = "2006-01-02"

var validate = validator.New()

// Store provides entity operations over a Connection.
type Store struct {
	conn *Connection
}

// NewStore creates a new Store instance.
func NewStore(conn *Connection) *Store {
	return &Store{conn: conn}
}

// Summary holds the number of rows of every entity.
type Summary struct {
	Accounts   int
	Clients    int
	Templates  int
	Invoices   int
	Timesheets int
	Tags       int
}

// GetSummary counts every entity in the database.
func (s *Store) GetSummary() (*Summary, error) {
	var sum Summary
	counts := []struct {
		table string
		dest  *int
	}{
		{"accounts", &sum.Accounts},
		{"clients", &sum.Clients},
		{"templates", &sum.Templates},
		{"invoices", &sum.Invoices},
		{"timesheets", &sum.Timesheets},
		{"tags", &sum.Tags},
	}
	for _, c := range counts {
		if err := s.conn.QueryRow("SELECT COUNT(*) FROM " + c.table).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}
	return &sum, nil
}

// names returns every value of a name column, used for not-found suggestions.
func (s *Store) names(table string) []string {
	return namesIn(s.conn.db, table)
}

func namesIn(q querier, table string) []string {
	rows, err := q.Query("SELECT name FROM " + table + " ORDER BY name")
	if err != nil {
		return nil
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err == nil {
			names = append(names, name)
		}
	}
	return names
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored date %q: %w", value, err)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// checkAffected returns notFound() when the statement matched no row.
func checkAffected(result sql.Result, notFound func() error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return notFound()
	}
	return nil
}
