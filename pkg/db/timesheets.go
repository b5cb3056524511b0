package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Timesheet records the hours an employee worked for a client, keyed by day (YYYY-MM-DD).
type Timesheet struct {
	ID           int64
	Date         time.Time
	Employee     string `validate:"required"`
	Description  string
	Hours        map[string]decimal.Decimal
	ClientID     int64 `validate:"required"`
	TemplateID   int64 `validate:"required"`
	ClientName   string
	TemplateName string
}

// TimesheetDetail is a timesheet with everything needed to render it.
type TimesheetDetail struct {
	Timesheet Timesheet
	Client    Client
	Account   Account
	Template  Template
}

const timesheetSelect = `
	SELECT s.id, s.date, s.employee, s.description, s.data,
	       s.client_id, s.template_id, c.name, t.name
	FROM timesheets s
	JOIN clients c ON c.id = s.client_id
	JOIN templates t ON t.id = s.template_id`

// AddTimesheet stores a new timesheet.
func (s *Store) AddTimesheet(ts Timesheet) (int64, error) {
	if err := validate.Struct(ts); err != nil {
		return 0, fmt.Errorf("invalid timesheet: %w", err)
	}
	data, err := encodeHours(ts.Hours)
	if err != nil {
		return 0, err
	}

	result, err := s.conn.Exec(`
		INSERT INTO timesheets (date, employee, description, data, client_id, template_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		formatDate(ts.Date), ts.Employee, ts.Description, data, ts.ClientID, ts.TemplateID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to add timesheet: %w", err)
	}
	return result.LastInsertId()
}

// UpdateTimesheet rewrites every editable field of a timesheet.
func (s *Store) UpdateTimesheet(ts Timesheet) error {
	if err := validate.Struct(ts); err != nil {
		return fmt.Errorf("invalid timesheet: %w", err)
	}
	data, err := encodeHours(ts.Hours)
	if err != nil {
		return err
	}

	result, err := s.conn.Exec(`
		UPDATE timesheets
		SET date = ?, employee = ?, description = ?, data = ?, client_id = ?, template_id = ?
		WHERE id = ?`,
		formatDate(ts.Date), ts.Employee, ts.Description, data, ts.ClientID, ts.TemplateID, ts.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update timesheet: %w", err)
	}
	return checkAffected(result, func() error { return notFoundByID("timesheet", ts.ID) })
}

// DeleteTimesheet deletes a timesheet by id.
func (s *Store) DeleteTimesheet(id int64) error {
	result, err := s.conn.Exec(`DELETE FROM timesheets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete timesheet: %w", err)
	}
	return checkAffected(result, func() error { return notFoundByID("timesheet", id) })
}

// GetTimesheet retrieves a timesheet by id.
func (s *Store) GetTimesheet(id int64) (*Timesheet, error) {
	ts, err := scanTimesheet(s.conn.QueryRow(timesheetSelect+` WHERE s.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, notFoundByID("timesheet", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}
	return ts, nil
}

// ListTimesheets retrieves timesheets, optionally for one client and date range.
func (s *Store) ListTimesheets(clientID int64, from, to time.Time) ([]Timesheet, error) {
	query := timesheetSelect + ` WHERE (? = 0 OR s.client_id = ?)`
	args := []interface{}{clientID, clientID}
	if !from.IsZero() {
		query += ` AND s.date >= ?`
		args = append(args, formatDate(from))
	}
	if !to.IsZero() {
		query += ` AND s.date <= ?`
		args = append(args, formatDate(to))
	}
	query += ` ORDER BY s.date, s.id`

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var sheets []Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		sheets = append(sheets, *ts)
	}
	return sheets, rows.Err()
}

// GetTimesheetDetail loads a timesheet with its client, account and template.
func (s *Store) GetTimesheetDetail(id int64) (*TimesheetDetail, error) {
	ts, err := s.GetTimesheet(id)
	if err != nil {
		return nil, err
	}
	client, err := s.GetClient(ts.ClientID)
	if err != nil {
		return nil, err
	}
	account, err := s.GetAccount(client.AccountID)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.GetTemplate(ts.TemplateID)
	if err != nil {
		return nil, err
	}
	return &TimesheetDetail{Timesheet: *ts, Client: *client, Account: *account, Template: *tmpl}, nil
}

func encodeHours(hours map[string]decimal.Decimal) (string, error) {
	if hours == nil {
		hours = map[string]decimal.Decimal{}
	}
	data, err := json.Marshal(hours)
	if err != nil {
		return "", fmt.Errorf("failed to encode timesheet hours: %w", err)
	}
	return string(data), nil
}

func scanTimesheet(row scanner) (*Timesheet, error) {
	var ts Timesheet
	var date, data string
	if err := row.Scan(&ts.ID, &date, &ts.Employee, &ts.Description, &data,
		&ts.ClientID, &ts.TemplateID, &ts.ClientName, &ts.TemplateName); err != nil {
		return nil, err
	}

	var err error
	if ts.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &ts.Hours); err != nil {
		return nil, fmt.Errorf("invalid timesheet data for %d: %w", ts.ID, err)
	}
	return &ts, nil
}
