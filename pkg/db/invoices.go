package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Invoice is a stored invoice. Content is the raw pipe-delimited body.
type Invoice struct {
	ID            int64
	DisplayNumber int64
	Date          time.Time
	Particulars   string `validate:"required"`
	Content       string
	ClientID      int64 `validate:"required"`
	TemplateID    int64 `validate:"required"`
	ClientName    string
	TemplateName  string
	Tags          []string
}

// InvoiceFilter narrows ListInvoices. Zero values match everything.
type InvoiceFilter struct {
	ClientID int64
	From     time.Time
	To       time.Time
	Tag      string
}

// InvoiceDetail is an invoice with everything needed to render it.
type InvoiceDetail struct {
	Invoice  Invoice
	Client   Client
	Account  Account
	Template Template
}

const invoiceSelect = `
	SELECT i.id, i.disp_number, i.date, i.particulars, i.content,
	       i.client_id, i.template_id, c.name, t.name
	FROM invoices i
	JOIN clients c ON c.id = i.client_id
	JOIN templates t ON t.id = i.template_id`

// AddInvoice stores a new invoice and attaches its tags in one transaction.
// The display number is one greater than any number handed out before,
// including numbers of deleted invoices.
func (s *Store) AddInvoice(inv Invoice) (*Invoice, error) {
	if err := validate.Struct(inv); err != nil {
		return nil, fmt.Errorf("invalid invoice: %w", err)
	}

	err := s.conn.Transaction(func(tx *sql.Tx) error {
		number, err := nextInvoiceNumber(tx)
		if err != nil {
			return err
		}

		result, err := tx.Exec(`
			INSERT INTO invoices (disp_number, date, particulars, content, client_id, template_id)
			VALUES (?, ?, ?, ?, ?, ?)`,
			number, formatDate(inv.Date), inv.Particulars, inv.Content, inv.ClientID, inv.TemplateID,
		)
		if err != nil {
			return fmt.Errorf("failed to add invoice: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		if err := s.setInvoiceTags(tx, id, inv.Tags); err != nil {
			return err
		}

		inv.ID = id
		inv.DisplayNumber = number
		return setMetadata(tx, metaLastInvoiceNumber, strconv.FormatInt(number, 10))
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func nextInvoiceNumber(tx *sql.Tx) (int64, error) {
	var maxNumber int64
	if err := tx.QueryRow(`SELECT COALESCE(MAX(disp_number), 0) FROM invoices`).Scan(&maxNumber); err != nil {
		return 0, fmt.Errorf("failed to get invoice number: %w", err)
	}

	last, err := getMetadata(tx, metaLastInvoiceNumber)
	if err != nil {
		return 0, err
	}
	if last != "" {
		n, err := strconv.ParseInt(last, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", metaLastInvoiceNumber, last, err)
		}
		maxNumber = max(maxNumber, n)
	}
	return maxNumber + 1, nil
}

// UpdateInvoice rewrites every editable field of an invoice, including its tags.
func (s *Store) UpdateInvoice(inv Invoice) error {
	if err := validate.Struct(inv); err != nil {
		return fmt.Errorf("invalid invoice: %w", err)
	}

	return s.conn.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			UPDATE invoices
			SET date = ?, particulars = ?, content = ?, client_id = ?, template_id = ?
			WHERE id = ?`,
			formatDate(inv.Date), inv.Particulars, inv.Content, inv.ClientID, inv.TemplateID, inv.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		if err := checkAffected(result, func() error { return notFoundByID("invoice", inv.ID) }); err != nil {
			return err
		}
		return s.setInvoiceTags(tx, inv.ID, inv.Tags)
	})
}

// DeleteInvoice deletes an invoice by id.
func (s *Store) DeleteInvoice(id int64) error {
	result, err := s.conn.Exec(`DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return checkAffected(result, func() error { return notFoundByID("invoice", id) })
}

// GetInvoice retrieves an invoice and its tags by id.
func (s *Store) GetInvoice(id int64) (*Invoice, error) {
	inv, err := scanInvoice(s.conn.QueryRow(invoiceSelect+` WHERE i.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, notFoundByID("invoice", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if inv.Tags, err = s.invoiceTags(inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

// ListInvoices retrieves invoices matching filter, oldest first.
func (s *Store) ListInvoices(filter InvoiceFilter) ([]Invoice, error) {
	var where []string
	var args []interface{}
	if filter.ClientID != 0 {
		where = append(where, "i.client_id = ?")
		args = append(args, filter.ClientID)
	}
	if !filter.From.IsZero() {
		where = append(where, "i.date >= ?")
		args = append(args, formatDate(filter.From))
	}
	if !filter.To.IsZero() {
		where = append(where, "i.date <= ?")
		args = append(args, formatDate(filter.To))
	}
	if filter.Tag != "" {
		where = append(where, `i.id IN (
			SELECT it.invoice_id FROM invoice_tags it JOIN tags g ON g.id = it.tag_id
			WHERE g.name = ?)`)
		args = append(args, filter.Tag)
	}

	query := invoiceSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY i.date, i.disp_number"

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// tags are loaded once the cursor is closed; the connection pool holds one connection
	for i := range invoices {
		if invoices[i].Tags, err = s.invoiceTags(invoices[i].ID); err != nil {
			return nil, err
		}
	}
	return invoices, nil
}

// GetInvoiceDetail loads an invoice with its client, account and template.
func (s *Store) GetInvoiceDetail(id int64) (*InvoiceDetail, error) {
	inv, err := s.GetInvoice(id)
	if err != nil {
		return nil, err
	}
	client, err := s.GetClient(inv.ClientID)
	if err != nil {
		return nil, err
	}
	account, err := s.GetAccount(client.AccountID)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.GetTemplate(inv.TemplateID)
	if err != nil {
		return nil, err
	}
	return &InvoiceDetail{Invoice: *inv, Client: *client, Account: *account, Template: *tmpl}, nil
}

func scanInvoice(row scanner) (*Invoice, error) {
	var inv Invoice
	var date string
	if err := row.Scan(&inv.ID, &inv.DisplayNumber, &date, &inv.Particulars, &inv.Content,
		&inv.ClientID, &inv.TemplateID, &inv.ClientName, &inv.TemplateName); err != nil {
		return nil, err
	}
	var err error
	if inv.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	return &inv, nil
}
