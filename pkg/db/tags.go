package db

import (
	"database/sql"
	"fmt"
)

// Tag labels invoices.
type Tag struct {
	ID          int64
	Name        string `validate:"required,excludesall=0x2C"`
	Description string
	Invoices    int
}

// AddTag stores a new tag.
func (s *Store) AddTag(t Tag) (int64, error) {
	if err := validate.Struct(t); err != nil {
		return 0, fmt.Errorf("invalid tag: %w", err)
	}
	result, err := s.conn.Exec(`INSERT INTO tags (name, description) VALUES (?, ?)`, t.Name, t.Description)
	if err != nil {
		return 0, fmt.Errorf("failed to add tag: %w", err)
	}
	return result.LastInsertId()
}

// DeleteTag deletes a tag and detaches it from every invoice.
func (s *Store) DeleteTag(name string) error {
	result, err := s.conn.Exec(`DELETE FROM tags WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return checkAffected(result, func() error { return notFoundByName("tag", name, s.names("tags")) })
}

// ListTags retrieves all tags with the number of invoices carrying each.
func (s *Store) ListTags() ([]Tag, error) {
	rows, err := s.conn.Query(`
		SELECT g.id, g.name, g.description, COUNT(it.invoice_id)
		FROM tags g LEFT JOIN invoice_tags it ON it.tag_id = g.id
		GROUP BY g.id
		ORDER BY g.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Invoices); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// setInvoiceTags replaces the tags of an invoice. Every tag must already exist.
func (s *Store) setInvoiceTags(tx *sql.Tx, invoiceID int64, tags []string) error {
	if _, err := tx.Exec(`DELETE FROM invoice_tags WHERE invoice_id = ?`, invoiceID); err != nil {
		return fmt.Errorf("failed to clear invoice tags: %w", err)
	}

	for _, name := range tags {
		var tagID int64
		err := tx.QueryRow(`SELECT id FROM tags WHERE name = ?`, name).Scan(&tagID)
		if err == sql.ErrNoRows {
			return notFoundByName("tag", name, namesIn(tx, "tags"))
		}
		if err != nil {
			return fmt.Errorf("failed to look up tag: %w", err)
		}
		if _, err := tx.Exec(`INSERT OR IGNORE INTO invoice_tags (invoice_id, tag_id) VALUES (?, ?)`, invoiceID, tagID); err != nil {
			return fmt.Errorf("failed to tag invoice: %w", err)
		}
	}
	return nil
}

func (s *Store) invoiceTags(invoiceID int64) ([]string, error) {
	rows, err := s.conn.Query(`
		SELECT g.name FROM tags g JOIN invoice_tags it ON it.tag_id = g.id
		WHERE it.invoice_id = ?
		ORDER BY g.name`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}
