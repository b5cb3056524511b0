package db

import (
	"database/sql"
	"fmt"
)

// Template is a stored invoice/timesheet layout.
type Template struct {
	ID          int64
	Name        string `validate:"required"`
	Description string
	Content     string `validate:"required"`
	Letterhead  []byte // nil when no letterhead is configured
}

const templateColumns = `id, name, description, content, letterhead`

// AddTemplate stores a new template.
func (s *Store) AddTemplate(t Template) (int64, error) {
	if err := validate.Struct(t); err != nil {
		return 0, fmt.Errorf("invalid template: %w", err)
	}

	result, err := s.conn.Exec(`
		INSERT INTO templates (name, description, content, letterhead)
		VALUES (?, ?, ?, ?)`,
		t.Name, t.Description, t.Content, t.Letterhead,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to add template: %w", err)
	}
	return result.LastInsertId()
}

// UpdateTemplate replaces the description, content and letterhead of a template.
func (s *Store) UpdateTemplate(t Template) error {
	result, err := s.conn.Exec(`
		UPDATE templates SET description = ?, content = ?, letterhead = ?
		WHERE id = ?`,
		t.Description, t.Content, t.Letterhead, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	return checkAffected(result, func() error { return notFoundByID("template", t.ID) })
}

// DeleteTemplate deletes a template by name.
func (s *Store) DeleteTemplate(name string) error {
	result, err := s.conn.Exec(`DELETE FROM templates WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return checkAffected(result, func() error { return notFoundByName("template", name, s.names("templates")) })
}

// GetTemplate retrieves a template by id.
func (s *Store) GetTemplate(id int64) (*Template, error) {
	t, err := scanTemplate(s.conn.QueryRow(`SELECT `+templateColumns+` FROM templates WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, notFoundByID("template", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return t, nil
}

// GetTemplateByName retrieves a template by its unique name.
func (s *Store) GetTemplateByName(name string) (*Template, error) {
	t, err := scanTemplate(s.conn.QueryRow(`SELECT `+templateColumns+` FROM templates WHERE name = ?`, name))
	if err == sql.ErrNoRows {
		return nil, notFoundByName("template", name, s.names("templates"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return t, nil
}

// ListTemplates retrieves all templates.
func (s *Store) ListTemplates() ([]Template, error) {
	rows, err := s.conn.Query(`SELECT ` + templateColumns + ` FROM templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

func scanTemplate(row scanner) (*Template, error) {
	var t Template
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Content, &t.Letterhead); err != nil {
		return nil, err
	}
	if len(t.Letterhead) == 0 {
		t.Letterhead = nil
	}
	return &t, nil
}
