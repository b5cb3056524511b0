package db

import (
	"database/sql"
	"fmt"
)

// Client is a customer billed under an account.
type Client struct {
	ID          int64
	Name        string `validate:"required"`
	Address     string `validate:"required"`
	Contact     string
	AccountID   int64 `validate:"required"`
	AccountName string
}

const clientSelect = `
	SELECT c.id, c.name, c.address, c.contact, c.account_id, a.name
	FROM clients c JOIN accounts a ON a.id = c.account_id`

// AddClient stores a new client under an existing account.
func (s *Store) AddClient(c Client) (int64, error) {
	if err := validate.Struct(c); err != nil {
		return 0, fmt.Errorf("invalid client: %w", err)
	}

	result, err := s.conn.Exec(`
		INSERT INTO clients (name, address, contact, account_id)
		VALUES (?, ?, ?, ?)`,
		c.Name, c.Address, c.Contact, c.AccountID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to add client: %w", err)
	}
	return result.LastInsertId()
}

// GetClient retrieves a client by id.
func (s *Store) GetClient(id int64) (*Client, error) {
	c, err := scanClient(s.conn.QueryRow(clientSelect+` WHERE c.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, notFoundByID("client", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// GetClientByName retrieves a client by its unique name.
func (s *Store) GetClientByName(name string) (*Client, error) {
	c, err := scanClient(s.conn.QueryRow(clientSelect+` WHERE c.name = ?`, name))
	if err == sql.ErrNoRows {
		return nil, notFoundByName("client", name, s.names("clients"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// ListClients retrieves all clients with their account names.
func (s *Store) ListClients() ([]Client, error) {
	rows, err := s.conn.Query(clientSelect + ` ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

func scanClient(row scanner) (*Client, error) {
	var c Client
	if err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Contact, &c.AccountID, &c.AccountName); err != nil {
		return nil, err
	}
	return &c, nil
}
