package db

import (
	"database/sql"
	"fmt"
)

// Account is the company issuing invoices.
type Account struct {
	ID               int64
	Name             string `validate:"required"`
	Address          string `validate:"required"`
	Phone            string `validate:"required"`
	Email            string `validate:"required,email"`
	PAN              string
	ServiceTaxNumber string
	BankDetails      string `validate:"required"`
	Prefix           string // invoice number prefix
}

const accountColumns = `id, name, address, phone, email, pan, serv_tax_num, bank_details, prefix`

// AddAccount validates and stores a new account, returning its id.
func (s *Store) AddAccount(a Account) (int64, error) {
	if err := validate.Struct(a); err != nil {
		return 0, fmt.Errorf("invalid account: %w", err)
	}

	result, err := s.conn.Exec(`
		INSERT INTO accounts (name, address, phone, email, pan, serv_tax_num, bank_details, prefix)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.Address, a.Phone, a.Email, a.PAN, a.ServiceTaxNumber, a.BankDetails, a.Prefix,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to add account: %w", err)
	}
	return result.LastInsertId()
}

// GetAccount retrieves an account by id.
func (s *Store) GetAccount(id int64) (*Account, error) {
	a, err := scanAccount(s.conn.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, notFoundByID("account", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return a, nil
}

// GetAccountByName retrieves an account by its unique name.
func (s *Store) GetAccountByName(name string) (*Account, error) {
	a, err := scanAccount(s.conn.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE name = ?`, name))
	if err == sql.ErrNoRows {
		return nil, notFoundByName("account", name, s.names("accounts"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return a, nil
}

// ListAccounts retrieves all accounts ordered by id.
func (s *Store) ListAccounts() ([]Account, error) {
	rows, err := s.conn.Query(`SELECT ` + accountColumns + ` FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row scanner) (*Account, error) {
	var a Account
	if err := row.Scan(&a.ID, &a.Name, &a.Address, &a.Phone, &a.Email,
		&a.PAN, &a.ServiceTaxNumber, &a.BankDetails, &a.Prefix); err != nil {
		return nil, err
	}
	return &a, nil
}
