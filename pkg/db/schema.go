// Package db provides SQLite storage for accounts, clients, templates, invoices, timesheets and tags.
package db

// SchemaVersion is stamped into the metadata table of every database this program creates.
const SchemaVersion = "1"

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Billing entities. Each client belongs to one account.
CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    address TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    pan TEXT NOT NULL DEFAULT '',
    serv_tax_num TEXT NOT NULL DEFAULT '',
    bank_details TEXT NOT NULL DEFAULT '',
    prefix TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS clients (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    address TEXT NOT NULL,
    contact TEXT NOT NULL DEFAULT '',
    account_id INTEGER NOT NULL REFERENCES accounts(id)
);

-- Templates hold the YAML layout and an optional letterhead (PDF or image bytes)
CREATE TABLE IF NOT EXISTS templates (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL,
    letterhead BLOB
);

CREATE TABLE IF NOT EXISTS invoices (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    disp_number INTEGER NOT NULL,
    date TEXT NOT NULL,                -- YYYY-MM-DD
    particulars TEXT NOT NULL,
    content TEXT NOT NULL,
    client_id INTEGER NOT NULL REFERENCES clients(id),
    template_id INTEGER NOT NULL REFERENCES templates(id)
);

CREATE INDEX IF NOT EXISTS idx_invoices_client_date
    ON invoices(client_id, date);

-- data is a JSON object of YYYY-MM-DD -> hours
CREATE TABLE IF NOT EXISTS timesheets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,
    employee TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    data TEXT NOT NULL DEFAULT '{}',
    client_id INTEGER NOT NULL REFERENCES clients(id),
    template_id INTEGER NOT NULL REFERENCES templates(id)
);

CREATE TABLE IF NOT EXISTS tags (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS invoice_tags (
    invoice_id INTEGER NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
    tag_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (invoice_id, tag_id)
);

-- Key-value bookkeeping: schema version, invoice number counter
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
