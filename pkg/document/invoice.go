package document

import (
	"strings"
	"time"

	"github.com/hamon-in/invoice/pkg/db"
	"github.com/shopspring/decimal"
)

// File name prefixes of generated documents.
const (
	InvoicePrefix   = "Invoice"
	TimesheetPrefix = "Timesheet"
)

// Party is the name and address block of an account or client.
type Party struct {
	Name    string
	Address string
}

// Invoice is a fully prepared invoice: every value a renderer needs, no further I/O.
type Invoice struct {
	ID            int64
	DisplayNumber int64
	Number        string
	Date          time.Time
	Subject       string
	Tags          []string

	Account     Party
	Client      Party
	BankDetails string
	PAN         string
	ServiceTax  string

	Template   *Template
	Rows       []Row
	Totals     Totals
	Table      *Table
	Letterhead []byte
}

// Timesheet is a fully prepared timesheet.
type Timesheet struct {
	ID          int64
	Date        time.Time
	Employee    string
	Description string
	Hours       map[string]decimal.Decimal

	Account Party
	Client  Party

	Table      *Table
	Letterhead []byte
}

// PrepareInvoice parses the template and content of a loaded invoice,
// computes its totals and lays out its table.
func PrepareInvoice(d *db.InvoiceDetail) (*Invoice, error) {
	tmpl, err := ParseTemplate(d.Template.Content)
	if err != nil {
		return nil, err
	}
	rows, err := ParseInvoiceContent(d.Invoice.Content)
	if err != nil {
		return nil, err
	}

	totals := ComputeTotals(NetTotal(rows), tmpl.Taxes)
	table, err := BuildInvoiceTable(tmpl, rows, totals)
	if err != nil {
		return nil, err
	}

	return &Invoice{
		ID:            d.Invoice.ID,
		DisplayNumber: d.Invoice.DisplayNumber,
		Number:        DisplayNumber(d.Account.Prefix, d.Invoice.Date, d.Invoice.ID),
		Date:          d.Invoice.Date,
		Subject:       d.Invoice.Particulars,
		Tags:          d.Invoice.Tags,
		Account:       Party{Name: d.Account.Name, Address: ExpandEscapes(d.Account.Address)},
		Client:        Party{Name: d.Client.Name, Address: ExpandEscapes(d.Client.Address)},
		BankDetails:   ExpandEscapes(d.Account.BankDetails),
		PAN:           d.Account.PAN,
		ServiceTax:    d.Account.ServiceTaxNumber,
		Template:      tmpl,
		Rows:          rows,
		Totals:        totals,
		Table:         table,
		Letterhead:    d.Template.Letterhead,
	}, nil
}

// PrepareTimesheet lays out a loaded timesheet.
func PrepareTimesheet(d *db.TimesheetDetail) (*Timesheet, error) {
	table, err := TimesheetTable(d.Timesheet.Hours)
	if err != nil {
		return nil, err
	}
	return &Timesheet{
		ID:          d.Timesheet.ID,
		Date:        d.Timesheet.Date,
		Employee:    d.Timesheet.Employee,
		Description: d.Timesheet.Description,
		Hours:       d.Timesheet.Hours,
		Account:     Party{Name: d.Account.Name, Address: ExpandEscapes(d.Account.Address)},
		Client:      Party{Name: d.Client.Name, Address: ExpandEscapes(d.Client.Address)},
		Table:       table,
		Letterhead:  d.Template.Letterhead,
	}, nil
}

// FileName is the base name of the generated invoice document.
func (inv *Invoice) FileName(ext string) string {
	return FileName(InvoicePrefix, inv.Date, inv.Client.Name, inv.Subject, ext)
}

// FileName is the base name of the generated timesheet document.
func (ts *Timesheet) FileName(ext string) string {
	return FileName(TimesheetPrefix, ts.Date, ts.Client.Name, ts.Description, ext)
}

// ExpandEscapes turns literal "\n" and "\t" sequences typed on the command line into
// real line breaks and tabs.
func ExpandEscapes(s string) string {
	return strings.NewReplacer(`\n`, "\n", `\t`, "\t").Replace(s)
}

func parseDay(key string) (time.Time, error) {
	return time.Parse(DayLayout, key)
}
