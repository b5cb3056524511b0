package document

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamon-in/invoice/pkg/db"
)

func invoiceDetail(content string) *db.InvoiceDetail {
	return &db.InvoiceDetail{
		Invoice: db.Invoice{
			ID:            3,
			DisplayNumber: 12,
			Date:          day("2024-01-02"),
			Particulars:   "Consulting services",
			Content:       content,
			Tags:          []string{"pending"},
		},
		Client: db.Client{Name: "Acme", Address: `42 Road\nBangalore`},
		Account: db.Account{
			Name:             "Hamon",
			Address:          "1 Main St",
			BankDetails:      `Bank: X\nIFSC: Y`,
			PAN:              "ABCDE1234F",
			ServiceTaxNumber: "ST-1",
			Prefix:           "HT",
		},
		Template: db.Template{Content: TemplateSkeleton, Letterhead: []byte("%PDF-1.4")},
	}
}

func TestPrepareInvoice(t *testing.T) {
	inv, err := PrepareInvoice(invoiceDetail("| 1 | Work | 100 |\n"))
	require.NoError(t, err)

	assert.Equal(t, "HT/2023/2024-3", inv.Number)
	assert.Equal(t, int64(12), inv.DisplayNumber)
	assert.Equal(t, "42 Road\nBangalore", inv.Client.Address)
	assert.Equal(t, "Bank: X\nIFSC: Y", inv.BankDetails)
	assert.True(t, decimal.RequireFromString("114").Equal(inv.Totals.Gross))
	assert.Equal(t, []string{"", "Gross Total", "114.00 INR"}, FooterText(inv.Table.Footer[2]))
	assert.Equal(t, []byte("%PDF-1.4"), inv.Letterhead)
	assert.Equal(t, "Invoice-20240102-Acme-Consulting.pdf", inv.FileName("pdf"))
}

func TestPrepareInvoiceErrors(t *testing.T) {
	t.Run("bad content", func(t *testing.T) {
		_, err := PrepareInvoice(invoiceDetail("| 1 | Work | lots |"))
		var cfe *ContentFormatError
		assert.True(t, errors.As(err, &cfe))
	})

	t.Run("bad template", func(t *testing.T) {
		d := invoiceDetail("| 1 | Work | 1 |")
		d.Template.Content = "footer: '|x|'"
		_, err := PrepareInvoice(d)
		var tfe *TemplateFormatError
		assert.True(t, errors.As(err, &tfe))
	})
}

func TestPrepareTimesheet(t *testing.T) {
	ts, err := PrepareTimesheet(&db.TimesheetDetail{
		Timesheet: db.Timesheet{
			ID:          1,
			Date:        day("2024-01-31"),
			Employee:    "A. Person",
			Description: "January support",
			Hours:       map[string]decimal.Decimal{"2024-01-01": decimal.NewFromInt(8)},
		},
		Client: db.Client{Name: "Acme", Address: "x"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Timesheet-20240131-Acme-January-su.txt", ts.FileName("txt"))
	assert.Equal(t, []string{"", "Total hours", "8.00"}, FooterText(ts.Table.Footer[0]))
	assert.Nil(t, ts.Letterhead)
}

func TestPrepareTimesheetBadDay(t *testing.T) {
	_, err := PrepareTimesheet(&db.TimesheetDetail{
		Timesheet: db.Timesheet{
			Date:  day("2024-01-31"),
			Hours: map[string]decimal.Decimal{"2024-1-5": decimal.NewFromInt(8)},
		},
	})
	var cfe *ContentFormatError
	assert.True(t, errors.As(err, &cfe))
}

func TestExpandEscapes(t *testing.T) {
	assert.Equal(t, "a\nb\tc", ExpandEscapes(`a\nb\tc`))
	assert.Equal(t, "plain", ExpandEscapes("plain"))
}
