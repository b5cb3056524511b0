package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInvoiceTable(t *testing.T) {
	tmpl, err := ParseTemplate(TemplateSkeleton)
	require.NoError(t, err)
	rows, err := ParseInvoiceContent("| 1 | Consulting | 1000 |\n| 2 | Support | 250.50 |\n")
	require.NoError(t, err)

	table, err := BuildInvoiceTable(tmpl, rows, ComputeTotals(NetTotal(rows), tmpl.Taxes))
	require.NoError(t, err)

	assert.Equal(t, []string{"Sl. No.", "Description", "Amount"}, table.Header)
	assert.Equal(t, [][]string{
		{"1", "Consulting", "1000 INR"},
		{"2", "Support", "250.50 INR"},
	}, table.Body)

	require.Len(t, table.Footer, 3)
	assert.Equal(t, []string{"", "Net Total", "1250.50 INR"}, FooterText(table.Footer[0]))
	assert.Equal(t, []string{"", "Service tax @ 14%", "175.07 INR"}, FooterText(table.Footer[1]))
	assert.Equal(t, []string{"", "Gross Total", "1425.57 INR"}, FooterText(table.Footer[2]))
	assert.True(t, table.Footer[2][1].Bold)

	// the parsed template is not modified
	assert.Equal(t, "{net_total}", tmpl.Footers[0][2].Text)
}

func TestBuildInvoiceTableUnknownPlaceholder(t *testing.T) {
	tmpl, err := ParseTemplate("rows: '|a|b|'\nfooter: '| Tax | {vat} |'\n")
	require.NoError(t, err)

	_, err = BuildInvoiceTable(tmpl, nil, ComputeTotals(decimal.Zero, nil))
	var tfe *TemplateFormatError
	require.True(t, errors.As(err, &tfe))
	assert.Equal(t, "footer", tfe.Key)
	assert.Contains(t, err.Error(), "{vat}")
}

func TestBuildInvoiceTableTaxNames(t *testing.T) {
	tmpl, err := ParseTemplate(`taxes:
  service-tax: 0.14
  GST 18%: 0.18
rows: "|Item|Amount|"
footer: |
  | Service tax | {service-tax} |
  | GST | { GST 18% } |
`)
	require.NoError(t, err)
	rows, err := ParseInvoiceContent("| Work | 100 |")
	require.NoError(t, err)

	table, err := BuildInvoiceTable(tmpl, rows, ComputeTotals(NetTotal(rows), tmpl.Taxes))
	require.NoError(t, err)
	require.Len(t, table.Footer, 2)
	assert.Equal(t, []string{"Service tax", "14.00"}, FooterText(table.Footer[0]))
	assert.Equal(t, []string{"GST", "18.00"}, FooterText(table.Footer[1]))
}

func TestBuildInvoiceTableUnknownNamedPlaceholder(t *testing.T) {
	tests := []struct {
		name   string
		footer string
	}{
		{"hyphenated", "| Tax | {no-such-tax} |"},
		{"spaces", "| Tax | {sales tax} |"},
		{"symbols", "| Tax | {vat%} |"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseTemplate("rows: '|a|b|'\nfooter: '" + tt.footer + "'\n")
			require.NoError(t, err)

			_, err = BuildInvoiceTable(tmpl, nil, ComputeTotals(decimal.Zero, nil))
			var tfe *TemplateFormatError
			require.True(t, errors.As(err, &tfe))
			assert.Equal(t, "footer", tfe.Key)
		})
	}
}

func TestBuildInvoiceTablePadsRows(t *testing.T) {
	tmpl, err := ParseTemplate("rows: '|Item|Amount|'\nfooter: '|{gross_total}|'\n")
	require.NoError(t, err)
	rows, err := ParseInvoiceContent("| a | b | 5 |")
	require.NoError(t, err)

	table, err := BuildInvoiceTable(tmpl, rows, ComputeTotals(NetTotal(rows), nil))
	require.NoError(t, err)

	assert.Equal(t, 3, table.Columns())
	assert.Equal(t, []string{"Item", "Amount", ""}, table.Header)
	assert.Equal(t, []string{"5.00", "", ""}, FooterText(table.Footer[0]))
}

func TestColumnWidthsAfterSubstitution(t *testing.T) {
	tmpl, err := ParseTemplate("rows: '|Item|Amt|'\nfooter: '|Total|{net_total}|'\n")
	require.NoError(t, err)
	rows, err := ParseInvoiceContent("|Work|123456.7|")
	require.NoError(t, err)

	table, err := BuildInvoiceTable(tmpl, rows, ComputeTotals(NetTotal(rows), nil))
	require.NoError(t, err)

	// widths are measured on substituted totals, not on "{net_total}"
	assert.Equal(t, []int{5, 9}, table.ColumnWidths())
}

func TestTextFormat(t *testing.T) {
	f := TextFormat{Widths: []int{4, 6}}

	assert.Equal(t, " a   |   bb  ", f.Header([]string{"a", "bb"}))
	assert.Equal(t, "   a |     bb", f.Data([]string{"a", "bb"}))
	assert.Equal(t, "-----+--------", f.Separator())
	assert.Equal(t, "toolong |       ", f.Data([]string{"toolong"}))
}

func TestTimesheetTable(t *testing.T) {
	hours := map[string]decimal.Decimal{
		"2024-01-02": decimal.RequireFromString("8"),
		"2024-01-01": decimal.RequireFromString("7.5"),
	}

	table, err := TimesheetTable(hours)
	require.NoError(t, err)
	assert.Equal(t, []string{"Day", "Date", "Hours"}, table.Header)
	assert.Equal(t, [][]string{
		{"Mon", "01 Jan 2024", "7.50"},
		{"Tue", "02 Jan 2024", "8.00"},
	}, table.Body)
	assert.Equal(t, []string{"", "Total hours", "15.50"}, FooterText(table.Footer[0]))
}

func TestTimesheetTableEmpty(t *testing.T) {
	table, err := TimesheetTable(nil)
	require.NoError(t, err)
	assert.Empty(t, table.Body)
	assert.True(t, strings.HasSuffix(FooterText(table.Footer[0])[2], "0.00"))
}

func TestTimesheetTableBadDay(t *testing.T) {
	hours := map[string]decimal.Decimal{
		"2024-01-01": decimal.NewFromInt(8),
		"01/02/2024": decimal.NewFromInt(8),
	}

	table, err := TimesheetTable(hours)
	assert.Nil(t, table)
	var cfe *ContentFormatError
	require.True(t, errors.As(err, &cfe))
	assert.Equal(t, "01/02/2024", cfe.Row)
	assert.Contains(t, err.Error(), "01/02/2024")
	assert.NotContains(t, err.Error(), "line 0")
}
