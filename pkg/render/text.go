package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/hamon-in/invoice/pkg/document"
)

const (
	bannerWidth = 80
	dateLayout  = "02/01/2006"
)

// timesheetWidths are the fixed Day, Date and Hours column widths.
var timesheetWidths = []int{10, 15, 10}

// TextRenderer writes monospaced documents with aligned columns.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (r *TextRenderer) Format() string    { return "text" }
func (r *TextRenderer) Extension() string { return "txt" }
func (r *TextRenderer) Binary() bool      { return false }

// RenderInvoice writes the invoice between two "=" banners.
func (r *TextRenderer) RenderInvoice(w io.Writer, inv *document.Invoice) error {
	var lines []string
	add := func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("%s", banner())
	add("Date: %s", inv.Date.Format(dateLayout))
	add("")
	add("Invoice Number: %s", inv.Number)
	add("")
	add("Bill to:")
	lines = append(lines, indent(inv.Client.Name)...)
	lines = append(lines, indent(inv.Client.Address)...)
	add("")
	add("Subject: %s", inv.Subject)
	add("")

	table := inv.Table
	f := table.TextFormat()
	add("%s", f.Separator())
	add("%s", f.Header(table.Header))
	add("%s", f.Separator())
	for _, row := range table.Body {
		add("%s", f.Data(row))
	}
	add("%s", f.Separator())
	for _, row := range table.Footer {
		add("%s", f.Data(document.FooterText(row)))
	}
	add("%s", f.Separator())

	add("")
	add("Payment details:")
	lines = append(lines, indent(inv.BankDetails)...)
	if inv.PAN != "" {
		add(" PAN: %s", inv.PAN)
	}
	if inv.ServiceTax != "" {
		add(" Service tax number: %s", inv.ServiceTax)
	}
	add("%s", banner())

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// RenderTimesheet writes the timesheet with fixed, centered columns.
func (r *TextRenderer) RenderTimesheet(w io.Writer, ts *document.Timesheet) error {
	var lines []string
	add := func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("%s", banner())
	add("Date: %s", ts.Date.Format(dateLayout))
	add("")
	add("Client: %s", ts.Client.Name)
	add("Employee: %s", ts.Employee)
	add("")
	add("Description: %s", ts.Description)
	add("")

	f := document.TextFormat{Widths: timesheetWidths}
	add("%s", f.Header(ts.Table.Header))
	add("%s", f.Separator())
	for _, row := range ts.Table.Body {
		add("%s", f.Header(row))
	}
	add("%s", f.Separator())
	for _, row := range ts.Table.Footer {
		add("%s", f.Header(document.FooterText(row)))
	}
	add("")
	add("%s", banner())

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func banner() string {
	return strings.Repeat("=", bannerWidth)
}

func indent(block string) []string {
	if strings.TrimSpace(block) == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(block, "\n") {
		out = append(out, " "+strings.TrimRight(line, " \r"))
	}
	return out
}
