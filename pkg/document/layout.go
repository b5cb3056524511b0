package document

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Table is the laid out content of a document: a header row, one body row
// per line item and the footer rows with totals substituted.
// Every row has exactly Columns() cells.
type Table struct {
	Header []string
	Body   [][]string
	Footer [][]Cell
}

// placeholderPattern matches "{name}"; tax names may hold any character but braces.
var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// BuildInvoiceTable lays out an invoice from its template, parsed rows and totals.
func BuildInvoiceTable(tmpl *Template, rows []Row, totals Totals) (*Table, error) {
	table := &Table{Header: append([]string(nil), tmpl.Fields...)}

	for _, r := range rows {
		cells := append([]string(nil), r.Cells...)
		cells[len(cells)-1] = withUnit(cells[len(cells)-1], tmpl.BillUnit)
		table.Body = append(table.Body, cells)
	}

	values := totals.Values()
	for _, footer := range tmpl.Footers {
		cells := make([]Cell, len(footer))
		for i, c := range footer {
			text, err := substitute(c.Text, values)
			if err != nil {
				return nil, err
			}
			cells[i] = Cell{Text: text, Bold: c.Bold}
		}
		if n := len(cells); n > 0 {
			cells[n-1].Text = withUnit(cells[n-1].Text, tmpl.BillUnit)
		}
		table.Footer = append(table.Footer, cells)
	}

	table.pad()
	return table, nil
}

// TimesheetTable lays out a day->hours mapping with a closing total row.
// A key that is not a YYYY-MM-DD day is a *ContentFormatError.
func TimesheetTable(hours map[string]decimal.Decimal) (*Table, error) {
	table := &Table{Header: []string{"Day", "Date", "Hours"}}

	total := decimal.Zero
	for _, key := range SortedDays(hours) {
		day, err := parseDay(key)
		if err != nil {
			return nil, &ContentFormatError{Row: key, Err: fmt.Errorf("day %q is not a YYYY-MM-DD date", key)}
		}
		h := hours[key].RoundBank(2)
		total = total.Add(h)
		table.Body = append(table.Body, []string{day.Format("Mon"), day.Format("02 Jan 2006"), h.StringFixedBank(2)})
	}

	table.Footer = [][]Cell{{{}, {Text: "Total hours"}, {Text: total.StringFixedBank(2)}}}
	return table, nil
}

// Columns is the number of columns of the widest row.
func (t *Table) Columns() int {
	n := len(t.Header)
	for _, r := range t.Body {
		n = max(n, len(r))
	}
	for _, r := range t.Footer {
		n = max(n, len(r))
	}
	return n
}

// ColumnWidths returns, per column, the longest cell over header, body and footer.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, t.Columns())
	measure := func(i int, s string) {
		if w := utf8.RuneCountInString(s); w > widths[i] {
			widths[i] = w
		}
	}
	for i, h := range t.Header {
		measure(i, h)
	}
	for _, r := range t.Body {
		for i, c := range r {
			measure(i, c)
		}
	}
	for _, r := range t.Footer {
		for i, c := range r {
			measure(i, c.Text)
		}
	}
	return widths
}

// FooterText returns a footer row as plain strings.
func FooterText(cells []Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Text
	}
	return out
}

func (t *Table) pad() {
	n := t.Columns()
	for len(t.Header) < n {
		t.Header = append(t.Header, "")
	}
	for i := range t.Body {
		for len(t.Body[i]) < n {
			t.Body[i] = append(t.Body[i], "")
		}
	}
	for i := range t.Footer {
		for len(t.Footer[i]) < n {
			t.Footer[i] = append(t.Footer[i], Cell{})
		}
	}
}

// TextFormat renders rows of fixed-width columns separated by " | ".
type TextFormat struct {
	Widths []int
}

// TextFormat returns the fixed-width format sized to this table.
func (t *Table) TextFormat() TextFormat {
	return TextFormat{Widths: t.ColumnWidths()}
}

// Header centers every cell in its column.
func (f TextFormat) Header(cells []string) string {
	return f.join(cells, center)
}

// Data right-aligns every cell in its column.
func (f TextFormat) Data(cells []string) string {
	return f.join(cells, right)
}

// Separator is a row of dashes joined by "-+-" with a trailing dash.
func (f TextFormat) Separator() string {
	parts := make([]string, len(f.Widths))
	for i, w := range f.Widths {
		parts[i] = strings.Repeat("-", w)
	}
	return strings.Join(parts, "-+-") + "-"
}

func (f TextFormat) join(cells []string, align func(string, int) string) string {
	parts := make([]string, len(f.Widths))
	for i, w := range f.Widths {
		var c string
		if i < len(cells) {
			c = cells[i]
		}
		parts[i] = align(c, w)
	}
	return strings.Join(parts, " | ")
}

func center(s string, width int) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

func right(s string, width int) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap) + s
}

func substitute(text string, values map[string]decimal.Decimal) (string, error) {
	var missing string
	out := placeholderPattern.ReplaceAllStringFunc(text, func(m string) string {
		name := strings.TrimSpace(m[1 : len(m)-1])
		v, ok := values[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return m
		}
		return v.StringFixedBank(2)
	})
	if missing != "" {
		return "", &TemplateFormatError{Key: "footer", Err: fmt.Errorf("unknown placeholder {%s}", missing)}
	}
	return out, nil
}

func withUnit(amount, unit string) string {
	if unit == "" || amount == "" {
		return amount
	}
	return amount + " " + unit
}
