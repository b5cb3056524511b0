package document

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DayLayout is the key format of timesheet days.
const DayLayout = "2006-01-02"

// Row is one invoice line item. Cells holds every column as written,
// Amount is the last column parsed as an exact decimal.
type Row struct {
	Cells  []string
	Amount decimal.Decimal
}

// contentLine is a data line of a content body together with its 1-based line number.
type contentLine struct {
	number int
	text   string
}

func contentLines(body string) []contentLine {
	var lines []contentLine
	for i, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, contentLine{number: i + 1, text: trimmed})
	}
	return lines
}

// ParseInvoiceContent parses a pipe-delimited invoice body.
// Blank lines and lines starting with '#' are skipped.
func ParseInvoiceContent(body string) ([]Row, error) {
	var rows []Row
	for _, line := range contentLines(body) {
		cells := splitRow(line.text)
		last := cells[len(cells)-1]
		if last == "" {
			return nil, &ContentFormatError{Line: line.number, Row: line.text, Err: errors.New("missing amount in last column")}
		}
		amount, err := decimal.NewFromString(last)
		if err != nil {
			return nil, &ContentFormatError{Line: line.number, Row: line.text, Err: fmt.Errorf("amount %q is not a number", last)}
		}
		rows = append(rows, Row{Cells: cells, Amount: amount})
	}
	return rows, nil
}

// NetTotal sums the amounts of all rows.
func NetTotal(rows []Row) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	return total
}

// ParseTimesheetContent parses a two-column "day | hours" table.
func ParseTimesheetContent(body string) (map[string]decimal.Decimal, error) {
	hours := make(map[string]decimal.Decimal)
	for _, line := range contentLines(body) {
		cells := splitRow(line.text)
		if len(cells) != 2 {
			return nil, &ContentFormatError{Line: line.number, Row: line.text, Err: fmt.Errorf("expected 2 columns, got %d", len(cells))}
		}

		day, err := time.Parse(DayLayout, cells[0])
		if err != nil {
			return nil, &ContentFormatError{Line: line.number, Row: line.text, Err: fmt.Errorf("day %q is not a YYYY-MM-DD date", cells[0])}
		}
		key := day.Format(DayLayout)
		if _, dup := hours[key]; dup {
			return nil, &ContentFormatError{Line: line.number, Row: line.text, Err: fmt.Errorf("day %s listed twice", key)}
		}

		value, err := decimal.NewFromString(cells[1])
		if err != nil {
			return nil, &ContentFormatError{Line: line.number, Row: line.text, Err: fmt.Errorf("hours %q is not a number", cells[1])}
		}
		if value.IsNegative() {
			return nil, &ContentFormatError{Line: line.number, Row: line.text, Err: errors.New("hours cannot be negative")}
		}
		hours[key] = value.RoundBank(2)
	}
	return hours, nil
}

// FormatTimesheetContent writes hours back into the editable table form.
// Rows are sorted by day.
func FormatTimesheetContent(hours map[string]decimal.Decimal) string {
	var sb strings.Builder
	sb.WriteString("# Day        | Hours\n")
	sb.WriteString("# Lines starting with # are ignored.\n")
	for _, day := range SortedDays(hours) {
		sb.WriteString(fmt.Sprintf("%s | %s\n", day, hours[day].StringFixedBank(2)))
	}
	return sb.String()
}

// SortedDays returns the keys of a day->hours mapping in chronological order.
func SortedDays(hours map[string]decimal.Decimal) []string {
	days := make([]string, 0, len(hours))
	for d := range hours {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}
