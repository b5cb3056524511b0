package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/teambition/rrule-go"
)

// TemplateSkeleton is the starting body offered when a new template is created.
const TemplateSkeleton = `# Invoice template
# taxes: tax name -> rate applied to the net total (optional)
# rows: column headers, pipe separated
# footer: one row per line; {net_total}, {gross_total} and any tax name
#         are replaced by their value, "b:" marks a bold cell
# PDF output only prints Western European (cp1252) characters, so write
# currencies such as the rupee sign as a code like INR
bill_unit: INR
taxes:
  service_tax: 0.14
rows: "| Sl. No. | Description | Amount |"
footer: |
  | | b:Net Total | {net_total} |
  | | Service tax @ 14% | {service_tax} |
  | | b:Gross Total | {gross_total} |
`

// InvoiceSkeleton is the starting content of a new invoice, listing the
// template's columns as a comment.
func InvoiceSkeleton(tmpl *Template) string {
	var sb strings.Builder
	sb.WriteString("# One line per item, columns separated by '|'. The last column is the amount.\n")
	sb.WriteString("# Lines starting with # are ignored.\n")
	sb.WriteString("# | " + strings.Join(tmpl.Fields, " | ") + " |\n")
	return sb.String()
}

// TimesheetSkeleton lists every weekday of the month containing date with zero hours.
func TimesheetSkeleton(date time.Time) (string, error) {
	days, err := Weekdays(date)
	if err != nil {
		return "", err
	}
	hours := make(map[string]decimal.Decimal, len(days))
	for _, d := range days {
		hours[d.Format(DayLayout)] = decimal.Zero
	}
	return FormatTimesheetContent(hours), nil
}

// Weekdays returns Monday to Friday of the month containing date.
func Weekdays(date time.Time) ([]time.Time, error) {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   first,
		Until:     last,
		Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to construct rrule for %s: %w", first.Format("2006-01"), err)
	}
	return r.All(), nil
}
