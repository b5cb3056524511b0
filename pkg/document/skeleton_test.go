package document

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdays(t *testing.T) {
	tests := []struct {
		date  string
		count int
		first string
		last  string
	}{
		{"2024-01-15", 23, "2024-01-01", "2024-01-31"},
		{"2024-02-29", 21, "2024-02-01", "2024-02-29"},
		{"2024-06-01", 20, "2024-06-03", "2024-06-28"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			days, err := Weekdays(day(tt.date))
			require.NoError(t, err)
			require.Len(t, days, tt.count)
			assert.Equal(t, tt.first, days[0].Format(DayLayout))
			assert.Equal(t, tt.last, days[len(days)-1].Format(DayLayout))
			for _, d := range days {
				assert.NotEqual(t, time.Saturday, d.Weekday())
				assert.NotEqual(t, time.Sunday, d.Weekday())
			}
		})
	}
}

func TestTimesheetSkeletonParses(t *testing.T) {
	text, err := TimesheetSkeleton(day("2024-01-20"))
	require.NoError(t, err)

	hours, err := ParseTimesheetContent(text)
	require.NoError(t, err)
	assert.Len(t, hours, 23)
	for _, h := range hours {
		assert.True(t, h.IsZero())
	}
}

func TestInvoiceSkeleton(t *testing.T) {
	tmpl, err := ParseTemplate(TemplateSkeleton)
	require.NoError(t, err)

	text := InvoiceSkeleton(tmpl)
	assert.Contains(t, text, "# | Sl. No. | Description | Amount |")

	rows, err := ParseInvoiceContent(text)
	require.NoError(t, err)
	assert.Empty(t, rows)

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		assert.True(t, strings.HasPrefix(line, "#"), line)
	}
}
