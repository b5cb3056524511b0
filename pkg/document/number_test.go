package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFiscalNumber(t *testing.T) {
	tests := []struct {
		date string
		id   int64
		want string
	}{
		{"2023-03-15", 1, "2022/2023-1"},
		{"2023-06-10", 2, "2023/2024-2"},
		{"2024-01-02", 3, "2023/2024-3"},
		{"2024-04-30", 4, "2023/2024-4"},
		{"2024-05-01", 5, "2024/2025-5"},
		{"2024-12-31", 42, "2024/2025-42"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, FiscalNumber(day(tt.date), tt.id))
		})
	}
}

func TestDisplayNumber(t *testing.T) {
	assert.Equal(t, "2023/2024-7", DisplayNumber("", day("2023-06-10"), 7))
	assert.Equal(t, "2023/2024-7", DisplayNumber("  ", day("2023-06-10"), 7))
	assert.Equal(t, "HT/2023/2024-7", DisplayNumber("HT", day("2023-06-10"), 7))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		date    string
		client  string
		subject string
		ext     string
		want    string
	}{
		{
			name:    "short subject",
			prefix:  InvoicePrefix,
			date:    "2024-01-02",
			client:  "Acme",
			subject: "Support",
			ext:     "txt",
			want:    "Invoice-20240102-Acme-Support.txt",
		},
		{
			name:    "subject truncated to ten characters",
			prefix:  InvoicePrefix,
			date:    "2023-06-10",
			client:  "Acme",
			subject: "Consulting services June",
			ext:     ".pdf",
			want:    "Invoice-20230610-Acme-Consulting.pdf",
		},
		{
			name:    "spaces become dashes",
			prefix:  TimesheetPrefix,
			date:    "2024-02-29",
			client:  "Acme",
			subject: "Feb work done",
			ext:     "txt",
			want:    "Timesheet-20240229-Acme-Feb-work-d.txt",
		},
		{
			name:    "separators are replaced",
			prefix:  InvoicePrefix,
			date:    "2024-01-02",
			client:  "A/B",
			subject: "x/y",
			ext:     "txt",
			want:    "Invoice-20240102-A_B-x_y.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.prefix, day(tt.date), tt.client, tt.subject, tt.ext))
		})
	}
}
