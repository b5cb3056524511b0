package document

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FiscalNumber derives the human readable invoice number from its date and id.
// The fiscal year runs from May to April: January to April belong to the year
// ending in the same calendar year.
func FiscalNumber(date time.Time, id int64) string {
	year := date.Year()
	if date.Month() <= time.April {
		return fmt.Sprintf("%d/%d-%d", year-1, year, id)
	}
	return fmt.Sprintf("%d/%d-%d", year, year+1, id)
}

// DisplayNumber prefixes the fiscal number with the account's invoice prefix, if any.
func DisplayNumber(prefix string, date time.Time, id int64) string {
	number := FiscalNumber(date, id)
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		return prefix + "/" + number
	}
	return number
}

const subjectChars = 10

// FileName builds the generated document name
// <prefix>-<YYYYMMDD>-<client>-<first 10 chars of subject, spaces as dashes>.<ext>
func FileName(prefix string, date time.Time, client, subject, ext string) string {
	short := []rune(subject)
	if len(short) > subjectChars {
		short = short[:subjectChars]
	}
	subj := strings.ReplaceAll(string(short), " ", "-")

	name := fmt.Sprintf("%s-%s-%s-%s", prefix, date.Format("20060102"), safeComponent(client), safeComponent(subj))
	return name + "." + strings.TrimPrefix(ext, ".")
}

// safeComponent keeps a name component from escaping the output directory.
func safeComponent(s string) string {
	s = strings.ReplaceAll(s, string(filepath.Separator), "_")
	return strings.ReplaceAll(s, "/", "_")
}
