package document

import "fmt"

// TemplateFormatError is returned when a template body cannot be parsed
// or lacks a required key.
type TemplateFormatError struct {
	Key string // offending key, empty for syntax errors
	Err error
}

func (e *TemplateFormatError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("invalid template (%s): %v", e.Key, e.Err)
	}
	return fmt.Sprintf("invalid template: %v", e.Err)
}

func (e *TemplateFormatError) Unwrap() error {
	return e.Err
}

// ContentFormatError is returned when an invoice or timesheet content row is malformed.
type ContentFormatError struct {
	Line int    // 1-based line number in the content body, 0 when not known
	Row  string // raw text of the offending row
	Err  error
}

func (e *ContentFormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("invalid content %q: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("invalid content on line %d (%q): %v", e.Line, e.Row, e.Err)
}

func (e *ContentFormatError) Unwrap() error {
	return e.Err
}
