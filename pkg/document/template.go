// Package document turns stored templates and content into render-ready invoices and timesheets.
package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Cell is a single footer cell. Bold cells were written with the "b:" marker.
type Cell struct {
	Text string
	Bold bool
}

// Tax is a named tax rate applied to the net total.
type Tax struct {
	Name string
	Rate decimal.Decimal
}

// Template is the parsed form of a template body.
type Template struct {
	Fields   []string
	Footers  [][]Cell
	Taxes    []Tax
	BillUnit string
}

// templateDocument mirrors the YAML layout of a template body.
type templateDocument struct {
	Taxes    yaml.Node `yaml:"taxes"`
	Rows     *string   `yaml:"rows"`
	Footer   *string   `yaml:"footer"`
	BillUnit string    `yaml:"bill_unit"`
}

const boldMarker = "b:"

// ParseTemplate parses a YAML template body.
// rows and footer are required, taxes and bill_unit are optional.
func ParseTemplate(raw string) (*Template, error) {
	var doc templateDocument
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &TemplateFormatError{Err: err}
	}

	if doc.Rows == nil {
		return nil, &TemplateFormatError{Key: "rows", Err: errors.New("missing required key")}
	}
	if doc.Footer == nil {
		return nil, &TemplateFormatError{Key: "footer", Err: errors.New("missing required key")}
	}

	taxes, err := parseTaxes(&doc.Taxes)
	if err != nil {
		return nil, err
	}

	tmpl := &Template{
		Fields:   splitRow(*doc.Rows),
		Taxes:    taxes,
		BillUnit: strings.TrimSpace(doc.BillUnit),
	}

	for _, line := range strings.Split(*doc.Footer, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var cells []Cell
		for _, text := range splitRow(line) {
			cells = append(cells, parseCell(text))
		}
		tmpl.Footers = append(tmpl.Footers, cells)
	}

	return tmpl, nil
}

// TaxRate returns the rate for a tax name.
func (t *Template) TaxRate(name string) (decimal.Decimal, bool) {
	for _, tax := range t.Taxes {
		if tax.Name == name {
			return tax.Rate, true
		}
	}
	return decimal.Zero, false
}

// parseTaxes walks the taxes mapping in document order.
func parseTaxes(node *yaml.Node) ([]Tax, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, &TemplateFormatError{Key: "taxes", Err: fmt.Errorf("expected a mapping of name to rate (line %d)", node.Line)}
	}

	taxes := make([]Tax, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := strings.TrimSpace(node.Content[i].Value)
		value := node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, &TemplateFormatError{Key: "taxes." + name, Err: fmt.Errorf("rate must be a number (line %d)", value.Line)}
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(value.Value))
		if err != nil {
			return nil, &TemplateFormatError{Key: "taxes." + name, Err: fmt.Errorf("invalid rate %q: %w", value.Value, err)}
		}
		taxes = append(taxes, Tax{Name: name, Rate: rate})
	}
	return taxes, nil
}

func parseCell(text string) Cell {
	if strings.HasPrefix(text, boldMarker) {
		return Cell{Text: strings.TrimSpace(strings.TrimPrefix(text, boldMarker)), Bold: true}
	}
	return Cell{Text: text}
}

// splitRow splits a pipe-delimited row, dropping the outer pipes.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
