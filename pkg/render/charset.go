package render

import (
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/hamon-in/invoice/pkg/document"
)

// UnsupportedRunes lists, once each and in order of appearance, the
// characters of text that the PDF core fonts cannot print. The PDF renderer
// encodes text as cp1252 and prints these as '.'.
func UnsupportedRunes(text string) []rune {
	var out []rune
	seen := make(map[rune]bool)
	for _, r := range text {
		if _, ok := charmap.Windows1252.EncodeRune(r); ok || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// TemplateUnsupportedRunes checks the printed parts of a template: the bill
// unit, column headers and footer cells.
func TemplateUnsupportedRunes(tmpl *document.Template) []rune {
	parts := append([]string{tmpl.BillUnit}, tmpl.Fields...)
	for _, row := range tmpl.Footers {
		for _, c := range row {
			parts = append(parts, c.Text)
		}
	}
	return UnsupportedRunes(strings.Join(parts, "\n"))
}
