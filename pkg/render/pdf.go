package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/hamon-in/invoice/pkg/document"
	"github.com/jung-kurt/gofpdf"
)

// Page geometry in millimetres.
const (
	pageMargin   = 20.0
	headerSpace  = 45.0
	lineHeight   = 6.0
	rowHeight    = 7.0
	cellPadding  = 4.0
	fontFamily   = "Helvetica"
	titleSize    = 18.0
	textSize     = 10.0
	tableSize    = 9.0
	pdfDateStamp = "02 January 2006"
)

type style struct {
	font string
	size float64
}

var (
	titleStyle   = style{font: "B", size: titleSize}
	addressStyle = style{font: "", size: textSize}
	labelStyle   = style{font: "B", size: textSize}
	headerStyle  = style{font: "B", size: tableSize}
	bodyStyle    = style{font: "", size: tableSize}
	boldStyle    = style{font: "B", size: tableSize}
)

// PDFRenderer lays out documents on A4 pages, optionally over a letterhead.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Format() string    { return "pdf" }
func (r *PDFRenderer) Extension() string { return "pdf" }
func (r *PDFRenderer) Binary() bool      { return true }

// RenderInvoice writes inv as a PDF document.
func (r *PDFRenderer) RenderInvoice(w io.Writer, inv *document.Invoice) error {
	p, err := newPage(inv.Letterhead)
	if err != nil {
		return err
	}

	p.text(titleStyle, "Invoice")
	p.pdf.Ln(lineHeight)

	p.field("Date", inv.Date.Format(pdfDateStamp))
	p.field("Invoice Number", inv.Number)
	p.pdf.Ln(lineHeight / 2)

	p.text(labelStyle, "Bill to:")
	p.text(addressStyle, inv.Client.Name)
	p.text(addressStyle, inv.Client.Address)
	p.pdf.Ln(lineHeight / 2)

	p.field("Subject", inv.Subject)
	p.pdf.Ln(lineHeight)

	p.table(inv.Table)
	p.pdf.Ln(lineHeight)

	p.text(labelStyle, "Payment details:")
	p.text(addressStyle, inv.BankDetails)
	if inv.PAN != "" {
		p.field("PAN", inv.PAN)
	}
	if inv.ServiceTax != "" {
		p.field("Service tax number", inv.ServiceTax)
	}

	return p.output(w)
}

// RenderTimesheet writes ts as a PDF document.
func (r *PDFRenderer) RenderTimesheet(w io.Writer, ts *document.Timesheet) error {
	p, err := newPage(ts.Letterhead)
	if err != nil {
		return err
	}

	p.text(titleStyle, "Timesheet")
	p.pdf.Ln(lineHeight)

	p.field("Date", ts.Date.Format(pdfDateStamp))
	p.field("Client", ts.Client.Name)
	p.field("Employee", ts.Employee)
	p.field("Description", ts.Description)
	p.pdf.Ln(lineHeight)

	p.table(ts.Table)

	return p.output(w)
}

// page wraps a gofpdf document with the helpers shared by both document kinds.
type page struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPage(letterhead []byte) (*page, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)

	draw, err := installLetterhead(pdf, letterhead)
	if err != nil {
		return nil, err
	}
	top := pageMargin
	if draw != nil {
		top = headerSpace
	}
	pdf.SetHeaderFunc(func() {
		if draw != nil {
			draw()
		}
		pdf.SetY(top)
	})

	pdf.AddPage()
	return &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}, nil
}

func (p *page) use(s style) {
	p.pdf.SetFont(fontFamily, s.font, s.size)
}

// text writes a possibly multi-line block across the full width.
func (p *page) text(s style, block string) {
	if strings.TrimSpace(block) == "" {
		return
	}
	p.use(s)
	height := lineHeight
	if s.size > textSize {
		height = s.size * 0.5
	}
	p.pdf.MultiCell(0, height, p.tr(block), "", "L", false)
}

// field writes a bold label followed by its value on one line.
func (p *page) field(label, value string) {
	p.use(labelStyle)
	labelText := p.tr(label + ": ")
	p.pdf.CellFormat(p.pdf.GetStringWidth(labelText), lineHeight, labelText, "", 0, "L", false, 0, "")
	p.use(addressStyle)
	p.pdf.MultiCell(0, lineHeight, p.tr(value), "", "L", false)
}

// table draws t with proportional column widths. The header row is repeated on
// every page the table spills onto.
func (p *page) table(t *document.Table) {
	widths := p.columnWidths(t)

	header := func() {
		p.use(headerStyle)
		p.pdf.SetFillColor(230, 230, 230)
		for i, text := range t.Header {
			p.pdf.CellFormat(widths[i], rowHeight, p.tr(text), "1", 0, "C", true, 0, "")
		}
		p.pdf.Ln(-1)
	}
	breakIfFull := func() {
		_, pageH := p.pdf.GetPageSize()
		if p.pdf.GetY()+rowHeight > pageH-pageMargin {
			p.pdf.AddPage()
			header()
		}
	}

	header()
	for _, row := range t.Body {
		breakIfFull()
		p.use(bodyStyle)
		for i, text := range row {
			align := "L"
			if i == len(row)-1 {
				align = "R"
			}
			p.pdf.CellFormat(widths[i], rowHeight, p.tr(text), "1", 0, align, false, 0, "")
		}
		p.pdf.Ln(-1)
	}
	for _, row := range t.Footer {
		breakIfFull()
		for i, c := range row {
			if c.Bold {
				p.use(boldStyle)
			} else {
				p.use(bodyStyle)
			}
			align := "R"
			border := "LR"
			if c.Text != "" {
				border = "1"
			}
			p.pdf.CellFormat(widths[i], rowHeight, p.tr(c.Text), border, 0, align, false, 0, "")
		}
		p.pdf.Ln(-1)
	}
}

// columnWidths scales the widest text of each column to fill the printable width.
func (p *page) columnWidths(t *document.Table) []float64 {
	n := t.Columns()
	natural := make([]float64, n)
	measure := func(i int, s style, text string) {
		p.use(s)
		if w := p.pdf.GetStringWidth(p.tr(text)) + 2*cellPadding; w > natural[i] {
			natural[i] = w
		}
	}
	for i, text := range t.Header {
		measure(i, headerStyle, text)
	}
	for _, row := range t.Body {
		for i, text := range row {
			measure(i, bodyStyle, text)
		}
	}
	for _, row := range t.Footer {
		for i, c := range row {
			s := bodyStyle
			if c.Bold {
				s = boldStyle
			}
			measure(i, s, c.Text)
		}
	}

	pageW, _ := p.pdf.GetPageSize()
	available := pageW - 2*pageMargin
	var sum float64
	for _, w := range natural {
		sum += w
	}
	widths := make([]float64, n)
	for i, w := range natural {
		if sum == 0 {
			widths[i] = available / float64(n)
			continue
		}
		widths[i] = w / sum * available
	}
	return widths
}

func (p *page) output(w io.Writer) error {
	if err := p.pdf.Error(); err != nil {
		return fmt.Errorf("failed to lay out PDF: %w", err)
	}
	if err := p.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
