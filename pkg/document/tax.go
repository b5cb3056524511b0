package document

import "github.com/shopspring/decimal"

// Placeholder names available to footer cells besides the tax names.
const (
	NetTotalKey   = "net_total"
	GrossTotalKey = "gross_total"
)

// TaxAmount is a computed tax line.
type TaxAmount struct {
	Name   string
	Amount decimal.Decimal
}

// Totals holds the net total, each tax amount and the gross total of an invoice.
type Totals struct {
	Net   decimal.Decimal
	Taxes []TaxAmount
	Gross decimal.Decimal
}

// ComputeTotals applies every tax rate to net. Each amount is rounded
// half-to-even at two decimal places before it is added to the gross total.
func ComputeTotals(net decimal.Decimal, taxes []Tax) Totals {
	totals := Totals{Net: net, Gross: net}
	for _, tax := range taxes {
		amount := net.Mul(tax.Rate).RoundBank(2)
		totals.Taxes = append(totals.Taxes, TaxAmount{Name: tax.Name, Amount: amount})
		totals.Gross = totals.Gross.Add(amount)
	}
	return totals
}

// Values returns the totals keyed by their footer placeholder name.
func (t Totals) Values() map[string]decimal.Decimal {
	values := make(map[string]decimal.Decimal, len(t.Taxes)+2)
	for _, tax := range t.Taxes {
		values[tax.Name] = tax.Amount
	}
	values[NetTotalKey] = t.Net
	values[GrossTotalKey] = t.Gross
	return values
}
