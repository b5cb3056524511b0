package document

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	d := decimal.RequireFromString

	tests := []struct {
		name  string
		net   string
		taxes []Tax
		want  []string // tax amounts
		gross string
	}{
		{
			name:  "no taxes",
			net:   "1000",
			gross: "1000",
		},
		{
			name:  "single tax",
			net:   "1000",
			taxes: []Tax{{Name: "service_tax", Rate: d("0.14")}},
			want:  []string{"140"},
			gross: "1140",
		},
		{
			name:  "half to even rounding",
			net:   "0.25",
			taxes: []Tax{{Name: "a", Rate: d("0.5")}, {Name: "b", Rate: d("0.3")}},
			want:  []string{"0.12", "0.08"},
			gross: "0.45",
		},
		{
			name:  "rounds up above half",
			net:   "10.07",
			taxes: []Tax{{Name: "vat", Rate: d("0.05")}},
			want:  []string{"0.5"},
			gross: "10.57",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(d(tt.net), tt.taxes)

			assert.True(t, d(tt.net).Equal(totals.Net))
			assert.Len(t, totals.Taxes, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, tt.taxes[i].Name, totals.Taxes[i].Name)
				assert.True(t, d(want).Equal(totals.Taxes[i].Amount), "tax %s: got %s", tt.taxes[i].Name, totals.Taxes[i].Amount)
			}
			assert.True(t, d(tt.gross).Equal(totals.Gross), "gross: got %s", totals.Gross)

			values := totals.Values()
			assert.Contains(t, values, NetTotalKey)
			assert.Contains(t, values, GrossTotalKey)
			assert.Len(t, values, len(tt.taxes)+2)
		})
	}
}
