package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"billdocs/internal/model"
)

func item(label, qty, price string) model.LineItem {
	return model.LineItem{
		Label:     label,
		Quantity:  decimal.RequireFromString(qty),
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name  string
		items []model.LineItem
		want  string
	}{
		{
			name:  "empty",
			items: nil,
			want:  "0",
		},
		{
			name:  "two lines",
			items: []model.LineItem{item("Menu du jour", "2", "10.00"), item("Café", "1", "5.50")},
			want:  "25.50",
		},
		{
			name:  "fractional quantity",
			items: []model.LineItem{item("Vin au verre", "0.5", "7.30")},
			want:  "3.65",
		},
		{
			name:  "no float drift",
			items: []model.LineItem{item("a", "3", "0.10"), item("b", "1", "0.20")},
			want:  "0.50",
		},
		{
			name:  "zero price line",
			items: []model.LineItem{item("Offert", "4", "0"), item("Plat", "1", "18.90")},
			want:  "18.90",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtotal(tt.items)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals([]model.LineItem{item("Menu du jour", "2", "10.00"), item("Café", "1", "5.50")})

	assert.Equal(t, "25.50", totals.Subtotal.StringFixed(2))
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.Equal(totals.Subtotal))
}
