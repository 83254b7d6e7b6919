// Package billing holds the pure rules of document issuance: totals,
// display references, the line-item blob format and status transitions.
package billing

import (
	"github.com/shopspring/decimal"

	"billdocs/internal/model"
)

// Totals are the derived financial fields of a document.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// Subtotal returns the exact sum of quantity × unit price over items.
// Inputs are expected to be validated already.
func Subtotal(items []model.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Quantity.Mul(it.UnitPrice))
	}
	return sum
}

// ComputeTotals derives every financial field from items.
// No tax model exists yet, so TaxAmount is always zero and Total equals Subtotal.
func ComputeTotals(items []model.LineItem) Totals {
	sub := Subtotal(items)
	return Totals{
		Subtotal:  sub,
		TaxAmount: decimal.Zero,
		Total:     sub,
	}
}
