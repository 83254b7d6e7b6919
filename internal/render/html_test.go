package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billdocs/internal/model"
)

func TestDocument(t *testing.T) {
	var buf bytes.Buffer
	err := Document(&buf, Page{
		Type:          model.TypeInvoice,
		Reference:     "F-2026-007",
		Status:        "SENT",
		IssueDate:     "2026-10-16",
		ClientName:    "Alice <Dupont>",
		ClientAddress: "1 rue de la Paix",
		Lines: []Line{
			{Label: "Menu du jour", Quantity: "2", UnitPrice: "10.00", Amount: "20.00"},
			{Label: "Café", Quantity: "1", UnitPrice: "5.50", Amount: "5.50"},
		},
		Subtotal:  "25.50",
		TaxAmount: "0.00",
		Total:     "25.50",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<title>Facture F-2026-007</title>")
	assert.Contains(t, out, "Menu du jour")
	assert.Contains(t, out, "25.50")
	assert.Contains(t, out, "Alice &lt;Dupont&gt;")
	assert.NotContains(t, out, "Échéance")
	assert.NotContains(t, out, `class="legal"`)
}

func TestPage_Title(t *testing.T) {
	assert.Equal(t, "Devis", Page{Type: model.TypeQuote}.Title())
	assert.Equal(t, "Avoir", Page{Type: model.TypeCreditNote}.Title())
	assert.Equal(t, "Document", Page{Type: "OTHER"}.Title())
}
