package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"billdocs/internal/billing"
	"billdocs/internal/model"
)

// LineItemView is a line item as returned to callers. Numbers are strings so no
// precision is lost in transport.
type LineItemView struct {
	Label     string `json:"label"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Amount    string `json:"amount"`
}

// DocumentView is the caller-facing shape of a document.
type DocumentView struct {
	ID                    string               `json:"id"`
	DisplayReference      string               `json:"display_reference"`
	Type                  model.DocumentType   `json:"type"`
	Status                model.DocumentStatus `json:"status"`
	ClientID              *string              `json:"client_id"`
	ClientNameSnapshot    string               `json:"client_name_snapshot"`
	ClientAddressSnapshot string               `json:"client_address_snapshot"`
	IssueDate             model.Date           `json:"issue_date"`
	DueDate               model.Date           `json:"due_date"`
	LineItems             []LineItemView       `json:"line_items,omitempty"`
	Subtotal              string               `json:"subtotal"`
	TaxAmount             string               `json:"tax_amount"`
	Total                 string               `json:"total"`
	PrivateNotes          *string              `json:"private_notes"`
	LegalNotices          *string              `json:"legal_notices"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
	Client                *model.ClientSummary `json:"client"`
}

// money renders d with at least two decimal places and every significant one
// beyond that, so 25.5 reads "25.50" and 0.125 stays "0.125".
func money(d decimal.Decimal) string {
	places := 2
	s := d.String()
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > places {
		places = len(s) - i - 1
	}
	return d.StringFixed(int32(places))
}

// toView converts a stored document. Line items are decoded only when withItems is set.
func toView(doc *model.Document, withItems bool) (*DocumentView, error) {
	v := &DocumentView{
		ID:                    doc.ID,
		DisplayReference:      doc.DisplayReference,
		Type:                  doc.Type,
		Status:                doc.Status,
		ClientID:              doc.ClientID,
		ClientNameSnapshot:    doc.ClientNameSnapshot,
		ClientAddressSnapshot: doc.ClientAddressSnapshot,
		IssueDate:             doc.IssueDate,
		DueDate:               doc.DueDate,
		Subtotal:              money(doc.Subtotal),
		TaxAmount:             money(doc.TaxAmount),
		Total:                 money(doc.Total),
		PrivateNotes:          doc.PrivateNotes,
		LegalNotices:          doc.LegalNotices,
		CreatedAt:             doc.CreatedAt,
		UpdatedAt:             doc.UpdatedAt,
		Client:                doc.Client,
	}
	if !withItems {
		return v, nil
	}

	items, err := billing.DecodeLineItems(doc.LineItems)
	if err != nil {
		return nil, err
	}
	v.LineItems = make([]LineItemView, len(items))
	for i, it := range items {
		v.LineItems[i] = LineItemView{
			Label:     it.Label,
			Quantity:  it.Quantity.String(),
			UnitPrice: money(it.UnitPrice),
			Amount:    money(it.Quantity.Mul(it.UnitPrice)),
		}
	}
	return v, nil
}
