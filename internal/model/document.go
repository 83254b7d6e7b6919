package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType identifies the kind of billing document. It never changes after creation.
type DocumentType string

const (
	TypeQuote      DocumentType = "QUOTE"
	TypeInvoice    DocumentType = "INVOICE"
	TypeCreditNote DocumentType = "CREDIT_NOTE"
)

// DocumentStatus is the mutable lifecycle state of a document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusSent      DocumentStatus = "SENT"
	StatusAccepted  DocumentStatus = "ACCEPTED"
	StatusRejected  DocumentStatus = "REJECTED"
	StatusPaid      DocumentStatus = "PAID"
	StatusOverdue   DocumentStatus = "OVERDUE"
	StatusCancelled DocumentStatus = "CANCELLED"
)

// LineItem is one billed line. Quantity and UnitPrice are non-negative.
type LineItem struct {
	Label     string          `json:"label"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ClientSummary is the live view of the client a document points at.
// It is read through a join and may differ from the document's snapshot fields.
type ClientSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

// Document is a quote, invoice or credit note as persisted.
// LineItems holds the serialized line items; the repository never looks inside it.
type Document struct {
	ID                    string
	DisplayReference      string
	Type                  DocumentType
	Status                DocumentStatus
	ClientID              *string
	ClientNameSnapshot    string
	ClientAddressSnapshot string
	IssueDate             Date
	DueDate               Date
	LineItems             []byte
	Subtotal              decimal.Decimal
	TaxAmount             decimal.Decimal
	Total                 decimal.Decimal
	PrivateNotes          *string
	LegalNotices          *string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Client *ClientSummary
}

// DocumentPatch lists the fields an update may touch. Nil fields are left as stored.
// Type and DisplayReference are deliberately absent.
type DocumentPatch struct {
	Status                *DocumentStatus
	ClientID              *string
	ClientNameSnapshot    *string
	ClientAddressSnapshot *string
	IssueDate             *Date
	DueDate               *Date
	LineItems             []byte
	Subtotal              *decimal.Decimal
	TaxAmount             *decimal.Decimal
	Total                 *decimal.Decimal
	PrivateNotes          *string
	LegalNotices          *string
}

// Empty reports whether the patch carries no field at all.
func (p DocumentPatch) Empty() bool {
	return p.Status == nil && p.ClientID == nil && p.ClientNameSnapshot == nil &&
		p.ClientAddressSnapshot == nil && p.IssueDate == nil && p.DueDate == nil &&
		p.LineItems == nil && p.Subtotal == nil && p.TaxAmount == nil && p.Total == nil &&
		p.PrivateNotes == nil && p.LegalNotices == nil
}
