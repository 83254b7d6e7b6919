// Package render produces the printable rendition of a billing document.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"billdocs/internal/model"
)

//go:embed templates/document.html.tmpl
var templatesFS embed.FS

var documentTmpl = template.Must(template.ParseFS(templatesFS, "templates/document.html.tmpl"))

// ContentType of the rendition.
const ContentType = "text/html; charset=utf-8"

// Line is one printed line; every value is already formatted.
type Line struct {
	Label     string
	Quantity  string
	UnitPrice string
	Amount    string
}

// Page carries everything the template prints.
type Page struct {
	Type          model.DocumentType
	Reference     string
	Status        string
	IssueDate     string
	DueDate       string
	ClientName    string
	ClientAddress string
	Lines         []Line
	Subtotal      string
	TaxAmount     string
	Total         string
	LegalNotices  string
}

// Title is the printed heading for the document type.
func (p Page) Title() string {
	switch p.Type {
	case model.TypeQuote:
		return "Devis"
	case model.TypeInvoice:
		return "Facture"
	case model.TypeCreditNote:
		return "Avoir"
	default:
		return "Document"
	}
}

// Document writes the HTML rendition of p to w.
func Document(w io.Writer, p Page) error {
	if err := documentTmpl.Execute(w, p); err != nil {
		return fmt.Errorf("render document %s: %w", p.Reference, err)
	}
	return nil
}
