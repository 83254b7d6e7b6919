package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"billdocs/internal/billing"
	"billdocs/internal/model"
	"billdocs/internal/render"
	"billdocs/internal/storage"
)

// ExportResult points at an archived rendition of a document.
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Export renders the printable page of a document, stores it under
// documents/<year>/<reference>.html and presigns a download link.
// Exporting again overwrites the previous rendition.
func (s *documentService) Export(ctx context.Context, id string) (*ExportResult, error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Export", trace.WithAttributes(
		attribute.String("document.id", id),
	))
	defer span.End()

	if id == "" {
		return nil, ErrIDRequired
	}
	if s.store == nil {
		return nil, ErrExportUnavailable
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, s.fail(span, fmt.Errorf("load document: %w", err))
	}

	page, err := printPage(doc)
	if err != nil {
		return nil, s.fail(span, err)
	}
	var buf bytes.Buffer
	if err := render.Document(&buf, page); err != nil {
		return nil, s.fail(span, err)
	}

	year := doc.IssueDate.Year()
	if doc.IssueDate.IsZero() {
		year = doc.CreatedAt.Year()
	}
	key := storage.ExportKey(year, doc.DisplayReference, "html")
	size := int64(buf.Len())

	if _, err := s.store.Put(ctx, key, &buf, storage.PutObjectOptions{
		Size:        size,
		ContentType: render.ContentType,
		Metadata: map[string]string{
			"document-id": doc.ID,
			"reference":   doc.DisplayReference,
		},
	}); err != nil {
		return nil, s.fail(span, fmt.Errorf("upload export: %w", err))
	}

	url, err := s.store.PresignGet(ctx, key, s.exportExpiry)
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("presign export: %w", err))
	}

	s.log.Info().Str("document_id", doc.ID).Str("key", key).Int64("size", size).Msg("document_exported")

	return &ExportResult{
		Key:       key,
		URL:       url,
		ExpiresAt: s.now().Add(s.exportExpiry).UTC(),
	}, nil
}

func printPage(doc *model.Document) (render.Page, error) {
	items, err := billing.DecodeLineItems(doc.LineItems)
	if err != nil {
		return render.Page{}, err
	}

	lines := make([]render.Line, len(items))
	for i, it := range items {
		lines[i] = render.Line{
			Label:     it.Label,
			Quantity:  it.Quantity.String(),
			UnitPrice: money(it.UnitPrice),
			Amount:    money(it.Quantity.Mul(it.UnitPrice)),
		}
	}

	p := render.Page{
		Type:          doc.Type,
		Reference:     doc.DisplayReference,
		Status:        string(doc.Status),
		IssueDate:     doc.IssueDate.String(),
		DueDate:       doc.DueDate.String(),
		ClientName:    doc.ClientNameSnapshot,
		ClientAddress: doc.ClientAddressSnapshot,
		Lines:         lines,
		Subtotal:      money(doc.Subtotal),
		TaxAmount:     money(doc.TaxAmount),
		Total:         money(doc.Total),
	}
	if doc.LegalNotices != nil {
		p.LegalNotices = *doc.LegalNotices
	}
	return p, nil
}
