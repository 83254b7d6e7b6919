package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"billdocs/internal/billing"
	"billdocs/internal/metrics"
	"billdocs/internal/model"
	"billdocs/internal/repository"
	"billdocs/internal/revalidate"
	"billdocs/internal/storage"
)

// Admin pages that list documents and clients. They are revalidated after writes.
const (
	documentsPath = "/admin/documents"
	clientsPath   = "/admin/clients"
)

var tracer = otel.Tracer("billdocs/internal/service")

// MutationResult is returned by create and update.
type MutationResult struct {
	Success  bool          `json:"success"`
	Document *DocumentView `json:"document"`
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []DocumentView `json:"data"`
	Total int            `json:"total"`
}

// DocumentService defines the use cases for handling billing documents.
type DocumentService interface {
	// Create issues a document. Totals and the display reference are computed here,
	// never taken from the caller.
	Create(ctx context.Context, in CreateDocumentInput) (*MutationResult, error)

	// Update applies a partial change. Totals are recomputed only when line items are given.
	Update(ctx context.Context, id string, in UpdateDocumentInput) (*MutationResult, error)

	// Get returns a single document with its decoded line items.
	Get(ctx context.Context, id string) (*DocumentView, error)

	// List returns documents newest first. A non-positive limit returns all of them.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Export renders the document and archives it, returning a temporary download link.
	Export(ctx context.Context, id string) (*ExportResult, error)
}

// Option configures a document service.
type Option func(*documentService)

// WithStorage enables exports to store.
func WithStorage(store storage.Storage) Option {
	return func(s *documentService) { s.store = store }
}

func WithNotifier(n revalidate.Notifier) Option {
	return func(s *documentService) { s.notifier = n }
}

func WithStatusPolicy(p billing.StatusPolicy) Option {
	return func(s *documentService) { s.policy = p }
}

// WithReferenceStrategy selects billing.StrategyCount or billing.StrategyCounter.
func WithReferenceStrategy(strategy string) Option {
	return func(s *documentService) { s.strategy = strategy }
}

func WithClock(now func() time.Time) Option {
	return func(s *documentService) { s.now = now }
}

// WithLocation sets the timezone the current year is read in.
func WithLocation(loc *time.Location) Option {
	return func(s *documentService) { s.loc = loc }
}

func WithExportExpiry(d time.Duration) Option {
	return func(s *documentService) { s.exportExpiry = d }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *documentService) { s.metrics = m }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *documentService) { s.log = l }
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	repo         repository.DocumentRepository
	clients      repository.ClientRepository
	store        storage.Storage
	notifier     revalidate.Notifier
	policy       billing.StatusPolicy
	strategy     string
	now          func() time.Time
	loc          *time.Location
	exportExpiry time.Duration
	metrics      *metrics.Metrics
	log          zerolog.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(repo repository.DocumentRepository, clients repository.ClientRepository, opts ...Option) DocumentService {
	s := &documentService{
		repo:         repo,
		clients:      clients,
		notifier:     revalidate.Noop{},
		policy:       billing.FreePolicy{},
		strategy:     billing.StrategyCount,
		now:          time.Now,
		loc:          time.UTC,
		exportExpiry: 15 * time.Minute,
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *documentService) Create(ctx context.Context, in CreateDocumentInput) (*MutationResult, error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Create", trace.WithAttributes(
		attribute.String("document.type", string(in.Type)),
	))
	defer span.End()

	if err := in.validate(); err != nil {
		return nil, err
	}
	issueDate, err := model.ParseDate(in.IssueDate)
	if err != nil {
		return nil, &ValidationError{Problems: []string{"issue_date must be a date formatted YYYY-MM-DD"}}
	}
	dueDate, err := model.ParseDate(in.DueDate)
	if err != nil {
		return nil, &ValidationError{Problems: []string{"due_date must be a date formatted YYYY-MM-DD"}}
	}

	status := in.Status
	if status == "" {
		status = model.StatusDraft
	}

	name := strings.TrimSpace(in.ClientNameSnapshot)
	address := in.ClientAddressSnapshot
	if in.ClientID != nil && name == "" {
		// The snapshot is captured once, from the client as it is right now.
		client, err := s.clients.FindByID(ctx, *in.ClientID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrClientNotFound
			}
			return nil, s.fail(span, fmt.Errorf("load client: %w", err))
		}
		name = client.Name
		if address == "" {
			address = client.Address
		}
	}

	items := toLineItems(in.LineItems)
	totals := billing.ComputeTotals(items)
	if err := checkTotals(totals); err != nil {
		return nil, err
	}
	blob, err := billing.EncodeLineItems(items)
	if err != nil {
		return nil, s.fail(span, err)
	}

	ref, err := s.nextReference(ctx, in.Type)
	if err != nil {
		return nil, s.fail(span, err)
	}
	span.SetAttributes(attribute.String("document.reference", ref))

	doc := &model.Document{
		ID:                    uuid.NewString(),
		DisplayReference:      ref,
		Type:                  in.Type,
		Status:                status,
		ClientID:              in.ClientID,
		ClientNameSnapshot:    name,
		ClientAddressSnapshot: address,
		IssueDate:             issueDate,
		DueDate:               dueDate,
		LineItems:             blob,
		Subtotal:              totals.Subtotal,
		TaxAmount:             totals.TaxAmount,
		Total:                 totals.Total,
		PrivateNotes:          in.PrivateNotes,
		LegalNotices:          in.LegalNotices,
	}

	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateReference):
			return nil, fmt.Errorf("%w: %s", ErrDuplicateReference, ref)
		case errors.Is(err, repository.ErrUnknownClient):
			return nil, ErrClientNotFound
		}
		return nil, s.fail(span, fmt.Errorf("create document: %w", err))
	}

	s.metrics.DocumentIssued(string(stored.Type))
	s.notifier.Revalidate(documentsPath, documentsPath+"/"+stored.ID)
	s.log.Info().
		Str("document_id", stored.ID).
		Str("reference", stored.DisplayReference).
		Str("type", string(stored.Type)).
		Str("total", money(stored.Total)).
		Msg("document_issued")

	view, err := toView(stored, true)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return &MutationResult{Success: true, Document: view}, nil
}

func (s *documentService) Update(ctx context.Context, id string, in UpdateDocumentInput) (*MutationResult, error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Update", trace.WithAttributes(
		attribute.String("document.id", id),
	))
	defer span.End()

	if id == "" {
		return nil, ErrIDRequired
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	patch := model.DocumentPatch{
		ClientID:              in.ClientID,
		ClientNameSnapshot:    in.ClientNameSnapshot,
		ClientAddressSnapshot: in.ClientAddressSnapshot,
		PrivateNotes:          in.PrivateNotes,
		LegalNotices:          in.LegalNotices,
	}
	if in.IssueDate != nil {
		d, err := model.ParseDate(*in.IssueDate)
		if err != nil {
			return nil, &ValidationError{Problems: []string{"issue_date must be a date formatted YYYY-MM-DD"}}
		}
		patch.IssueDate = &d
	}
	if in.DueDate != nil {
		d, err := model.ParseDate(*in.DueDate)
		if err != nil {
			return nil, &ValidationError{Problems: []string{"due_date must be a date formatted YYYY-MM-DD"}}
		}
		patch.DueDate = &d
	}

	if in.Status != nil {
		// The free policy accepts anything, so the current status is only read
		// when another policy needs it.
		if _, free := s.policy.(billing.FreePolicy); !free {
			current, err := s.repo.FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return nil, ErrNotFound
				}
				return nil, s.fail(span, fmt.Errorf("load document: %w", err))
			}
			if err := s.policy.Check(current.Status, *in.Status); err != nil {
				return nil, err
			}
		}
		patch.Status = in.Status
	}

	if in.LineItems != nil {
		items := toLineItems(*in.LineItems)
		totals := billing.ComputeTotals(items)
		if err := checkTotals(totals); err != nil {
			return nil, err
		}
		blob, err := billing.EncodeLineItems(items)
		if err != nil {
			return nil, s.fail(span, err)
		}
		patch.LineItems = blob
		patch.Subtotal = decimalPtr(totals.Subtotal)
		patch.TaxAmount = decimalPtr(totals.TaxAmount)
		patch.Total = decimalPtr(totals.Total)
	}

	if patch.Empty() {
		// Nothing to write: answer with the stored document and skip the revalidation.
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, s.fail(span, fmt.Errorf("load document: %w", err))
		}
		view, err := toView(current, true)
		if err != nil {
			return nil, s.fail(span, err)
		}
		return &MutationResult{Success: true, Document: view}, nil
	}

	stored, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrUnknownClient):
			return nil, ErrClientNotFound
		}
		return nil, s.fail(span, fmt.Errorf("update document: %w", err))
	}

	s.metrics.DocumentUpdated()
	s.notifier.Revalidate(documentsPath, documentsPath+"/"+stored.ID)
	s.log.Info().
		Str("document_id", stored.ID).
		Str("status", string(stored.Status)).
		Bool("line_items_replaced", in.LineItems != nil).
		Msg("document_updated")

	view, err := toView(stored, true)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return &MutationResult{Success: true, Document: view}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*DocumentView, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toView(doc, true)
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	out := &DocumentListResult{Items: make([]DocumentView, 0, len(res.Items)), Total: res.Total}
	for i := range res.Items {
		v, err := toView(&res.Items[i], false)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *v)
	}
	return out, nil
}

// nextReference allocates the display reference of a new document of type t.
func (s *documentService) nextReference(ctx context.Context, t model.DocumentType) (string, error) {
	now := s.now().In(s.loc)
	year := now.Year()

	if s.strategy == billing.StrategyCounter {
		n, err := s.repo.NextSequence(ctx, year)
		if err != nil {
			return "", fmt.Errorf("next sequence: %w", err)
		}
		return billing.FormatReference(t, year, n-1), nil
	}

	count, err := s.repo.CountSince(ctx, billing.StartOfYear(now))
	if err != nil {
		return "", fmt.Errorf("count documents: %w", err)
	}
	return billing.FormatReference(t, year, count), nil
}

func (s *documentService) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
