package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billdocs/internal/billing"
	"billdocs/internal/model"
	"billdocs/internal/repository"
	repoMocks "billdocs/internal/repository/mocks"
)

const clientUUID = "5b0c9f7e-3b1d-4a77-9d6e-2f1c8f6a1e01"

type recordingNotifier struct {
	mu    sync.Mutex
	paths [][]string
}

func (n *recordingNotifier) Revalidate(paths ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, paths)
}

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC) }
}

// storedCopy echoes the inserted document back the way the database would.
func storedCopy(_ context.Context, doc *model.Document) *model.Document {
	out := *doc
	out.CreatedAt = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	out.UpdatedAt = out.CreatedAt
	return &out
}

func lines(pairs ...string) []LineItemInput {
	var out []LineItemInput
	for i := 0; i+2 < len(pairs); i += 3 {
		out = append(out, LineItemInput{
			Label:     pairs[i],
			Quantity:  decimal.RequireFromString(pairs[i+1]),
			UnitPrice: decimal.RequireFromString(pairs[i+2]),
		})
	}
	return out
}

func validCreate() CreateDocumentInput {
	return CreateDocumentInput{
		Type:                  model.TypeQuote,
		ClientNameSnapshot:    "Brasserie du Port",
		ClientAddressSnapshot: "3 quai des Chartrons, Bordeaux",
		IssueDate:             "2026-03-10",
		DueDate:               "2026-04-09",
		LineItems:             lines("Menu du jour", "2", "10.00", "Café", "1", "5.50"),
	}
}

func TestDocumentService_Create(t *testing.T) {
	t.Run("computes totals and reference from the yearly count", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		notifier := &recordingNotifier{}
		paris, err := time.LoadLocation("Europe/Paris")
		require.NoError(t, err)

		svc := NewDocumentService(mRepo, nil,
			WithClock(fixedClock()),
			WithLocation(paris),
			WithNotifier(notifier),
		)

		mRepo.On("CountSince", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
			return since.Equal(time.Date(2026, time.January, 1, 0, 0, 0, 0, paris))
		})).Return(6, nil)
		mRepo.On("Create", mock.Anything, mock.MatchedBy(func(doc *model.Document) bool {
			return doc.DisplayReference == "D-2026-007" &&
				doc.Status == model.StatusDraft &&
				doc.Subtotal.Equal(decimal.RequireFromString("25.50")) &&
				doc.TaxAmount.IsZero() &&
				doc.Total.Equal(doc.Subtotal) &&
				doc.ID != ""
		})).Return(storedCopy, nil)

		res, err := svc.Create(context.Background(), validCreate())
		require.NoError(t, err)
		require.True(t, res.Success)

		doc := res.Document
		assert.Equal(t, "D-2026-007", doc.DisplayReference)
		assert.Equal(t, "25.50", doc.Subtotal)
		assert.Equal(t, "0.00", doc.TaxAmount)
		assert.Equal(t, "25.50", doc.Total)
		require.Len(t, doc.LineItems, 2)
		assert.Equal(t, LineItemView{Label: "Menu du jour", Quantity: "2", UnitPrice: "10.00", Amount: "20.00"}, doc.LineItems[0])
		assert.Equal(t, "Brasserie du Port", doc.ClientNameSnapshot)

		require.Len(t, notifier.paths, 1)
		assert.Equal(t, []string{"/admin/documents", "/admin/documents/" + doc.ID}, notifier.paths[0])
		mRepo.AssertExpectations(t)
	})

	t.Run("keeps sub-cent amounts exact", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil, WithClock(fixedClock()))

		in := validCreate()
		in.LineItems = lines("Vis", "0.333", "0.333", "Écrou", "3", "0.125")

		mRepo.On("CountSince", mock.Anything, mock.Anything).Return(0, nil)
		mRepo.On("Create", mock.Anything, mock.MatchedBy(func(doc *model.Document) bool {
			return doc.Subtotal.Equal(decimal.RequireFromString("0.485889"))
		})).Return(func(ctx context.Context, doc *model.Document) *model.Document {
			out := storedCopy(ctx, doc)
			// NUMERIC(24,8) scans back padded to eight places.
			out.Subtotal = decimal.RequireFromString("0.48588900")
			out.Total = out.Subtotal
			return out
		}, nil)

		res, err := svc.Create(context.Background(), in)
		require.NoError(t, err)

		doc := res.Document
		assert.Equal(t, "0.485889", doc.Subtotal)
		assert.Equal(t, "0.485889", doc.Total)
		assert.Equal(t, LineItemView{Label: "Vis", Quantity: "0.333", UnitPrice: "0.333", Amount: "0.110889"}, doc.LineItems[0])
		assert.Equal(t, LineItemView{Label: "Écrou", Quantity: "3", UnitPrice: "0.125", Amount: "0.375"}, doc.LineItems[1])

		// Sending the returned lines back yields the same total.
		var sum decimal.Decimal
		for _, it := range doc.LineItems {
			sum = sum.Add(decimal.RequireFromString(it.Quantity).Mul(decimal.RequireFromString(it.UnitPrice)))
		}
		assert.Equal(t, doc.Total, money(sum))
	})

	t.Run("counter strategy", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil,
			WithClock(func() time.Time { return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC) }),
			WithReferenceStrategy(billing.StrategyCounter),
		)

		in := validCreate()
		in.Type = model.TypeInvoice
		mRepo.On("NextSequence", mock.Anything, 2025).Return(1, nil)
		mRepo.On("Create", mock.Anything, mock.MatchedBy(func(doc *model.Document) bool {
			return doc.DisplayReference == "F-2025-001"
		})).Return(storedCopy, nil)

		res, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "F-2025-001", res.Document.DisplayReference)
		mRepo.AssertNotCalled(t, "CountSince", mock.Anything, mock.Anything)
	})

	t.Run("snapshot copied from the live client", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mClients := new(repoMocks.MockClientRepository)
		svc := NewDocumentService(mRepo, mClients, WithClock(fixedClock()))

		in := validCreate()
		id := clientUUID
		in.ClientID = &id
		in.ClientNameSnapshot = ""
		in.ClientAddressSnapshot = ""

		mClients.On("FindByID", mock.Anything, clientUUID).
			Return(&model.Client{ID: clientUUID, Name: "Le Petit Zinc", Address: "12 rue Sainte-Catherine"}, nil)
		mRepo.On("CountSince", mock.Anything, mock.Anything).Return(0, nil)
		mRepo.On("Create", mock.Anything, mock.MatchedBy(func(doc *model.Document) bool {
			return doc.ClientNameSnapshot == "Le Petit Zinc" &&
				doc.ClientAddressSnapshot == "12 rue Sainte-Catherine" &&
				*doc.ClientID == clientUUID
		})).Return(storedCopy, nil)

		res, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "Le Petit Zinc", res.Document.ClientNameSnapshot)
		mClients.AssertExpectations(t)
	})

	t.Run("unknown client", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mClients := new(repoMocks.MockClientRepository)
		svc := NewDocumentService(mRepo, mClients)

		in := validCreate()
		id := clientUUID
		in.ClientID = &id
		in.ClientNameSnapshot = ""

		mClients.On("FindByID", mock.Anything, clientUUID).Return(nil, sql.ErrNoRows)

		_, err := svc.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrClientNotFound)
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate reference", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil, WithClock(fixedClock()))

		mRepo.On("CountSince", mock.Anything, mock.Anything).Return(6, nil)
		mRepo.On("Create", mock.Anything, mock.Anything).
			Return(nil, repository.ErrDuplicateReference)

		_, err := svc.Create(context.Background(), validCreate())
		assert.ErrorIs(t, err, ErrDuplicateReference)
		assert.Contains(t, err.Error(), "D-2026-007")
	})

	t.Run("persistence error is wrapped", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		notifier := &recordingNotifier{}
		svc := NewDocumentService(mRepo, nil, WithClock(fixedClock()), WithNotifier(notifier))

		dbErr := errors.New("connection reset")
		mRepo.On("CountSince", mock.Anything, mock.Anything).Return(0, nil)
		mRepo.On("Create", mock.Anything, mock.Anything).Return(nil, dbErr)

		_, err := svc.Create(context.Background(), validCreate())
		assert.ErrorIs(t, err, dbErr)
		assert.EqualError(t, err, "create document: connection reset")
		assert.Empty(t, notifier.paths)
	})

	t.Run("count failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil)

		mRepo.On("CountSince", mock.Anything, mock.Anything).Return(0, errors.New("timeout"))

		_, err := svc.Create(context.Background(), validCreate())
		assert.EqualError(t, err, "count documents: timeout")
	})
}

func TestDocumentService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *CreateDocumentInput)
		problem string
	}{
		{
			name:    "no line items",
			mutate:  func(in *CreateDocumentInput) { in.LineItems = nil },
			problem: "line_items is required",
		},
		{
			name:    "empty line items",
			mutate:  func(in *CreateDocumentInput) { in.LineItems = []LineItemInput{} },
			problem: "line_items must have at least 1 element(s)",
		},
		{
			name:    "negative quantity",
			mutate:  func(in *CreateDocumentInput) { in.LineItems = lines("Retour", "-1", "5") },
			problem: "line_items[0].quantity must be >= 0",
		},
		{
			name:    "negative unit price",
			mutate:  func(in *CreateDocumentInput) { in.LineItems = lines("Remise", "1", "-5") },
			problem: "line_items[0].unit_price must be >= 0",
		},
		{
			name:    "quantity too large to expand",
			mutate:  func(in *CreateDocumentInput) { in.LineItems = lines("Sable", "1e10000000", "5") },
			problem: "line_items[0].quantity must be less than 10000000000",
		},
		{
			name:    "exponent beyond int32 once multiplied",
			mutate:  func(in *CreateDocumentInput) { in.LineItems = lines("Sable", "1e2000000000", "1e2000000000") },
			problem: "line_items[0].unit_price must be less than 10000000000",
		},
		{
			name:    "unit price with a tiny exponent",
			mutate:  func(in *CreateDocumentInput) { in.LineItems = lines("Sel", "1", "1e-10000000") },
			problem: "line_items[0].unit_price must have at most 4 decimal places",
		},
		{
			name:    "quantity with five decimal places",
			mutate:  func(in *CreateDocumentInput) { in.LineItems = lines("Safran", "0.12345", "30") },
			problem: "line_items[0].quantity must have at most 4 decimal places",
		},
		{
			name:    "unit price over ten integer digits",
			mutate:  func(in *CreateDocumentInput) { in.LineItems = lines("Yacht", "1", "10000000000") },
			problem: "line_items[0].unit_price must be less than 10000000000",
		},
		{
			name:    "total over the stored range",
			mutate:  func(in *CreateDocumentInput) { in.LineItems = lines("Cargo", "9999999999", "9999999999") },
			problem: "line_items total must be less than 10000000000000000",
		},
		{
			name: "too many line items",
			mutate: func(in *CreateDocumentInput) {
				in.LineItems = make([]LineItemInput, 501)
				for i := range in.LineItems {
					in.LineItems[i] = lines("Verre", "1", "2")[0]
				}
			},
			problem: "line_items must have at most 500 element(s)",
		},
		{
			name:    "missing label",
			mutate:  func(in *CreateDocumentInput) { in.LineItems = lines("", "1", "5") },
			problem: "line_items[0].label is required",
		},
		{
			name:    "unknown type",
			mutate:  func(in *CreateDocumentInput) { in.Type = "RECEIPT" },
			problem: "type must be one of: QUOTE INVOICE CREDIT_NOTE",
		},
		{
			name:    "bad date",
			mutate:  func(in *CreateDocumentInput) { in.IssueDate = "10/03/2026" },
			problem: "issue_date must be a date formatted YYYY-MM-DD",
		},
		{
			name:    "no client at all",
			mutate:  func(in *CreateDocumentInput) { in.ClientNameSnapshot = "" },
			problem: "client_name_snapshot is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(mRepo, nil)

			in := validCreate()
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), in)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Problems, tt.problem)
			mRepo.AssertNotCalled(t, "CountSince", mock.Anything, mock.Anything)
			mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestDocumentService_Update(t *testing.T) {
	ctx := context.Background()
	existing := func() *model.Document {
		blob, _ := billing.EncodeLineItems([]model.LineItem{{
			Label:     "Menu du jour",
			Quantity:  decimal.NewFromInt(2),
			UnitPrice: decimal.RequireFromString("10.00"),
		}})
		return &model.Document{
			ID:               "doc-1",
			DisplayReference: "F-2026-003",
			Type:             model.TypeInvoice,
			Status:           model.StatusSent,
			LineItems:        blob,
			Subtotal:         decimal.RequireFromString("20"),
			TaxAmount:        decimal.Zero,
			Total:            decimal.RequireFromString("20"),
		}
	}

	t.Run("status only leaves totals untouched", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		notifier := &recordingNotifier{}
		svc := NewDocumentService(mRepo, nil, WithNotifier(notifier))

		paid := model.StatusPaid
		mRepo.On("Update", mock.Anything, "doc-1", model.DocumentPatch{Status: &paid}).
			Return(func(_ context.Context, _ string, _ model.DocumentPatch) *model.Document {
				d := existing()
				d.Status = model.StatusPaid
				return d
			}, nil)

		res, err := svc.Update(ctx, "doc-1", UpdateDocumentInput{Status: &paid})
		require.NoError(t, err)
		assert.Equal(t, model.StatusPaid, res.Document.Status)
		assert.Equal(t, "20.00", res.Document.Total)
		assert.Equal(t, [][]string{{"/admin/documents", "/admin/documents/doc-1"}}, notifier.paths)
		mRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("line items replace blob and totals together", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil)

		items := lines("Plateau de fruits de mer", "1", "42.00", "Vin au verre", "0.5", "7.30")
		mRepo.On("Update", mock.Anything, "doc-1", mock.MatchedBy(func(p model.DocumentPatch) bool {
			return p.LineItems != nil &&
				p.Subtotal.Equal(decimal.RequireFromString("45.65")) &&
				p.TaxAmount.IsZero() &&
				p.Total.Equal(decimal.RequireFromString("45.65")) &&
				p.Status == nil
		})).Return(func(_ context.Context, _ string, p model.DocumentPatch) *model.Document {
			d := existing()
			d.LineItems = p.LineItems
			d.Subtotal, d.TaxAmount, d.Total = *p.Subtotal, *p.TaxAmount, *p.Total
			return d
		}, nil)

		res, err := svc.Update(ctx, "doc-1", UpdateDocumentInput{LineItems: &items})
		require.NoError(t, err)
		assert.Equal(t, "45.65", res.Document.Total)
		require.Len(t, res.Document.LineItems, 2)
		assert.Equal(t, "0.5", res.Document.LineItems[1].Quantity)
		assert.Equal(t, "3.65", res.Document.LineItems[1].Amount)
	})

	t.Run("empty line items rejected", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil)

		empty := []LineItemInput{}
		_, err := svc.Update(ctx, "doc-1", UpdateDocumentInput{LineItems: &empty})
		assert.ErrorIs(t, err, ErrValidation)
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("detach client", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil)

		none := ""
		mRepo.On("Update", mock.Anything, "doc-1", model.DocumentPatch{ClientID: &none}).
			Return(existing(), nil)

		_, err := svc.Update(ctx, "doc-1", UpdateDocumentInput{ClientID: &none})
		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil)

		note := "relancé par téléphone"
		mRepo.On("Update", mock.Anything, "missing", mock.Anything).Return(nil, sql.ErrNoRows)

		_, err := svc.Update(ctx, "missing", UpdateDocumentInput{PrivateNotes: &note})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty payload writes nothing", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		notifier := &recordingNotifier{}
		svc := NewDocumentService(mRepo, nil, WithNotifier(notifier))

		mRepo.On("FindByID", mock.Anything, "doc-1").Return(existing(), nil)

		res, err := svc.Update(ctx, "doc-1", UpdateDocumentInput{})
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "F-2026-003", res.Document.DisplayReference)
		assert.Empty(t, notifier.paths)
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty payload on a missing document", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil)
		mRepo.On("FindByID", mock.Anything, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Update(ctx, "missing", UpdateDocumentInput{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("line items over the total bound rejected", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil)

		items := lines("Cargo", "9999999999", "9999999999")
		_, err := svc.Update(ctx, "doc-1", UpdateDocumentInput{LineItems: &items})
		assert.ErrorIs(t, err, ErrValidation)
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("id required", func(t *testing.T) {
		svc := NewDocumentService(new(repoMocks.MockDocumentRepository), nil)
		_, err := svc.Update(ctx, "", UpdateDocumentInput{})
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("strict policy rejects a backward move", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil, WithStatusPolicy(billing.StrictPolicy{}))

		draft := model.StatusDraft
		mRepo.On("FindByID", mock.Anything, "doc-1").Return(existing(), nil)

		_, err := svc.Update(ctx, "doc-1", UpdateDocumentInput{Status: &draft})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("strict policy allows a forward move", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil, WithStatusPolicy(billing.StrictPolicy{}))

		paid := model.StatusPaid
		mRepo.On("FindByID", mock.Anything, "doc-1").Return(existing(), nil)
		mRepo.On("Update", mock.Anything, "doc-1", model.DocumentPatch{Status: &paid}).Return(existing(), nil)

		_, err := svc.Update(ctx, "doc-1", UpdateDocumentInput{Status: &paid})
		require.NoError(t, err)
		mRepo.AssertExpectations(t)
	})
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes line items", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil)

		email := "contact@petitzinc.fr"
		mRepo.On("FindByID", ctx, "doc-1").Return(&model.Document{
			ID:        "doc-1",
			LineItems: []byte(`[{"label":"Café","quantity":"3","unit_price":"2.2"}]`),
			Subtotal:  decimal.RequireFromString("6.6"),
			Total:     decimal.RequireFromString("6.6"),
			Client:    &model.ClientSummary{ID: clientUUID, Name: "Le Petit Zinc", Email: &email},
		}, nil)

		doc, err := svc.Get(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "6.60", doc.Total)
		assert.Equal(t, []LineItemView{{Label: "Café", Quantity: "3", UnitPrice: "2.20", Amount: "6.60"}}, doc.LineItems)
		assert.Equal(t, "Le Petit Zinc", doc.Client.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil)
		mRepo.On("FindByID", ctx, "nope").Return(nil, sql.ErrNoRows)

		_, err := svc.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("id required", func(t *testing.T) {
		svc := NewDocumentService(new(repoMocks.MockDocumentRepository), nil)
		_, err := svc.Get(ctx, "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("all documents by default", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil)

		mRepo.On("List", ctx, repository.PageQuery{Limit: 0, Offset: 0}).
			Return(&repository.PageResult[model.Document]{
				Items: []model.Document{
					{ID: "b", DisplayReference: "F-2026-002", Total: decimal.NewFromInt(12)},
					{ID: "a", DisplayReference: "D-2026-001", Total: decimal.RequireFromString("8.5")},
				},
				Total: 2,
			}, nil)

		res, err := svc.List(ctx, -5, -1)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		require.Len(t, res.Items, 2)
		assert.Equal(t, "b", res.Items[0].ID)
		assert.Equal(t, "12.00", res.Items[0].Total)
		assert.Nil(t, res.Items[1].LineItems)
	})

	t.Run("paginated", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil)

		mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 20}).
			Return(&repository.PageResult[model.Document]{Items: nil, Total: 21}, nil)

		res, err := svc.List(ctx, 10, 20)
		require.NoError(t, err)
		assert.Empty(t, res.Items)
		assert.NotNil(t, res.Items)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo, nil)
		mRepo.On("List", ctx, mock.Anything).Return(nil, errors.New("db down"))

		_, err := svc.List(ctx, 10, 0)
		assert.EqualError(t, err, "db down")
	})
}
