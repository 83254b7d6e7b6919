package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"billdocs/internal/model"
	"billdocs/internal/repository"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// documentColumns is shared by every read so scanDocument stays in sync with the queries.
const documentColumns = `d.id, d.display_reference, d.type, d.status, d.client_id,
		d.client_name_snapshot, d.client_address_snapshot, d.issue_date, d.due_date, d.line_items,
		d.subtotal, d.tax_amount, d.total, d.private_notes, d.legal_notices, d.created_at, d.updated_at,
		c.id, c.name, c.email`

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

func scanDocument(scanner interface{ Scan(...any) error }) (*model.Document, error) {
	var (
		d           model.Document
		clientID    sql.NullString
		clientName  sql.NullString
		clientEmail *string
	)
	if err := scanner.Scan(
		&d.ID,
		&d.DisplayReference,
		&d.Type,
		&d.Status,
		&d.ClientID,
		&d.ClientNameSnapshot,
		&d.ClientAddressSnapshot,
		&d.IssueDate,
		&d.DueDate,
		&d.LineItems,
		&d.Subtotal,
		&d.TaxAmount,
		&d.Total,
		&d.PrivateNotes,
		&d.LegalNotices,
		&d.CreatedAt,
		&d.UpdatedAt,
		&clientID,
		&clientName,
		&clientEmail,
	); err != nil {
		return nil, err
	}
	if clientID.Valid {
		d.Client = &model.ClientSummary{ID: clientID.String, Name: clientName.String, Email: clientEmail}
	}
	return &d, nil
}

// Create inserts a document row and returns it joined with its client.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		WITH d AS (
			INSERT INTO documents (id, display_reference, type, status, client_id,
				client_name_snapshot, client_address_snapshot, issue_date, due_date, line_items,
				subtotal, tax_amount, total, private_notes, legal_notices)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			RETURNING *
		)
		SELECT ` + documentColumns + `
		FROM d
		LEFT JOIN clients c ON c.id = d.client_id
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.DisplayReference,
		string(doc.Type),
		string(doc.Status),
		doc.ClientID,
		doc.ClientNameSnapshot,
		doc.ClientAddressSnapshot,
		doc.IssueDate,
		doc.DueDate,
		doc.LineItems,
		doc.Subtotal,
		doc.TaxAmount,
		doc.Total,
		doc.PrivateNotes,
		doc.LegalNotices,
	)
	out, err := scanDocument(row)
	if err != nil {
		switch pgCode(err) {
		case uniqueViolation:
			return nil, fmt.Errorf("%w: %s", repository.ErrDuplicateReference, doc.DisplayReference)
		case foreignKeyViolation:
			return nil, repository.ErrUnknownClient
		}
		return nil, err
	}
	return out, nil
}

// Update writes the fields present in patch in a single statement.
func (r *DocumentPostgres) Update(ctx context.Context, id string, patch model.DocumentPatch) (*model.Document, error) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.ClientID != nil {
		if *patch.ClientID == "" {
			set("client_id", nil)
		} else {
			set("client_id", *patch.ClientID)
		}
	}
	if patch.ClientNameSnapshot != nil {
		set("client_name_snapshot", *patch.ClientNameSnapshot)
	}
	if patch.ClientAddressSnapshot != nil {
		set("client_address_snapshot", *patch.ClientAddressSnapshot)
	}
	if patch.IssueDate != nil {
		set("issue_date", *patch.IssueDate)
	}
	if patch.DueDate != nil {
		set("due_date", *patch.DueDate)
	}
	if patch.LineItems != nil {
		set("line_items", patch.LineItems)
	}
	if patch.Subtotal != nil {
		set("subtotal", *patch.Subtotal)
	}
	if patch.TaxAmount != nil {
		set("tax_amount", *patch.TaxAmount)
	}
	if patch.Total != nil {
		set("total", *patch.Total)
	}
	if patch.PrivateNotes != nil {
		set("private_notes", *patch.PrivateNotes)
	}
	if patch.LegalNotices != nil {
		set("legal_notices", *patch.LegalNotices)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	q := fmt.Sprintf(`
		WITH d AS (
			UPDATE documents SET %s
			WHERE id = $%d
			RETURNING *
		)
		SELECT %s
		FROM d
		LEFT JOIN clients c ON c.id = d.client_id
	`, strings.Join(sets, ", "), len(args), documentColumns)

	out, err := scanDocument(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if pgCode(err) == foreignKeyViolation {
			return nil, repository.ErrUnknownClient
		}
		return nil, err
	}
	return out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents d
		LEFT JOIN clients c ON c.id = d.client_id
		WHERE d.id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns documents newest first using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	// LIMIT NULL is LIMIT ALL in PostgreSQL.
	var limit any
	if pq.Limit > 0 {
		limit = pq.Limit
	}
	offset := pq.Offset
	if offset < 0 {
		offset = 0
	}

	const qList = `
		SELECT ` + documentColumns + `
		FROM documents d
		LEFT JOIN clients c ON c.id = d.client_id
		ORDER BY d.created_at DESC, d.id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// CountSince counts documents created at or after since.
func (r *DocumentPostgres) CountSince(ctx context.Context, since time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM documents WHERE created_at >= $1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, since).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// NextSequence bumps the per-year counter in one upsert and returns the new value.
func (r *DocumentPostgres) NextSequence(ctx context.Context, year int) (int, error) {
	const q = `
		INSERT INTO document_sequences (year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE
		SET last_value = document_sequences.last_value + 1, updated_at = now()
		RETURNING last_value
	`
	var n int
	if err := r.db.QueryRowContext(ctx, q, year).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
