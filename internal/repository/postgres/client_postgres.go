package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"billdocs/internal/model"
	"billdocs/internal/repository"
)

const clientColumns = `id, name, email, phone, address, created_at, updated_at`

// ClientPostgres is a PostgreSQL implementation of repository.ClientRepository.
type ClientPostgres struct {
	db *sql.DB
}

func NewClientPostgres(db *sql.DB) *ClientPostgres {
	return &ClientPostgres{db: db}
}

var _ repository.ClientRepository = (*ClientPostgres)(nil)

func scanClient(scanner interface{ Scan(...any) error }) (*model.Client, error) {
	var c model.Client
	if err := scanner.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientPostgres) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	const q = `
		INSERT INTO clients (id, name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + clientColumns
	return scanClient(r.db.QueryRowContext(ctx, q, c.ID, c.Name, c.Email, c.Phone, c.Address))
}

func (r *ClientPostgres) FindByID(ctx context.Context, id string) (*model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return scanClient(r.db.QueryRowContext(ctx, q, id))
}

func (r *ClientPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Client], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&total); err != nil {
		return nil, err
	}

	var limit any
	if pq.Limit > 0 {
		limit = pq.Limit
	}
	const q = `SELECT ` + clientColumns + ` FROM clients ORDER BY name ASC, id ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, limit, max(pq.Offset, 0))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Client]{Items: items, Total: total}, nil
}

// Update changes the live client record only. Documents keep their snapshots.
func (r *ClientPostgres) Update(ctx context.Context, id string, patch model.ClientPatch) (*model.Client, error) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.Phone != nil {
		set("phone", *patch.Phone)
	}
	if patch.Address != nil {
		set("address", *patch.Address)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE clients SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), clientColumns)
	return scanClient(r.db.QueryRowContext(ctx, q, args...))
}
