package repository

import (
	"context"

	"billdocs/internal/model"
)

// ClientRepository persists the client records documents may reference.
type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) (*model.Client, error)
	FindByID(ctx context.Context, id string) (*model.Client, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Client], error)
	Update(ctx context.Context, id string, patch model.ClientPatch) (*model.Client, error)
}
