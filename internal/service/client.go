package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"billdocs/internal/model"
	"billdocs/internal/repository"
	"billdocs/internal/revalidate"
)

type CreateClientInput struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Email   *string `json:"email" validate:"omitnil,email"`
	Phone   *string `json:"phone" validate:"omitnil,max=50"`
	Address string  `json:"address" validate:"max=500"`
}

type UpdateClientInput struct {
	Name    *string `json:"name" validate:"omitnil,min=1,max=200"`
	Email   *string `json:"email" validate:"omitnil,email"`
	Phone   *string `json:"phone" validate:"omitnil,max=50"`
	Address *string `json:"address" validate:"omitnil,max=500"`
}

type ClientListResult struct {
	Items []model.Client `json:"data"`
	Total int            `json:"total"`
}

// ClientService manages the client records documents may point at.
// Renaming a client never touches the snapshots of documents already issued.
type ClientService interface {
	Create(ctx context.Context, in CreateClientInput) (*model.Client, error)
	Get(ctx context.Context, id string) (*model.Client, error)
	List(ctx context.Context, limit, offset int) (*ClientListResult, error)
	Update(ctx context.Context, id string, in UpdateClientInput) (*model.Client, error)
}

type clientService struct {
	repo     repository.ClientRepository
	notifier revalidate.Notifier
}

func NewClientService(repo repository.ClientRepository, notifier revalidate.Notifier) ClientService {
	if notifier == nil {
		notifier = revalidate.Noop{}
	}
	return &clientService{repo: repo, notifier: notifier}
}

func (s *clientService) Create(ctx context.Context, in CreateClientInput) (*model.Client, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	c, err := s.repo.Create(ctx, &model.Client{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(in.Name),
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	s.notifier.Revalidate(clientsPath)
	return c, nil
}

func (s *clientService) Get(ctx context.Context, id string) (*model.Client, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *clientService) List(ctx context.Context, limit, offset int) (*ClientListResult, error) {
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	items := res.Items
	if items == nil {
		items = []model.Client{}
	}
	return &ClientListResult{Items: items, Total: res.Total}, nil
}

func (s *clientService) Update(ctx context.Context, id string, in UpdateClientInput) (*model.Client, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	c, err := s.repo.Update(ctx, id, model.ClientPatch{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("update client: %w", err)
	}
	s.notifier.Revalidate(clientsPath, clientsPath+"/"+c.ID)
	return c, nil
}
