package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billdocs/internal/model"
	"billdocs/internal/repository"
)

var clientRowColumns = []string{"id", "name", "email", "phone", "address", "created_at", "updated_at"}

func TestClientPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewClientPostgres(db)
	now := time.Now()
	email := "alice@example.com"

	mock.ExpectQuery("INSERT INTO clients").
		WithArgs("client-1", "Alice Dupont", "alice@example.com", nil, "1 rue de la Paix").
		WillReturnRows(sqlmock.NewRows(clientRowColumns).
			AddRow("client-1", "Alice Dupont", email, nil, "1 rue de la Paix", now, now))

	c, err := repo.Create(context.Background(), &model.Client{
		ID:      "client-1",
		Name:    "Alice Dupont",
		Email:   &email,
		Address: "1 rue de la Paix",
	})

	require.NoError(t, err)
	assert.Equal(t, "client-1", c.ID)
	assert.Nil(t, c.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewClientPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM clients WHERE id = ?").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(clientRowColumns))

	c, err := repo.FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, c)
}

func TestClientPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewClientPostgres(db)
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM clients").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT (.+) FROM clients ORDER BY name ASC").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(clientRowColumns).
			AddRow("c-1", "Alice", nil, nil, "", now, now).
			AddRow("c-2", "Bruno", nil, nil, "", now, now))

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 20, Offset: -5})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewClientPostgres(db)
	now := time.Now()
	name := "Alice Martin"

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE clients SET name = $1, updated_at = now() WHERE id = $2")).
		WithArgs("Alice Martin", "client-1").
		WillReturnRows(sqlmock.NewRows(clientRowColumns).
			AddRow("client-1", "Alice Martin", nil, nil, "1 rue de la Paix", now, now))

	c, err := repo.Update(context.Background(), "client-1", model.ClientPatch{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Alice Martin", c.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
