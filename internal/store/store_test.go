package store

import (
	"context"
	"testing"

	"commerce-admin/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewWithDB(sqlx.NewDb(db, "postgres")), mock
}

func TestUpdateProductNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("UPDATE products").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateProduct(context.Background(), &models.Product{ID: 42, Name: "Mug", Price: 900})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByIDNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM products WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}))

	_, err := s.GetProductByID(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProductsByCategory(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "name", "price", "category"}).
		AddRow(1, "Mug", 900, "kitchen").
		AddRow(2, "Plate", 1200, "kitchen")

	mock.ExpectQuery(`SELECT \* FROM products WHERE .+ ORDER BY id`).
		WithArgs("kitchen", "").
		WillReturnRows(rows)

	products, err := s.ListProducts(context.Background(), "kitchen", "")
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "Mug", products[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
