package store

import (
	"context"
	"testing"
	"time"

	"commerce-admin/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderFilterCompositionIsOrderIndependent(t *testing.T) {
	now := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)

	a, argsA := Orders().Completed().ThisMonth(now).whereClause()
	b, argsB := Orders().ThisMonth(now).Completed().whereClause()

	assert.Equal(t, a, b)
	assert.Equal(t, argsA, argsB)

	c, argsC := Orders().ForUser(7).PaymentStatus(models.PaymentStatusPaid).Pending().whereClause()
	d, argsD := Orders().Pending().PaymentStatus(models.PaymentStatusPaid).ForUser(7).whereClause()

	assert.Equal(t, c, d)
	assert.Equal(t, argsC, argsD)
}

func TestOrderFilterEmpty(t *testing.T) {
	clause, args := Orders().whereClause()
	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestThisMonthCalendarBoundary(t *testing.T) {
	// One second into February: January 31 23:59:59 is out, February 1
	// 00:00:00 is in.
	now := time.Date(2024, time.February, 1, 0, 0, 1, 0, time.UTC)

	clause, args := Orders().ThisMonth(now).whereClause()
	assert.Equal(t, " WHERE created_at >= $1 AND created_at < $2", clause)
	require.Len(t, args, 2)

	start := args[0].(time.Time)
	end := args[1].(time.Time)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), end)

	lastOfJanuary := time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC)
	firstOfFebruary := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, lastOfJanuary.Before(start))
	assert.False(t, firstOfFebruary.Before(start))
	assert.True(t, firstOfFebruary.Before(end))
}

func TestThisMonthDecemberRollsOver(t *testing.T) {
	now := time.Date(2023, time.December, 15, 8, 30, 0, 0, time.UTC)

	_, args := Orders().ThisMonth(now).whereClause()
	require.Len(t, args, 2)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), args[1].(time.Time))
}

func TestSumOrderTotalsExact(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	// Three completed orders this month: 100.00, 250.50 and 99.99 in cents.
	total := int64(10000 + 25050 + 9999)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) FROM orders WHERE status = \$1 AND created_at >= \$2 AND created_at < \$3`).
		WithArgs("completed", start, end).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(total))

	sum, err := s.SumOrderTotals(context.Background(), Orders().Completed().ThisMonth(now))
	require.NoError(t, err)
	assert.Equal(t, int64(45049), sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountOrdersWithFilter(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE status = \$1`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := s.CountOrders(context.Background(), Orders().Pending())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusAtomicSingleStatement(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("processing", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdateOrderStatus(context.Background(), 5, models.OrderStatusProcessing)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("completed", int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateOrderStatus(context.Background(), 404, models.OrderStatusCompleted)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderPaymentStatusNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE orders SET payment_status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("paid", int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateOrderPaymentStatus(context.Background(), 404, models.PaymentStatusPaid)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderByIDNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM orders WHERE id = \$1`).
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.GetOrderByID(context.Background(), 12)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrdersWithBasicRelations(t *testing.T) {
	s, mock := newMockStore(t)
	created := time.Date(2024, time.February, 2, 9, 0, 0, 0, time.UTC)

	orderRows := sqlmock.NewRows([]string{
		"id", "user_id", "total_amount", "status", "payment_status",
		"shipping_address", "created_at", "updated_at",
	}).AddRow(7, 3, 45049, "completed", "paid", "12 Main St", created, created)

	mock.ExpectQuery(`SELECT \* FROM orders WHERE status = \$1 ORDER BY created_at DESC`).
		WithArgs("completed").
		WillReturnRows(orderRows)

	mock.ExpectQuery(`SELECT id, name, email FROM users WHERE id IN \(\$1\)`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(3, "Ada", "ada@example.com"))

	mock.ExpectQuery(`SELECT \* FROM order_items WHERE order_id IN \(\$1\) ORDER BY id`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "price"}).
			AddRow(1, 7, 10, 2, 10000).
			AddRow(2, 7, 11, 1, 25049))

	mock.ExpectQuery(`SELECT id, name, price FROM products WHERE id IN \(\$1, \$2\)`).
		WithArgs(int64(10), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).
			AddRow(10, "Mug", 10500).
			AddRow(11, "Plate", 25049))

	orders, err := s.ListOrders(context.Background(),
		Orders().Completed().WithBasicRelations())
	require.NoError(t, err)
	require.Len(t, orders, 1)

	order := orders[0]
	require.NotNil(t, order.User)
	assert.Equal(t, models.UserRef{ID: 3, Name: "Ada", Email: "ada@example.com"}, *order.User)

	require.Len(t, order.Items, 2)
	require.NotNil(t, order.Items[0].Product)
	// The nested product carries only id, name and the live price; the line
	// item keeps its own snapshot.
	assert.Equal(t, models.ProductRef{ID: 10, Name: "Mug", Price: 10500}, *order.Items[0].Product)
	assert.Equal(t, int64(10000), order.Items[0].Price)

	assert.NoError(t, mock.ExpectationsWereMet())
}
