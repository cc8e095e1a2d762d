package service

import (
	"context"
	"testing"
	"time"

	"commerce-admin/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestDashboardComposesScopes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := &ReportService{
		store:  store.NewWithDB(sqlx.NewDb(db, "postgres")),
		logger: zaptest.NewLogger(t),
	}

	now := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	count := func(n int64) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"count"}).AddRow(n)
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders$`).
		WillReturnRows(count(12))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE status = \$1`).
		WithArgs("pending").
		WillReturnRows(count(4))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE status = \$1`).
		WithArgs("completed").
		WillReturnRows(count(6))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE status = \$1 AND created_at >= \$2 AND created_at < \$3`).
		WithArgs("completed", start, end).
		WillReturnRows(count(3))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) FROM orders WHERE status = \$1 AND created_at >= \$2 AND created_at < \$3`).
		WithArgs("completed", start, end).
		WillReturnRows(count(45049))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
		WillReturnRows(count(20))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(count(8))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM chat_messages`).
		WillReturnRows(count(2))

	report, err := svc.Dashboard(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, int64(12), report.TotalOrders)
	assert.Equal(t, int64(4), report.PendingOrders)
	assert.Equal(t, int64(6), report.CompletedOrders)
	assert.Equal(t, int64(3), report.CompletedThisMonth)
	assert.Equal(t, int64(45049), report.RevenueThisMonth)
	assert.Equal(t, int64(20), report.TotalProducts)
	assert.Equal(t, int64(8), report.TotalUsers)
	assert.Equal(t, int64(2), report.UnreadChatMessages)
	assert.Equal(t, now, report.GeneratedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
