package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"commerce-admin/internal/service"
	"commerce-admin/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderRoutes(t *testing.T) (sqlmock.Sqlmock, *gin.Engine) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	orders := service.NewOrderService(store.NewWithDB(sqlx.NewDb(db, "postgres")), nil)
	h := NewHandler(orders, nil, nil, nil, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/orders", h.listOrders)
	router.GET("/orders/:id", h.getOrder)
	router.PATCH("/orders/:id/status", h.updateOrderStatus)
	router.GET("/notifications", h.listNotifications)

	return mock, router
}

func TestGetOrderNotFound(t *testing.T) {
	mock, router := setupOrderRoutes(t)

	mock.ExpectQuery(`SELECT \* FROM orders WHERE id = \$1`).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest(http.MethodGet, "/orders/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusRejectsUnknownValue(t *testing.T) {
	mock, router := setupOrderRoutes(t)

	body := strings.NewReader(`{"status":"shipped"}`)
	req := httptest.NewRequest(http.MethodPatch, "/orders/5/status", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	// The row must be untouched on rejection.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusSuccess(t *testing.T) {
	mock, router := setupOrderRoutes(t)
	created := time.Now()

	mock.ExpectQuery(`SELECT \* FROM orders WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "total_amount", "status", "payment_status",
			"shipping_address", "created_at", "updated_at",
		}).AddRow(5, 3, 45049, "pending", "unpaid", "12 Main St", created, created))

	mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("completed", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := strings.NewReader(`{"status":"completed"}`)
	req := httptest.NewRequest(http.MethodPatch, "/orders/5/status", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status_color":"success"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrdersRejectsUnknownScopeValue(t *testing.T) {
	_, router := setupOrderRoutes(t)

	req := httptest.NewRequest(http.MethodGet, "/orders?status=bogus", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListOrdersComposedScopes(t *testing.T) {
	mock, router := setupOrderRoutes(t)

	mock.ExpectQuery(`SELECT \* FROM orders WHERE status = \$1 AND created_at >= \$2 AND created_at < \$3 ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "total_amount", "status", "payment_status",
			"shipping_address", "created_at", "updated_at",
		}))

	req := httptest.NewRequest(http.MethodGet, "/orders?status=completed&this_month=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"orders":[]`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationsRequireAdminIdentity(t *testing.T) {
	_, router := setupOrderRoutes(t)

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
