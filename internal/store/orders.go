package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"commerce-admin/internal/models"

	"github.com/jmoiron/sqlx"
)

// OrderFilter is a composable set of conjunctive predicates over orders.
// Scopes chain by value, each returning a widened copy; because every scope
// sets its own field and the WHERE clause is rendered in a fixed column
// order, any chain order yields the same query.
type OrderFilter struct {
	status        *models.OrderStatus
	paymentStatus *models.PaymentStatus
	userID        *int64
	createdFrom   *time.Time
	createdUntil  *time.Time
	withBasic     bool
}

// Orders returns the empty filter matching every order.
func Orders() OrderFilter {
	return OrderFilter{}
}

// Status narrows to orders with the given fulfillment status.
func (f OrderFilter) Status(status models.OrderStatus) OrderFilter {
	f.status = &status
	return f
}

// Completed narrows to completed orders.
func (f OrderFilter) Completed() OrderFilter {
	return f.Status(models.OrderStatusCompleted)
}

// Pending narrows to pending orders.
func (f OrderFilter) Pending() OrderFilter {
	return f.Status(models.OrderStatusPending)
}

// PaymentStatus narrows to orders with the given payment status.
func (f OrderFilter) PaymentStatus(status models.PaymentStatus) OrderFilter {
	f.paymentStatus = &status
	return f
}

// ForUser narrows to orders owned by the given user.
func (f OrderFilter) ForUser(userID int64) OrderFilter {
	f.userID = &userID
	return f
}

// ThisMonth narrows to orders created within now's calendar month. The clock
// is an explicit argument so queries are deterministic under test. The range
// form keeps the (status, created_at) index usable.
func (f OrderFilter) ThisMonth(now time.Time) OrderFilter {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)
	f.createdFrom = &start
	f.createdUntil = &end
	return f
}

// WithBasicRelations requests the minimal user {id,name,email} and product
// {id,name,price} projections on returned orders. Shape only, not a filter.
func (f OrderFilter) WithBasicRelations() OrderFilter {
	f.withBasic = true
	return f
}

// whereClause renders the predicates in fixed column order.
func (f OrderFilter) whereClause() (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(column, op string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s %s $%d", column, op, len(args)))
	}

	if f.status != nil {
		add("status", "=", *f.status)
	}
	if f.paymentStatus != nil {
		add("payment_status", "=", *f.paymentStatus)
	}
	if f.userID != nil {
		add("user_id", "=", *f.userID)
	}
	if f.createdFrom != nil {
		add("created_at", ">=", *f.createdFrom)
	}
	if f.createdUntil != nil {
		add("created_at", "<", *f.createdUntil)
	}

	if len(conds) == 0 {
		return "", nil
	}

	clause := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		clause += " AND " + c
	}
	return clause, args
}

// CreateOrder creates an order with its line items in one transaction.
// Line item prices are snapshots supplied by the caller.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderLineItem) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (user_id, total_amount, status, payment_status, shipping_address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	if err := tx.GetContext(ctx, order, query,
		order.UserID, order.TotalAmount, order.Status, order.PaymentStatus, order.ShippingAddress); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	for i := range items {
		items[i].OrderID = order.ID
		if err := tx.GetContext(ctx, &items[i].ID, itemQuery,
			items[i].OrderID, items[i].ProductID, items[i].Quantity, items[i].Price); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit()
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, models.NotFoundErr("order", id)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders retrieves orders matching the filter, newest first.
func (s *Store) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	clause, args := filter.whereClause()

	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders"+clause+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, err
	}

	if filter.withBasic {
		if err := s.attachBasicRelations(ctx, orders); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// CountOrders counts orders matching the filter.
func (s *Store) CountOrders(ctx context.Context, filter OrderFilter) (int64, error) {
	clause, args := filter.whereClause()

	var n int64
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM orders"+clause, args...)
	return n, err
}

// SumOrderTotals sums total_amount over orders matching the filter. Amounts
// are integer cents, so the sum is exact.
func (s *Store) SumOrderTotals(ctx context.Context, filter OrderFilter) (int64, error) {
	clause, args := filter.whereClause()

	var sum int64
	err := s.db.GetContext(ctx, &sum,
		"SELECT COALESCE(SUM(total_amount), 0) FROM orders"+clause, args...)
	return sum, err
}

// UpdateOrderStatus persists an already-validated status. A single statement
// keeps the update atomic per row; concurrent writers serialize on the row
// lock, last writer wins.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2",
		status, orderID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return models.NotFoundErr("order", orderID)
	}
	return nil
}

// UpdateOrderPaymentStatus persists an already-validated payment status.
func (s *Store) UpdateOrderPaymentStatus(ctx context.Context, orderID int64, status models.PaymentStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET payment_status = $1, updated_at = NOW() WHERE id = $2",
		status, orderID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return models.NotFoundErr("order", orderID)
	}
	return nil
}

// GetOrderItemsByOrderID retrieves all line items for an order
func (s *Store) GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderLineItem, error) {
	var items []models.OrderLineItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", orderID)
	return items, err
}

// AttachBasicRelations loads the minimal user and product projections onto
// the given orders without further per-row round trips.
func (s *Store) AttachBasicRelations(ctx context.Context, orders []models.Order) error {
	return s.attachBasicRelations(ctx, orders)
}

func (s *Store) attachBasicRelations(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	userIDs := make([]int64, 0, len(orders))
	orderIDs := make([]int64, 0, len(orders))
	seenUsers := make(map[int64]bool)
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		if !seenUsers[o.UserID] {
			seenUsers[o.UserID] = true
			userIDs = append(userIDs, o.UserID)
		}
	}

	query, args, err := sqlx.In("SELECT id, name, email FROM users WHERE id IN (?)", userIDs)
	if err != nil {
		return err
	}
	var users []models.UserRef
	if err := s.db.SelectContext(ctx, &users, s.db.Rebind(query), args...); err != nil {
		return err
	}
	usersByID := make(map[int64]*models.UserRef, len(users))
	for i := range users {
		usersByID[users[i].ID] = &users[i]
	}

	query, args, err = sqlx.In("SELECT * FROM order_items WHERE order_id IN (?) ORDER BY id", orderIDs)
	if err != nil {
		return err
	}
	var items []models.OrderLineItem
	if err := s.db.SelectContext(ctx, &items, s.db.Rebind(query), args...); err != nil {
		return err
	}

	productIDs := make([]int64, 0, len(items))
	seenProducts := make(map[int64]bool)
	for _, it := range items {
		if !seenProducts[it.ProductID] {
			seenProducts[it.ProductID] = true
			productIDs = append(productIDs, it.ProductID)
		}
	}

	productsByID := make(map[int64]*models.ProductRef)
	if len(productIDs) > 0 {
		query, args, err = sqlx.In("SELECT id, name, price FROM products WHERE id IN (?)", productIDs)
		if err != nil {
			return err
		}
		var products []models.ProductRef
		if err := s.db.SelectContext(ctx, &products, s.db.Rebind(query), args...); err != nil {
			return err
		}
		for i := range products {
			productsByID[products[i].ID] = &products[i]
		}
	}

	itemsByOrder := make(map[int64][]models.OrderLineItem, len(orders))
	for _, it := range items {
		it.Product = productsByID[it.ProductID]
		itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], it)
	}

	for i := range orders {
		orders[i].User = usersByID[orders[i].UserID]
		orders[i].Items = itemsByOrder[orders[i].ID]
	}
	return nil
}
