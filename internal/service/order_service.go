package service

import (
	"context"
	"fmt"
	"time"

	"commerce-admin/internal/broker"
	"commerce-admin/internal/models"
	"commerce-admin/internal/store"
	"commerce-admin/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService owns the order lifecycle: checkout, status transitions and
// scoped listing. Transitions are permissive: any status may move to any
// other, only out-of-set values are rejected.
type OrderService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store *store.Store, eventPublisher *broker.EventPublisher) *OrderService {
	return &OrderService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateOrderRequest represents a checkout request
type CreateOrderRequest struct {
	UserID          int64             `json:"user_id" binding:"required"`
	ShippingAddress string            `json:"shipping_address" binding:"required"`
	Items           []LineItemRequest `json:"items" binding:"required,min=1"`
}

// LineItemRequest represents one product line in a checkout request
type LineItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// ListOrdersRequest selects which scopes to compose. Scopes combine
// conjunctively; the order they are applied in never matters.
type ListOrdersRequest struct {
	Status        string
	PaymentStatus string
	ThisMonth     bool
	UserID        int64
	WithRelations bool
}

// CreateOrder finalizes a purchase: the order starts pending and unpaid,
// and line items snapshot the current product prices.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	if _, err := s.store.GetUserByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(req.Items))
	productIDs := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		if seen[item.ProductID] {
			return nil, fmt.Errorf("duplicate line item for product %d", item.ProductID)
		}
		seen[item.ProductID] = true
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.store.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[int64]*models.Product, len(products))
	for i := range products {
		productsByID[products[i].ID] = &products[i]
	}

	var total int64
	items := make([]models.OrderLineItem, 0, len(req.Items))
	eventItems := make([]models.OrderLineItemData, 0, len(req.Items))
	for _, item := range req.Items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			return nil, models.NotFoundErr("product", item.ProductID)
		}
		total += product.Price * int64(item.Quantity)
		items = append(items, models.OrderLineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		eventItems = append(eventItems, models.OrderLineItemData{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	order := &models.Order{
		UserID:          req.UserID,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusUnpaid,
		ShippingAddress: req.ShippingAddress,
	}

	if err := s.store.CreateOrder(ctx, order, items); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.Items = items

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserID),
		zap.Int64("total_amount", order.TotalAmount))

	event := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderCreated,
			Timestamp: time.Now(),
		},
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       eventItems,
	}
	if s.eventPublisher != nil {
		if err := s.eventPublisher.PublishOrderCreated(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
		}
	}

	return order, nil
}

// SetStatus moves an order to a new fulfillment status. Values outside the
// enumerated set fail with ErrInvalidState before anything is written.
func (s *OrderService) SetStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.SetStatus")
	defer span.End()

	if !status.Valid() {
		util.InvalidStateRejectionsTotal.WithLabelValues("status").Inc()
		return nil, models.InvalidStateErr("status", string(status))
	}

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	from := order.Status

	if err := s.store.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	util.OrderStatusTransitionsTotal.WithLabelValues(string(status)).Inc()
	s.logger.Info("Order status updated",
		zap.Int64("order_id", orderID),
		zap.String("from", string(from)),
		zap.String("to", string(status)))

	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
		},
		OrderID: orderID,
		UserID:  order.UserID,
		From:    from,
		To:      status,
	}
	if s.eventPublisher != nil {
		if err := s.eventPublisher.PublishOrderStatusChanged(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
		}
	}

	return order, nil
}

// SetPaymentStatus moves an order to a new payment status, with the same
// permissive policy as SetStatus.
func (s *OrderService) SetPaymentStatus(ctx context.Context, orderID int64, status models.PaymentStatus) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.SetPaymentStatus")
	defer span.End()

	if !status.Valid() {
		util.InvalidStateRejectionsTotal.WithLabelValues("payment_status").Inc()
		return nil, models.InvalidStateErr("payment_status", string(status))
	}

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	from := order.PaymentStatus

	if err := s.store.UpdateOrderPaymentStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.PaymentStatus = status

	util.PaymentStatusTransitionsTotal.WithLabelValues(string(status)).Inc()
	s.logger.Info("Payment status updated",
		zap.Int64("order_id", orderID),
		zap.String("from", string(from)),
		zap.String("to", string(status)))

	event := &models.PaymentStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypePaymentStatusChanged,
			Timestamp: time.Now(),
		},
		OrderID: orderID,
		UserID:  order.UserID,
		Amount:  order.TotalAmount,
		From:    from,
		To:      status,
	}
	if s.eventPublisher != nil {
		if err := s.eventPublisher.PublishPaymentStatusChanged(ctx, event); err != nil {
			s.logger.Error("Failed to publish PaymentStatusChanged event", zap.Error(err))
		}
	}

	return order, nil
}

// GetOrder retrieves an order with its basic relations attached.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	orders := []models.Order{*order}
	if err := s.store.AttachBasicRelations(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// ListOrders composes the requested scopes and lists matching orders. The
// clock is explicit so calendar-month filtering is deterministic under test.
func (s *OrderService) ListOrders(ctx context.Context, req ListOrdersRequest, now time.Time) ([]models.Order, error) {
	filter, err := s.buildFilter(req, now)
	if err != nil {
		return nil, err
	}
	return s.store.ListOrders(ctx, filter)
}

func (s *OrderService) buildFilter(req ListOrdersRequest, now time.Time) (store.OrderFilter, error) {
	filter := store.Orders()

	if req.Status != "" {
		status := models.OrderStatus(req.Status)
		if !status.Valid() {
			return filter, models.InvalidStateErr("status", req.Status)
		}
		filter = filter.Status(status)
	}
	if req.PaymentStatus != "" {
		status := models.PaymentStatus(req.PaymentStatus)
		if !status.Valid() {
			return filter, models.InvalidStateErr("payment_status", req.PaymentStatus)
		}
		filter = filter.PaymentStatus(status)
	}
	if req.ThisMonth {
		filter = filter.ThisMonth(now)
	}
	if req.UserID != 0 {
		filter = filter.ForUser(req.UserID)
	}
	if req.WithRelations {
		filter = filter.WithBasicRelations()
	}
	return filter, nil
}
