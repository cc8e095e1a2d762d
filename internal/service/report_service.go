package service

import (
	"context"
	"time"

	"commerce-admin/internal/redisclient"
	"commerce-admin/internal/store"
	"commerce-admin/internal/util"

	"go.uber.org/zap"
)

const reportCacheKey = "dashboard:report"
const reportCacheTTL = 30 * time.Second

// DashboardReport is the aggregate snapshot the admin dashboard renders.
// Revenue figures are fixed-point cents summed in integer arithmetic.
type DashboardReport struct {
	TotalOrders        int64     `json:"total_orders"`
	PendingOrders      int64     `json:"pending_orders"`
	CompletedOrders    int64     `json:"completed_orders"`
	CompletedThisMonth int64     `json:"completed_this_month"`
	RevenueThisMonth   int64     `json:"revenue_this_month"`
	TotalProducts      int64     `json:"total_products"`
	TotalUsers         int64     `json:"total_users"`
	UnreadChatMessages int64     `json:"unread_chat_messages"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// ReportService builds dashboard aggregates by composing order scopes.
type ReportService struct {
	store  *store.Store
	cache  *redisclient.Client
	logger *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(store *store.Store, cache *redisclient.Client) *ReportService {
	return &ReportService{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// Dashboard computes the report for now's calendar month, serving a cached
// copy when one is fresh. The clock is explicit for deterministic tests.
func (s *ReportService) Dashboard(ctx context.Context, now time.Time) (*DashboardReport, error) {
	if s.cache != nil {
		var cached DashboardReport
		if ok, err := s.cache.GetJSON(ctx, reportCacheKey, &cached); err == nil && ok {
			util.ReportCacheHitsTotal.Inc()
			return &cached, nil
		}
		util.ReportCacheMissesTotal.Inc()
	}

	start := time.Now()
	defer func() {
		util.ReportQueryLatency.Observe(time.Since(start).Seconds())
	}()

	report := &DashboardReport{GeneratedAt: now}

	var err error
	if report.TotalOrders, err = s.store.CountOrders(ctx, store.Orders()); err != nil {
		return nil, err
	}
	if report.PendingOrders, err = s.store.CountOrders(ctx, store.Orders().Pending()); err != nil {
		return nil, err
	}
	if report.CompletedOrders, err = s.store.CountOrders(ctx, store.Orders().Completed()); err != nil {
		return nil, err
	}
	if report.CompletedThisMonth, err = s.store.CountOrders(ctx, store.Orders().Completed().ThisMonth(now)); err != nil {
		return nil, err
	}
	if report.RevenueThisMonth, err = s.store.SumOrderTotals(ctx, store.Orders().Completed().ThisMonth(now)); err != nil {
		return nil, err
	}
	if report.TotalProducts, err = s.store.CountProducts(ctx); err != nil {
		return nil, err
	}
	if report.TotalUsers, err = s.store.CountUsers(ctx); err != nil {
		return nil, err
	}
	if report.UnreadChatMessages, err = s.store.CountUnreadChatMessages(ctx); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, reportCacheKey, report, reportCacheTTL); err != nil {
			s.logger.Warn("Failed to cache dashboard report", zap.Error(err))
		}
	}
	return report, nil
}
