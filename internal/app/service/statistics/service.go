package statistics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/natashawa225/sea-catering/internal/models"
	store "github.com/natashawa225/sea-catering/internal/platform/db"
	"github.com/natashawa225/sea-catering/pkg/config"
	"github.com/natashawa225/sea-catering/pkg/logctx"
	"github.com/natashawa225/sea-catering/pkg/metrics"
	"github.com/natashawa225/sea-catering/pkg/types"
)

// AdminMetrics are the dashboard KPIs for one date window.
//
// ActiveSubscriptions and MonthlyRecurringRevenue describe the current state and ignore the
// window. Reactivations counts paused/cancelled -> active transitions recorded in the window;
// ReactivationsEstimate is the legacy heuristic, a tenth of the active subscriptions updated in
// the window, kept for comparison with older reports.
type AdminMetrics struct {
	StartDate               string `json:"start_date"`
	EndDate                 string `json:"end_date"`
	NewSubscriptions        int64  `json:"new_subscriptions"`
	ActiveSubscriptions     int64  `json:"active_subscriptions"`
	MonthlyRecurringRevenue int64  `json:"monthly_recurring_revenue"`
	Reactivations           int64  `json:"reactivations"`
	ReactivationsEstimate   int64  `json:"reactivations_estimate"`
}

// Window is the half-open interval [From, To) covering the calendar dates StartDate..EndDate.
type Window struct {
	From time.Time
	To   time.Time
}

// ParseWindow resolves two YYYY-MM-DD dates in loc. The end date is inclusive through the
// last instant of that day.
func ParseWindow(startDate, endDate string, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.UTC
	}
	start, err := time.ParseInLocation(time.DateOnly, startDate, loc)
	if err != nil {
		return Window{}, types.NewValidationError("start_date", "must be a YYYY-MM-DD date")
	}
	end, err := time.ParseInLocation(time.DateOnly, endDate, loc)
	if err != nil {
		return Window{}, types.NewValidationError("end_date", "must be a YYYY-MM-DD date")
	}
	if end.Before(start) {
		return Window{}, types.NewValidationError("end_date", "must not be before start_date")
	}
	return Window{From: start.UTC(), To: end.AddDate(0, 0, 1).UTC()}, nil
}

// Service computes admin statistics from the subscription tables.
type Service struct {
	cfg   *config.Config
	log   *zap.SugaredLogger
	db    *gorm.DB
	guard *store.Guard
}

func New(cfg *config.Config, log *zap.SugaredLogger, db *gorm.DB, guard *store.Guard) *Service {
	return &Service{cfg: cfg, log: log, db: db, guard: guard}
}

// GetAdminMetrics returns a ValidationError for a malformed window. Store failures never
// produce a partial result: the whole tuple is reported unavailable.
func (s *Service) GetAdminMetrics(ctx context.Context, startDate, endDate string) (types.Result[*AdminMetrics], error) {
	defer metrics.ObserveBusinessProcess("statistics", "admin_metrics", time.Now())

	w, err := ParseWindow(startDate, endDate, s.cfg.Location())
	if err != nil {
		return types.Result[*AdminMetrics]{}, err
	}

	out := &AdminMetrics{StartDate: startDate, EndDate: endDate}
	var activeUpdated int64
	err = s.guard.Do(ctx, "statistics.admin_metrics", func() error {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return s.countNew(gctx, w, &out.NewSubscriptions) })
		g.Go(func() error { return s.countActive(gctx, &out.ActiveSubscriptions) })
		g.Go(func() error { return s.sumActiveRevenue(gctx, &out.MonthlyRecurringRevenue) })
		g.Go(func() error { return s.countReactivations(gctx, w, &out.Reactivations) })
		g.Go(func() error { return s.countActiveUpdated(gctx, w, &activeUpdated) })
		return g.Wait()
	})
	if err != nil {
		return types.Unavailable[*AdminMetrics](err), nil
	}
	out.ReactivationsEstimate = EstimateReactivations(activeUpdated)

	logctx.FromCtx(ctx, s.log).Debugw("admin metrics computed", "start", startDate, "end", endDate,
		"new", out.NewSubscriptions, "active", out.ActiveSubscriptions, "mrr", out.MonthlyRecurringRevenue)
	return types.OK(out), nil
}

// EstimateReactivations is floor(0.1 × activeUpdatedInWindow).
func EstimateReactivations(activeUpdatedInWindow int64) int64 {
	if activeUpdatedInWindow <= 0 {
		return 0
	}
	return activeUpdatedInWindow / 10
}

func (s *Service) subscriptions(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Subscription{})
}

func (s *Service) countNew(ctx context.Context, w Window, dst *int64) error {
	if err := s.subscriptions(ctx).
		Where("created_at >= ? AND created_at < ?", w.From, w.To).
		Count(dst).Error; err != nil {
		return fmt.Errorf("count new subscriptions: %w", err)
	}
	return nil
}

func (s *Service) countActive(ctx context.Context, dst *int64) error {
	if err := s.subscriptions(ctx).
		Where("status = ?", types.SubscriptionStatusActive).
		Count(dst).Error; err != nil {
		return fmt.Errorf("count active subscriptions: %w", err)
	}
	return nil
}

func (s *Service) sumActiveRevenue(ctx context.Context, dst *int64) error {
	if err := s.subscriptions(ctx).
		Select("COALESCE(SUM(total_price), 0)").
		Where("status = ?", types.SubscriptionStatusActive).
		Scan(dst).Error; err != nil {
		return fmt.Errorf("sum active revenue: %w", err)
	}
	return nil
}

func (s *Service) countActiveUpdated(ctx context.Context, w Window, dst *int64) error {
	if err := s.subscriptions(ctx).
		Where("status = ?", types.SubscriptionStatusActive).
		Where("updated_at >= ? AND updated_at < ?", w.From, w.To).
		Count(dst).Error; err != nil {
		return fmt.Errorf("count active updated subscriptions: %w", err)
	}
	return nil
}

func (s *Service) countReactivations(ctx context.Context, w Window, dst *int64) error {
	if err := s.db.WithContext(ctx).Model(&models.SubscriptionLog{}).
		Where("to_status = ?", types.SubscriptionStatusActive).
		Where("from_status IN ?", []types.SubscriptionStatus{types.SubscriptionStatusPaused, types.SubscriptionStatusCancelled}).
		Where("created_at >= ? AND created_at < ?", w.From, w.To).
		Count(dst).Error; err != nil {
		return fmt.Errorf("count reactivations: %w", err)
	}
	return nil
}

var Module = fx.Options(
	fx.Provide(New),
)
