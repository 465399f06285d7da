package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/natashawa225/sea-catering/internal/app/service/pricing"
	"github.com/natashawa225/sea-catering/internal/models"
	store "github.com/natashawa225/sea-catering/internal/platform/db"
	"github.com/natashawa225/sea-catering/pkg/logctx"
	"github.com/natashawa225/sea-catering/pkg/metrics"
	"github.com/natashawa225/sea-catering/pkg/tool"
	"github.com/natashawa225/sea-catering/pkg/types"
)

const metricsType = "subscription"

// Actor identifies who is reading or changing a subscription. Customers only see their own
// records; admins and the scheduler are unscoped.
type Actor struct {
	Kind   types.StatusActor
	UserID string
}

func Customer(userID string) Actor {
	return Actor{Kind: types.StatusActorCustomer, UserID: userID}
}

func Admin(userID string) Actor {
	return Actor{Kind: types.StatusActorAdmin, UserID: userID}
}

func Scheduler() Actor {
	return Actor{Kind: types.StatusActorScheduler}
}

func (a Actor) scoped() bool {
	return a.Kind == types.StatusActorCustomer
}

// Service owns subscription records and their status history.
type Service struct {
	log   *zap.SugaredLogger
	db    *gorm.DB
	guard *store.Guard
	calc  *pricing.Calculator
	now   func() time.Time
}

func NewService(log *zap.SugaredLogger, db *gorm.DB, guard *store.Guard, calc *pricing.Calculator) *Service {
	return &Service{
		log:   log,
		db:    db,
		guard: guard,
		calc:  calc,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create validates req, snapshots the plan and computed price, and stores a new active
// subscription for userID together with its creation log row.
func (s *Service) Create(ctx context.Context, userID string, req *CreateRequest) (*models.Subscription, error) {
	defer metrics.ObserveBusinessProcess(metricsType, "create", time.Now())

	if userID == "" {
		return nil, types.NewValidationError("user_id", "required")
	}
	if req == nil {
		return nil, types.NewValidationError("body", "required")
	}
	req.normalize()
	if err := req.validate(); err != nil {
		return nil, err
	}
	plan := s.calc.Plan(req.PlanID)
	if plan == nil {
		return nil, types.NewValidationError("plan_id", fmt.Sprintf("unknown plan %q", req.PlanID))
	}

	mealTypes := pricing.UniqueMealTypes(req.MealTypes)
	deliveryDays := pricing.UniqueWeekdays(req.DeliveryDays)
	now := s.now()
	sub := &models.Subscription{
		ID:           tool.GenerateUUIDV7(),
		UserID:       userID,
		Name:         req.Name,
		Phone:        req.Phone,
		PlanID:       plan.ID,
		PlanName:     plan.Name,
		PlanPrice:    plan.Price,
		MealTypes:    datatypes.JSONSlice[types.MealType](mealTypes),
		DeliveryDays: datatypes.JSONSlice[types.Weekday](deliveryDays),
		Allergies:    req.Allergies,
		TotalPrice:   pricing.MonthlyPrice(plan.Price, len(mealTypes), len(deliveryDays)),
		Status:       types.SubscriptionStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.guard.Do(ctx, "subscription.create", func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(sub).Error; err != nil {
				return err
			}
			return tx.Create(newStatusLog(sub, "", types.StatusActorCustomer, now)).Error
		})
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("subscription created",
		"subscription_id", sub.ID, "plan_id", sub.PlanID, "total_price", sub.TotalPrice)
	return sub, nil
}

// ListForUser returns userID's subscriptions, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) types.Result[[]*models.Subscription] {
	defer metrics.ObserveBusinessProcess(metricsType, "list", time.Now())

	var rows []*models.Subscription
	err := s.guard.Do(ctx, "subscription.list", func() error {
		return s.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("created_at desc").
			Order("id desc").
			Find(&rows).Error
	})
	if err != nil {
		return types.Unavailable[[]*models.Subscription](err)
	}
	if len(rows) == 0 {
		return types.Empty[[]*models.Subscription]()
	}
	return types.OK(rows)
}

// Get loads one subscription visible to actor.
func (s *Service) Get(ctx context.Context, actor Actor, id string) (*models.Subscription, error) {
	if !tool.IsUUID(id) {
		return nil, fmt.Errorf("subscription %q: %w", id, types.ErrNotFound)
	}
	var sub models.Subscription
	err := s.guard.Do(ctx, "subscription.get", func() error {
		return s.scope(s.db.WithContext(ctx), actor).Where("id = ?", id).First(&sub).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// SetStatus applies change to the subscription and records it in the status log, both in
// one store transaction. Concurrent writers are not detected; the last write wins.
func (s *Service) SetStatus(ctx context.Context, actor Actor, id string, change StatusChange) (*models.Subscription, error) {
	defer metrics.ObserveBusinessProcess(metricsType, "set_status", time.Now())

	if !tool.IsUUID(id) {
		return nil, fmt.Errorf("subscription %q: %w", id, types.ErrNotFound)
	}

	var sub models.Subscription
	var from types.SubscriptionStatus
	err := s.guard.Do(ctx, "subscription.set_status", func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.scope(tx, actor).Where("id = ?", id).First(&sub).Error; err != nil {
				return err
			}
			from = sub.Status
			now := s.now()
			if err := Transition(&sub, change, now); err != nil {
				return err
			}
			if err := tx.Save(&sub).Error; err != nil {
				return err
			}
			return tx.Create(newStatusLog(&sub, from, actor.Kind, now)).Error
		})
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("subscription status changed",
		"subscription_id", sub.ID, "from", from, "to", sub.Status, "actor", actor.Kind)
	return &sub, nil
}

// Pause moves an active subscription to paused for the inclusive date window [start, end].
func (s *Service) Pause(ctx context.Context, actor Actor, id, start, end string) (*models.Subscription, error) {
	return s.SetStatus(ctx, actor, id, StatusChange{
		Status:     types.SubscriptionStatusPaused,
		PauseStart: start,
		PauseEnd:   end,
	})
}

func (s *Service) Resume(ctx context.Context, actor Actor, id string) (*models.Subscription, error) {
	return s.SetStatus(ctx, actor, id, StatusChange{Status: types.SubscriptionStatusActive})
}

func (s *Service) Cancel(ctx context.Context, actor Actor, id string) (*models.Subscription, error) {
	return s.SetStatus(ctx, actor, id, StatusChange{Status: types.SubscriptionStatusCancelled})
}

// ScannableFields are the columns admins may filter and sort on.
var ScannableFields = []string{"status", "plan_id", "user_id", "created_at", "updated_at", "total_price"}

const maxScanSize = 100

type ScanRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanResponse struct {
	Items []*models.Subscription `json:"items"`
	Total int64                  `json:"total"`
}

// Scan is the paginated admin listing. Without SortBy rows come newest first.
func (s *Service) Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	defer metrics.ObserveBusinessProcess(metricsType, "scan", time.Now())

	if req == nil {
		req = &ScanRequest{}
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.Size > maxScanSize {
		req.Size = maxScanSize
	}
	if req.From < 0 {
		req.From = 0
	}
	for _, f := range req.Filters {
		if err := f.Validate(ScannableFields); err != nil {
			return nil, err
		}
	}
	order := clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}
	if req.SortBy != "" {
		if !lo.Contains(ScannableFields, req.SortBy) {
			return nil, types.NewValidationError("sort_by", fmt.Sprintf("field %q is not sortable", req.SortBy))
		}
		order = clause.OrderByColumn{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}
	}

	var (
		total int64
		rows  []*models.Subscription
	)
	err := s.guard.Do(ctx, "subscription.scan", func() error {
		q := s.db.WithContext(ctx).Model(&models.Subscription{})
		if len(req.Filters) > 0 {
			q = q.Where(clause.Where{Exprs: []clause.Expression{types.FiltersAnd(req.Filters)}})
		}
		q = q.Session(&gorm.Session{})
		if err := q.Count(&total).Error; err != nil {
			return err
		}
		return q.Order(order).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: order.Desc}).
			Limit(req.Size).
			Offset(req.From).
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return &ScanResponse{Items: rows, Total: total}, nil
}

// ResumeDuePaused reactivates every paused subscription whose pause window ended before today
// and returns how many were resumed.
func (s *Service) ResumeDuePaused(ctx context.Context, today time.Time) (int, error) {
	defer metrics.ObserveBusinessProcess(metricsType, "resume_due", time.Now())

	cutoff := today.Format(time.DateOnly)
	resumed := 0
	err := s.guard.Do(ctx, "subscription.resume_due", func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var due []*models.Subscription
			if err := tx.Where("status = ? AND pause_end IS NOT NULL AND pause_end < ?", types.SubscriptionStatusPaused, cutoff).
				Order("pause_end").
				Find(&due).Error; err != nil {
				return err
			}
			now := s.now()
			for _, sub := range due {
				if err := Transition(sub, StatusChange{Status: types.SubscriptionStatusActive}, now); err != nil {
					return err
				}
				if err := tx.Save(sub).Error; err != nil {
					return err
				}
				if err := tx.Create(newStatusLog(sub, types.SubscriptionStatusPaused, types.StatusActorScheduler, now)).Error; err != nil {
					return err
				}
			}
			resumed = len(due)
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	if resumed > 0 {
		logctx.FromCtx(ctx, s.log).Infow("resumed subscriptions whose pause ended", "count", resumed, "before", cutoff)
	}
	return resumed, nil
}

func (s *Service) scope(q *gorm.DB, actor Actor) *gorm.DB {
	if actor.scoped() {
		return q.Where("user_id = ?", actor.UserID)
	}
	return q
}

func newStatusLog(sub *models.Subscription, from types.SubscriptionStatus, actor types.StatusActor, at time.Time) *models.SubscriptionLog {
	return &models.SubscriptionLog{
		ID:             tool.GenerateUUIDV7(),
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		FromStatus:     from,
		ToStatus:       sub.Status,
		Actor:          actor,
		CreatedAt:      at,
	}
}
