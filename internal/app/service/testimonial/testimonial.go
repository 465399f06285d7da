package testimonial

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/natashawa225/sea-catering/internal/models"
	store "github.com/natashawa225/sea-catering/internal/platform/db"
	"github.com/natashawa225/sea-catering/pkg/logctx"
	"github.com/natashawa225/sea-catering/pkg/metrics"
	"github.com/natashawa225/sea-catering/pkg/tool"
	"github.com/natashawa225/sea-catering/pkg/types"
)

const (
	MinRating = 1
	MaxRating = 5

	maxNameLength    = 255
	maxMessageLength = 2000

	defaultListLimit = 20
	maxListLimit     = 100
)

type SubmitRequest struct {
	CustomerName  string `json:"customer_name"`
	ReviewMessage string `json:"review_message"`
	Rating        int    `json:"rating"`
}

func (r *SubmitRequest) validate() error {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.ReviewMessage = strings.TrimSpace(r.ReviewMessage)
	switch {
	case r.CustomerName == "":
		return types.NewValidationError("customer_name", "required")
	case utf8.RuneCountInString(r.CustomerName) > maxNameLength:
		return types.NewValidationError("customer_name", fmt.Sprintf("at most %d characters", maxNameLength))
	case r.ReviewMessage == "":
		return types.NewValidationError("review_message", "required")
	case utf8.RuneCountInString(r.ReviewMessage) > maxMessageLength:
		return types.NewValidationError("review_message", fmt.Sprintf("at most %d characters", maxMessageLength))
	case r.Rating < MinRating || r.Rating > MaxRating:
		return types.NewValidationError("rating", fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
	}
	return nil
}

// Service stores customer reviews. New reviews wait for moderation before they are listed
// publicly.
type Service struct {
	log   *zap.SugaredLogger
	db    *gorm.DB
	guard *store.Guard
}

func NewService(log *zap.SugaredLogger, db *gorm.DB, guard *store.Guard) *Service {
	return &Service{log: log, db: db, guard: guard}
}

func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*models.Testimonial, error) {
	defer metrics.ObserveBusinessProcess("testimonial", "submit", time.Now())

	if req == nil {
		return nil, types.NewValidationError("body", "required")
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	item := &models.Testimonial{
		ID:            tool.GenerateUUIDV7(),
		CustomerName:  req.CustomerName,
		ReviewMessage: req.ReviewMessage,
		Rating:        req.Rating,
		Status:        types.TestimonialStatusPending,
	}
	if err := s.guard.Do(ctx, "testimonial.submit", func() error {
		return s.db.WithContext(ctx).Create(item).Error
	}); err != nil {
		return nil, err
	}
	logctx.FromCtx(ctx, s.log).Infow("testimonial submitted", "testimonial_id", item.ID, "rating", item.Rating)
	return item, nil
}

// List returns testimonials in status, newest first. limit is clamped to [1, 100].
func (s *Service) List(ctx context.Context, status types.TestimonialStatus, limit int) types.Result[[]*models.Testimonial] {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	var rows []*models.Testimonial
	err := s.guard.Do(ctx, "testimonial.list", func() error {
		return s.db.WithContext(ctx).
			Where("status = ?", status).
			Order("created_at desc").
			Order("id desc").
			Limit(limit).
			Find(&rows).Error
	})
	if err != nil {
		return types.Unavailable[[]*models.Testimonial](err)
	}
	if len(rows) == 0 {
		return types.Empty[[]*models.Testimonial]()
	}
	return types.OK(rows)
}

func (s *Service) ListPublished(ctx context.Context, limit int) types.Result[[]*models.Testimonial] {
	return s.List(ctx, types.TestimonialStatusPublished, limit)
}

// Publish approves a pending testimonial. Publishing twice is an invalid transition.
func (s *Service) Publish(ctx context.Context, id string) (*models.Testimonial, error) {
	defer metrics.ObserveBusinessProcess("testimonial", "publish", time.Now())

	if !tool.IsUUID(id) {
		return nil, fmt.Errorf("testimonial %q: %w", id, types.ErrNotFound)
	}
	var item models.Testimonial
	err := s.guard.Do(ctx, "testimonial.publish", func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
				return err
			}
			if item.Status == types.TestimonialStatusPublished {
				return fmt.Errorf("%w: testimonial already published", types.ErrInvalidTransition)
			}
			item.Status = types.TestimonialStatusPublished
			return tx.Save(&item).Error
		})
	})
	if err != nil {
		return nil, err
	}
	logctx.FromCtx(ctx, s.log).Infow("testimonial published", "testimonial_id", item.ID)
	return &item, nil
}

var Module = fx.Options(
	fx.Provide(NewService),
)
