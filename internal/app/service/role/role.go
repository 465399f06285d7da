package role

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/natashawa225/sea-catering/internal/models"
	store "github.com/natashawa225/sea-catering/internal/platform/db"
	"github.com/natashawa225/sea-catering/pkg/config"
	"github.com/natashawa225/sea-catering/pkg/logctx"
	"github.com/natashawa225/sea-catering/pkg/types"
)

const cacheKeyPrefix = "sea-catering:role:"

// Service resolves user roles from user_roles. Lookups are cached in redis when a client is
// configured; cache failures fall back to the store.
type Service struct {
	log   *zap.SugaredLogger
	db    *gorm.DB
	guard *store.Guard
	rdb   *redis.Client
	ttl   time.Duration
}

type Params struct {
	fx.In

	Log   *zap.SugaredLogger
	Cfg   *config.Config
	DB    *gorm.DB
	Guard *store.Guard
	Redis *redis.Client `optional:"true"`
}

func NewService(p Params) *Service {
	ttl := p.Cfg.Redis.RoleTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{log: p.Log, db: p.DB, guard: p.Guard, rdb: p.Redis, ttl: ttl}
}

func cacheKey(userID string) string {
	return cacheKeyPrefix + userID
}

// GetRole returns the caller's role. Users without a user_roles row are customers.
func (s *Service) GetRole(ctx context.Context, userID string) (types.Role, error) {
	if userID == "" {
		return "", types.NewValidationError("user_id", "required")
	}
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey(userID)).Result()
		switch {
		case err == nil && types.Role(cached).Valid():
			return types.Role(cached), nil
		case err != nil && !errors.Is(err, redis.Nil):
			logctx.FromCtx(ctx, s.log).Warnw("role cache read failed", "err", err)
		}
	}

	var row models.UserRole
	err := s.guard.Do(ctx, "role.get", func() error {
		return s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	})
	role := row.Role
	switch {
	case errors.Is(err, types.ErrNotFound):
		role = types.RoleCustomer
	case err != nil:
		return "", err
	case !role.Valid():
		logctx.FromCtx(ctx, s.log).Warnw("unknown role in user_roles, treating as customer", "role", role)
		role = types.RoleCustomer
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, cacheKey(userID), string(role), s.ttl).Err(); err != nil {
			logctx.FromCtx(ctx, s.log).Warnw("role cache write failed", "err", err)
		}
	}
	return role, nil
}

func (s *Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	role, err := s.GetRole(ctx, userID)
	if err != nil {
		return false, err
	}
	return role == types.RoleAdmin, nil
}

// Grant upserts userID's role and drops the cached value.
func (s *Service) Grant(ctx context.Context, userID string, role types.Role) error {
	if userID == "" {
		return types.NewValidationError("user_id", "required")
	}
	if !role.Valid() {
		return types.NewValidationError("role", fmt.Sprintf("unknown role %q", role))
	}
	row := &models.UserRole{UserID: userID, Role: role}
	err := s.guard.Do(ctx, "role.grant", func() error {
		return s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).Create(row).Error
	})
	if err != nil {
		return err
	}
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, cacheKey(userID)).Err(); err != nil {
			logctx.FromCtx(ctx, s.log).Warnw("role cache invalidation failed", "err", err)
		}
	}
	logctx.FromCtx(ctx, s.log).Infow("role granted", "user_id", userID, "role", role)
	return nil
}

var Module = fx.Options(
	fx.Provide(NewService),
)
