//go:build integration

package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/natashawa225/sea-catering/internal/app/service/pricing"
	"github.com/natashawa225/sea-catering/internal/app/service/statistics"
	"github.com/natashawa225/sea-catering/internal/platform/db/dbtest"
	"github.com/natashawa225/sea-catering/pkg/config"
	"github.com/natashawa225/sea-catering/pkg/types"
)

func TestPostgres_SubscriptionFlow(t *testing.T) {
	gdb := dbtest.NewPostgres(t)
	cfg := &config.Config{Plans: types.DefaultPlans(), Timezone: "UTC"}
	log := zap.NewNop().Sugar()
	svc := NewService(log, gdb, dbtest.NewGuard(), pricing.NewCalculator(cfg))
	ctx := context.Background()

	sub, err := svc.Create(ctx, "user-1", validRequest())
	require.NoError(t, err)
	require.Equal(t, int64(1032000), sub.TotalPrice)

	other := validRequest()
	other.PlanID = types.PlanIDRoyal
	_, err = svc.Create(ctx, "user-2", other)
	require.NoError(t, err)

	_, err = svc.Pause(ctx, Customer("user-1"), sub.ID, "2025-07-01", "2025-07-03")
	require.NoError(t, err)

	n, err := svc.ResumeDuePaused(ctx, time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := svc.Get(ctx, Admin("admin-1"), sub.ID)
	require.NoError(t, err)
	require.Equal(t, types.SubscriptionStatusActive, got.Status)
	require.Nil(t, got.PauseEnd)
	require.Equal(t, []types.MealType{types.MealTypeBreakfast, types.MealTypeDinner}, []types.MealType(got.MealTypes))

	_, err = svc.Get(ctx, Customer("user-2"), sub.ID)
	require.ErrorIs(t, err, types.ErrNotFound)

	page, err := svc.Scan(ctx, &ScanRequest{Filters: []*types.CommonFilter{
		{Field: "plan_id", Operator: types.CommonFilterOperatorIn, Values: []any{types.PlanIDProtein, types.PlanIDRoyal}},
		{Field: "total_price", Operator: types.CommonFilterOperatorGte, Values: []any{1032000}},
	}})
	require.NoError(t, err)
	require.Equal(t, int64(2), page.Total)

	stats := statistics.New(cfg, log, gdb, dbtest.NewGuard())
	today := time.Now().UTC().Format(time.DateOnly)
	res, err := stats.GetAdminMetrics(ctx, today, today)
	require.NoError(t, err)
	require.Equal(t, types.ResultOK, res.Kind)
	require.Equal(t, int64(2), res.Data.NewSubscriptions)
	require.Equal(t, int64(2), res.Data.ActiveSubscriptions)
	require.Equal(t, int64(1), res.Data.Reactivations)
}
