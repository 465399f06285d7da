package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	mw "github.com/natashawa225/sea-catering/internal/app/api/middleware"
	"github.com/natashawa225/sea-catering/internal/app/service/pricing"
	"github.com/natashawa225/sea-catering/internal/app/service/role"
	"github.com/natashawa225/sea-catering/internal/app/service/statistics"
	subsvc "github.com/natashawa225/sea-catering/internal/app/service/subscription"
	"github.com/natashawa225/sea-catering/internal/app/service/testimonial"
	"github.com/natashawa225/sea-catering/internal/models"
	"github.com/natashawa225/sea-catering/internal/platform/db/dbtest"
	"github.com/natashawa225/sea-catering/pkg/config"
	"github.com/natashawa225/sea-catering/pkg/response"
	"github.com/natashawa225/sea-catering/pkg/types"
)

const testSecret = "handler-secret"

type testAPI struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := dbtest.NewSQLite(t)
	guard := dbtest.NewGuard()
	log := zap.NewNop().Sugar()
	cfg := &config.Config{
		Auth:     config.AuthConfig{JWTSecret: testSecret},
		Plans:    types.DefaultPlans(),
		Timezone: "UTC",
	}

	calc := pricing.NewCalculator(cfg)
	subs := subsvc.NewService(log, gdb, guard, calc)
	stats := statistics.New(cfg, log, gdb, guard)
	reviews := testimonial.NewService(log, gdb, guard)
	roles := role.NewService(role.Params{Log: log, Cfg: cfg, DB: gdb, Guard: guard})

	r := gin.New()
	r.Use(mw.TraceMiddleware(), mw.RequestLoggerMiddleware(log))
	RegisterHealthRoutes(r, guard)
	v1 := r.Group("/api/v1")
	RegisterCatalogRoutes(v1, calc)
	RegisterTestimonialRoutes(v1, reviews, log)
	authed := v1.Group("", mw.AuthMiddleware(cfg, log))
	RegisterUserRoutes(authed, roles, log)
	RegisterSubscriptionRoutes(authed, subs, log)
	RegisterAdminRoutes(authed.Group("/admin", mw.RequireAdmin(roles)), stats, subs, reviews, log)
	return &testAPI{engine: r, db: gdb}
}

func token(t *testing.T, userID string) string {
	t.Helper()
	claims := mw.Claims{
		Email:        userID + "@example.com",
		UserMetadata: mw.UserMetadata{FullName: "User " + userID},
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

// call sends body as JSON and decodes the envelope. userID may be empty for anonymous calls.
func (a *testAPI) call(t *testing.T, method, path, userID string, body any) response.APIResponse[json.RawMessage] {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, userID))
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out response.APIResponse[json.RawMessage]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeData[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func order() map[string]any {
	return map[string]any{
		"name":          "Sari",
		"phone":         "081234567890",
		"plan_id":       types.PlanIDProtein,
		"meal_types":    []string{"breakfast", "dinner"},
		"delivery_days": []string{"monday", "wednesday", "friday"},
		"status":        "cancelled",
	}
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t)
	out := api.call(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	require.JSONEq(t, `{"status":"ok","store":"closed"}`, string(out.Data))
}

func TestCatalog(t *testing.T) {
	api := newTestAPI(t)

	out := api.call(t, http.MethodGet, "/api/v1/plans", "", nil)
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	require.Len(t, decodeData[[]types.Plan](t, out.Data), 3)

	out = api.call(t, http.MethodPost, "/api/v1/plans/quote", "", map[string]any{
		"plan_id":       types.PlanIDDiet,
		"meal_types":    []string{"lunch"},
		"delivery_days": []string{"monday", "tuesday"},
	})
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	q := decodeData[pricing.Quote](t, out.Data)
	require.Equal(t, int64(258000), q.TotalPrice)
	require.True(t, q.Complete)

	out = api.call(t, http.MethodPost, "/api/v1/plans/quote", "", map[string]any{})
	require.Equal(t, response.APIResponseCodeBadRequest, out.Code)
}

func TestSubscriptionRoutes_RequireAuth(t *testing.T) {
	api := newTestAPI(t)
	out := api.call(t, http.MethodGet, "/api/v1/subscriptions", "", nil)
	require.Equal(t, response.APIResponseCodeUnauthenticated, out.Code)
}

func TestSubscriptionRoutes_Lifecycle(t *testing.T) {
	api := newTestAPI(t)

	out := api.call(t, http.MethodGet, "/api/v1/subscriptions", "user-1", nil)
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	require.Equal(t, types.ResultEmpty, decodeData[SubscriptionList](t, out.Data).Kind)

	out = api.call(t, http.MethodPost, "/api/v1/subscriptions", "user-1", order())
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	sub := decodeData[models.Subscription](t, out.Data)
	require.Equal(t, int64(1032000), sub.TotalPrice)
	require.Equal(t, types.SubscriptionStatusActive, sub.Status)
	require.Equal(t, "user-1", sub.UserID)

	out = api.call(t, http.MethodGet, "/api/v1/subscriptions", "user-1", nil)
	list := decodeData[SubscriptionList](t, out.Data)
	require.Equal(t, types.ResultOK, list.Kind)
	require.Len(t, list.Data, 1)

	base := "/api/v1/subscriptions/" + sub.ID
	out = api.call(t, http.MethodPost, base+"/pause", "user-1", map[string]string{"pause_start": "2025-07-01", "pause_end": "2025-07-10"})
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	paused := decodeData[models.Subscription](t, out.Data)
	require.Equal(t, types.SubscriptionStatusPaused, paused.Status)
	require.Equal(t, "2025-07-10", *paused.PauseEnd)

	out = api.call(t, http.MethodPost, base+"/pause", "user-1", map[string]string{"pause_start": "2025-07-01", "pause_end": "2025-07-10"})
	require.Equal(t, response.APIResponseCodeConflict, out.Code)

	out = api.call(t, http.MethodPost, base+"/resume", "user-1", nil)
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	require.Equal(t, types.SubscriptionStatusActive, decodeData[models.Subscription](t, out.Data).Status)

	out = api.call(t, http.MethodPost, base+"/status", "user-1", map[string]string{"status": "cancelled"})
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	require.Equal(t, types.SubscriptionStatusCancelled, decodeData[models.Subscription](t, out.Data).Status)

	out = api.call(t, http.MethodPost, base+"/resume", "user-1", nil)
	require.Equal(t, response.APIResponseCodeConflict, out.Code)

	out = api.call(t, http.MethodGet, base, "user-1", nil)
	require.Equal(t, response.APIResponseCodeOK, out.Code)
}

func TestSubscriptionRoutes_InputErrors(t *testing.T) {
	api := newTestAPI(t)

	bad := order()
	bad["phone"] = "12"
	out := api.call(t, http.MethodPost, "/api/v1/subscriptions", "user-1", bad)
	require.Equal(t, response.APIResponseCodeBadRequest, out.Code)

	out = api.call(t, http.MethodPost, "/api/v1/subscriptions", "user-1", order())
	id := decodeData[models.Subscription](t, out.Data).ID

	out = api.call(t, http.MethodPost, "/api/v1/subscriptions/"+id+"/pause", "user-1", map[string]string{"pause_start": "2025-07-10", "pause_end": "2025-07-01"})
	require.Equal(t, response.APIResponseCodeBadRequest, out.Code)

	out = api.call(t, http.MethodPost, "/api/v1/subscriptions/"+id+"/status", "user-1", map[string]string{})
	require.Equal(t, response.APIResponseCodeBadRequest, out.Code)

	out = api.call(t, http.MethodPost, "/api/v1/subscriptions/not-a-uuid/cancel", "user-1", nil)
	require.Equal(t, response.APIResponseCodeNotFound, out.Code)
}

func TestSubscriptionRoutes_OtherUsersAreHidden(t *testing.T) {
	api := newTestAPI(t)
	out := api.call(t, http.MethodPost, "/api/v1/subscriptions", "user-1", order())
	id := decodeData[models.Subscription](t, out.Data).ID

	out = api.call(t, http.MethodGet, "/api/v1/subscriptions/"+id, "user-2", nil)
	require.Equal(t, response.APIResponseCodeNotFound, out.Code)

	out = api.call(t, http.MethodPost, "/api/v1/subscriptions/"+id+"/cancel", "user-2", nil)
	require.Equal(t, response.APIResponseCodeNotFound, out.Code)
}

func TestMe(t *testing.T) {
	api := newTestAPI(t)
	out := api.call(t, http.MethodGet, "/api/v1/me", "user-1", nil)
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	me := decodeData[MeResponse](t, out.Data)
	require.Equal(t, "User user-1", me.DisplayName)
	require.Equal(t, types.RoleCustomer, me.Role)
}

func TestAdminRoutes(t *testing.T) {
	api := newTestAPI(t)
	require.NoError(t, api.db.Create(&models.UserRole{UserID: "admin-1", Role: types.RoleAdmin}).Error)

	window := map[string]string{"start_date": "2000-01-01", "end_date": "2100-12-31"}
	out := api.call(t, http.MethodPost, "/api/v1/admin/metrics", "user-1", window)
	require.Equal(t, response.APIResponseCodeForbidden, out.Code)

	out = api.call(t, http.MethodPost, "/api/v1/subscriptions", "user-1", order())
	id := decodeData[models.Subscription](t, out.Data).ID

	out = api.call(t, http.MethodPost, "/api/v1/admin/metrics", "admin-1", window)
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	res := decodeData[AdminMetricsResult](t, out.Data)
	require.Equal(t, types.ResultOK, res.Kind)
	require.Equal(t, int64(1), res.Data.NewSubscriptions)
	require.Equal(t, int64(1), res.Data.ActiveSubscriptions)
	require.Equal(t, int64(1032000), res.Data.MonthlyRecurringRevenue)

	out = api.call(t, http.MethodPost, "/api/v1/admin/metrics", "admin-1", map[string]string{"start_date": "2025-02-01", "end_date": "2025-01-01"})
	require.Equal(t, response.APIResponseCodeBadRequest, out.Code)

	out = api.call(t, http.MethodPost, "/api/v1/admin/subscriptions/list", "admin-1", map[string]any{
		"filters": []map[string]any{{"field": "user_id", "operator": "eq", "values": []string{"user-1"}}},
	})
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	require.Equal(t, int64(1), decodeData[subsvc.ScanResponse](t, out.Data).Total)

	out = api.call(t, http.MethodPost, "/api/v1/admin/subscriptions/"+id+"/status", "admin-1", map[string]string{"status": "cancelled"})
	require.Equal(t, response.APIResponseCodeOK, out.Code)

	var last models.SubscriptionLog
	require.NoError(t, api.db.Where("subscription_id = ?", id).Order("created_at desc").First(&last).Error)
	require.Equal(t, types.StatusActorAdmin, last.Actor)
}

func TestTestimonialModeration(t *testing.T) {
	api := newTestAPI(t)
	require.NoError(t, api.db.Create(&models.UserRole{UserID: "admin-1", Role: types.RoleAdmin}).Error)

	out := api.call(t, http.MethodPost, "/api/v1/testimonials", "", map[string]any{
		"customer_name": "Budi", "review_message": "Enak sekali", "rating": 5,
	})
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	item := decodeData[models.Testimonial](t, out.Data)
	require.Equal(t, types.TestimonialStatusPending, item.Status)

	out = api.call(t, http.MethodPost, "/api/v1/testimonials", "", map[string]any{
		"customer_name": "Budi", "review_message": "Enak", "rating": 6,
	})
	require.Equal(t, response.APIResponseCodeBadRequest, out.Code)

	out = api.call(t, http.MethodGet, "/api/v1/testimonials", "", nil)
	require.Equal(t, types.ResultEmpty, decodeData[TestimonialList](t, out.Data).Kind)

	out = api.call(t, http.MethodGet, "/api/v1/admin/testimonials", "admin-1", nil)
	pending := decodeData[TestimonialList](t, out.Data)
	require.Len(t, pending.Data, 1)

	out = api.call(t, http.MethodGet, "/api/v1/admin/testimonials?status=hidden", "admin-1", nil)
	require.Equal(t, response.APIResponseCodeBadRequest, out.Code)

	out = api.call(t, http.MethodPost, "/api/v1/admin/testimonials/"+item.ID+"/publish", "admin-1", nil)
	require.Equal(t, response.APIResponseCodeOK, out.Code)
	out = api.call(t, http.MethodPost, "/api/v1/admin/testimonials/"+item.ID+"/publish", "admin-1", nil)
	require.Equal(t, response.APIResponseCodeConflict, out.Code)

	out = api.call(t, http.MethodGet, "/api/v1/testimonials?limit=5", "", nil)
	published := decodeData[TestimonialList](t, out.Data)
	require.Equal(t, types.ResultOK, published.Kind)
	require.Equal(t, "Budi", published.Data[0].CustomerName)
}
