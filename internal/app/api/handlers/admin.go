package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/natashawa225/sea-catering/internal/app/service/statistics"
	subsvc "github.com/natashawa225/sea-catering/internal/app/service/subscription"
	"github.com/natashawa225/sea-catering/internal/app/service/testimonial"
	"github.com/natashawa225/sea-catering/pkg/types"
)

type AdminMetricsRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// @Summary      Dashboard metrics (Admin)
// @Description  New subscriptions and reactivations are counted inside [start_date, end_date] in the configured timezone. Active subscriptions and MRR reflect the current state.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handlers.AdminMetricsRequest true "Inclusive date window, YYYY-MM-DD"
// @Success      200  {object}  handlers.RespAdminMetrics
// @Router       /api/v1/admin/metrics [post]
func ApiAdminMetrics(svc *statistics.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminMetricsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			replyBadRequest(c, err)
			return
		}
		res, err := svc.GetAdminMetrics(c.Request.Context(), req.StartDate, req.EndDate)
		if err != nil {
			replyError(c, log, err)
			return
		}
		replyResult(c, log, res)
	}
}

// @Summary      List subscriptions (Admin)
// @Description  Paginated listing with filters on status, plan_id, user_id, created_at, updated_at and total_price.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body subscription.ScanRequest true "Filters and pagination"
// @Success      200  {object}  handlers.RespScan
// @Router       /api/v1/admin/subscriptions/list [post]
func ApiAdminListSubscriptions(svc *subsvc.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subsvc.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			replyBadRequest(c, err)
			return
		}
		resp, err := svc.Scan(c.Request.Context(), &req)
		if err != nil {
			replyError(c, log, err)
			return
		}
		replyOK(c, resp)
	}
}

// @Summary      Change any subscription status (Admin)
// @Description  Same transitions as the customer endpoint, without the ownership check. The log row records actor admin.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subscription ID"
// @Param        request body handlers.StatusRequest true "Target status"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/admin/subscriptions/{id}/status [post]
func ApiAdminSetSubscriptionStatus(svc *subsvc.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return changeStatus(log, adminActor, setStatusFn(svc))
}

// @Summary      List testimonials for moderation (Admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending (default) or published"
// @Param        limit query int false "Maximum number of items (1-100, default 20)"
// @Success      200  {object}  handlers.RespTestimonials
// @Router       /api/v1/admin/testimonials [get]
func ApiAdminListTestimonials(svc *testimonial.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := types.TestimonialStatus(c.DefaultQuery("status", string(types.TestimonialStatusPending)))
		if status != types.TestimonialStatusPending && status != types.TestimonialStatusPublished {
			replyError(c, log, types.NewValidationError("status", "must be pending or published"))
			return
		}
		limit, _ := strconv.Atoi(c.Query("limit"))
		replyResult(c, log, svc.List(c.Request.Context(), status, limit))
	}
}

// @Summary      Publish a testimonial (Admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Testimonial ID"
// @Success      200  {object}  handlers.RespTestimonial
// @Router       /api/v1/admin/testimonials/{id}/publish [post]
func ApiAdminPublishTestimonial(svc *testimonial.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := svc.Publish(c.Request.Context(), c.Param("id"))
		if err != nil {
			replyError(c, log, err)
			return
		}
		replyOK(c, item)
	}
}

// RegisterAdminRoutes expects r to already enforce authentication and the admin role.
func RegisterAdminRoutes(r gin.IRouter, stats *statistics.Service, subs *subsvc.Service, testimonials *testimonial.Service, log *zap.SugaredLogger) {
	r.POST("/metrics", ApiAdminMetrics(stats, log))
	r.POST("/subscriptions/list", ApiAdminListSubscriptions(subs, log))
	r.POST("/subscriptions/:id/status", ApiAdminSetSubscriptionStatus(subs, log))
	r.GET("/testimonials", ApiAdminListTestimonials(testimonials, log))
	r.POST("/testimonials/:id/publish", ApiAdminPublishTestimonial(testimonials, log))
}
