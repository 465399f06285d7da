package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/natashawa225/sea-catering/internal/app/api/middleware"
	subsvc "github.com/natashawa225/sea-catering/internal/app/service/subscription"
	"github.com/natashawa225/sea-catering/internal/models"
	"github.com/natashawa225/sea-catering/pkg/response"
	"github.com/natashawa225/sea-catering/pkg/types"
)

type StatusRequest struct {
	Status     types.SubscriptionStatus `json:"status" binding:"required"`
	PauseStart string                   `json:"pause_start"`
	PauseEnd   string                   `json:"pause_end"`
}

type PauseRequest struct {
	PauseStart string `json:"pause_start" binding:"required"`
	PauseEnd   string `json:"pause_end" binding:"required"`
}

func principal(c *gin.Context) (*types.Principal, bool) {
	p, ok := mw.PrincipalFrom(c)
	if !ok {
		reply(c, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "missing principal"))
	}
	return p, ok
}

// @Summary      Create a subscription
// @Description  Validates the order, snapshots the plan price and stores it as active. A status field in the body is ignored.
// @Tags         Subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body subscription.CreateRequest true "Subscription order"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/subscriptions [post]
func ApiCreateSubscription(svc *subsvc.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req subsvc.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			replyBadRequest(c, err)
			return
		}
		sub, err := svc.Create(c.Request.Context(), p.UserID, &req)
		if err != nil {
			replyError(c, log, err)
			return
		}
		replyOK(c, sub)
	}
}

// @Summary      List my subscriptions
// @Description  Newest first. data.kind is "empty" when the caller has none; a store failure is reported with code 50300.
// @Tags         Subscriptions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespSubscriptions
// @Router       /api/v1/subscriptions [get]
func ApiListSubscriptions(svc *subsvc.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		replyResult(c, log, svc.ListForUser(c.Request.Context(), p.UserID))
	}
}

// @Summary      Get one of my subscriptions
// @Tags         Subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/subscriptions/{id} [get]
func ApiGetSubscription(svc *subsvc.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		sub, err := svc.Get(c.Request.Context(), subsvc.Customer(p.UserID), c.Param("id"))
		if err != nil {
			replyError(c, log, err)
			return
		}
		replyOK(c, sub)
	}
}

type statusFunc func(c *gin.Context, actor subsvc.Actor, id string) (*models.Subscription, error)

func changeStatus(log *zap.SugaredLogger, actorFor func(*types.Principal) subsvc.Actor, fn statusFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		sub, err := fn(c, actorFor(p), c.Param("id"))
		if err != nil {
			replyError(c, log, err)
			return
		}
		replyOK(c, sub)
	}
}

func customerActor(p *types.Principal) subsvc.Actor { return subsvc.Customer(p.UserID) }

func adminActor(p *types.Principal) subsvc.Actor { return subsvc.Admin(p.UserID) }

// setStatusFn binds a StatusRequest body; a malformed body is reported as a ValidationError.
func setStatusFn(svc *subsvc.Service) statusFunc {
	return func(c *gin.Context, actor subsvc.Actor, id string) (*models.Subscription, error) {
		var req StatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, types.NewValidationError("body", err.Error())
		}
		return svc.SetStatus(c.Request.Context(), actor, id, subsvc.StatusChange{
			Status:     req.Status,
			PauseStart: req.PauseStart,
			PauseEnd:   req.PauseEnd,
		})
	}
}

// @Summary      Change my subscription status
// @Description  Allowed: active->paused (pause_start and pause_end required, YYYY-MM-DD), paused->active, active|paused->cancelled. Cancelled is terminal (code 40900).
// @Tags         Subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subscription ID"
// @Param        request body handlers.StatusRequest true "Target status"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/subscriptions/{id}/status [post]
func ApiSetSubscriptionStatus(svc *subsvc.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return changeStatus(log, customerActor, setStatusFn(svc))
}

// @Summary      Pause my subscription
// @Tags         Subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subscription ID"
// @Param        request body handlers.PauseRequest true "Inclusive pause window"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/subscriptions/{id}/pause [post]
func ApiPauseSubscription(svc *subsvc.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return changeStatus(log, customerActor, func(c *gin.Context, actor subsvc.Actor, id string) (*models.Subscription, error) {
		var req PauseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, types.NewValidationError("body", err.Error())
		}
		return svc.Pause(c.Request.Context(), actor, id, req.PauseStart, req.PauseEnd)
	})
}

// @Summary      Resume my subscription
// @Tags         Subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/subscriptions/{id}/resume [post]
func ApiResumeSubscription(svc *subsvc.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return changeStatus(log, customerActor, func(c *gin.Context, actor subsvc.Actor, id string) (*models.Subscription, error) {
		return svc.Resume(c.Request.Context(), actor, id)
	})
}

// @Summary      Cancel my subscription
// @Description  Cancellation is terminal.
// @Tags         Subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/subscriptions/{id}/cancel [post]
func ApiCancelSubscription(svc *subsvc.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return changeStatus(log, customerActor, func(c *gin.Context, actor subsvc.Actor, id string) (*models.Subscription, error) {
		return svc.Cancel(c.Request.Context(), actor, id)
	})
}

func RegisterSubscriptionRoutes(r gin.IRouter, svc *subsvc.Service, log *zap.SugaredLogger) {
	r.POST("/subscriptions", ApiCreateSubscription(svc, log))
	r.GET("/subscriptions", ApiListSubscriptions(svc, log))
	r.GET("/subscriptions/:id", ApiGetSubscription(svc, log))
	r.POST("/subscriptions/:id/status", ApiSetSubscriptionStatus(svc, log))
	r.POST("/subscriptions/:id/pause", ApiPauseSubscription(svc, log))
	r.POST("/subscriptions/:id/resume", ApiResumeSubscription(svc, log))
	r.POST("/subscriptions/:id/cancel", ApiCancelSubscription(svc, log))
}
