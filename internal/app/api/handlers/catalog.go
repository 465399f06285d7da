package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/natashawa225/sea-catering/internal/app/service/pricing"
	"github.com/natashawa225/sea-catering/pkg/types"
)

type QuoteRequest struct {
	PlanID       string           `json:"plan_id" binding:"required"`
	MealTypes    []types.MealType `json:"meal_types"`
	DeliveryDays []types.Weekday  `json:"delivery_days"`
}

// @Summary      List meal plans
// @Description  Returns the plan catalog with per-meal prices in IDR.
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  handlers.RespPlans
// @Router       /api/v1/plans [get]
func ApiListPlans(calc *pricing.Calculator) gin.HandlerFunc {
	return func(c *gin.Context) {
		replyOK(c, calc.Plans())
	}
}

// @Summary      Quote a subscription
// @Description  Prices a plan and selection. total_price is 0 and complete is false until the plan is known and both selections are non-empty.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request body handlers.QuoteRequest true "Plan and selections"
// @Success      200  {object}  handlers.RespQuote
// @Router       /api/v1/plans/quote [post]
func ApiQuote(calc *pricing.Calculator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			replyBadRequest(c, err)
			return
		}
		replyOK(c, calc.Quote(req.PlanID, req.MealTypes, req.DeliveryDays))
	}
}

func RegisterCatalogRoutes(r gin.IRouter, calc *pricing.Calculator) {
	r.GET("/plans", ApiListPlans(calc))
	r.POST("/plans/quote", ApiQuote(calc))
}
