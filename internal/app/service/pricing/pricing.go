package pricing

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/natashawa225/sea-catering/pkg/config"
	"github.com/natashawa225/sea-catering/pkg/types"
)

// WeeksPerMonth approximates the average number of weeks in a month.
var WeeksPerMonth = decimal.RequireFromString("4.3")

// MonthlyPrice is pricePerMeal × mealTypes × deliveryDays × 4.3 rounded half-up to a whole
// currency unit. Any non-positive factor yields 0.
func MonthlyPrice(pricePerMeal int64, mealTypes, deliveryDays int) int64 {
	if pricePerMeal <= 0 || mealTypes <= 0 || deliveryDays <= 0 {
		return 0
	}
	return decimal.NewFromInt(pricePerMeal).
		Mul(decimal.NewFromInt(int64(mealTypes))).
		Mul(decimal.NewFromInt(int64(deliveryDays))).
		Mul(WeeksPerMonth).
		Round(0).
		IntPart()
}

// UniqueMealTypes drops duplicates and values outside the enumeration, keeping input order.
func UniqueMealTypes(in []types.MealType) []types.MealType {
	return lo.Uniq(lo.Filter(in, func(m types.MealType, _ int) bool { return m.Valid() }))
}

// UniqueWeekdays drops duplicates and values outside the enumeration, keeping input order.
func UniqueWeekdays(in []types.Weekday) []types.Weekday {
	return lo.Uniq(lo.Filter(in, func(d types.Weekday, _ int) bool { return d.Valid() }))
}

// Quote is the price breakdown shown while a customer builds a subscription.
type Quote struct {
	PlanID           string `json:"plan_id"`
	PlanName         string `json:"plan_name,omitempty"`
	PricePerMeal     int64  `json:"price_per_meal"`
	MealTypeCount    int    `json:"meal_type_count"`
	DeliveryDayCount int    `json:"delivery_day_count"`
	WeeksPerMonth    string `json:"weeks_per_month"`
	TotalPrice       int64  `json:"total_price"`
	// Complete is false while the plan is unknown or a selection is empty; TotalPrice is 0 then
	// and the subscription must not be submitted.
	Complete bool `json:"complete"`
}

// Calculator prices selections against the configured plan catalog.
type Calculator struct {
	cfg *config.Config
}

func NewCalculator(cfg *config.Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Plans returns the catalog.
func (c *Calculator) Plans() []*types.Plan {
	return c.cfg.Plans
}

func (c *Calculator) Plan(planID string) *types.Plan {
	return c.cfg.GetPlanByID(planID)
}

// Compute returns the monthly price, or 0 when the plan is unknown or a selection is empty.
func (c *Calculator) Compute(planID string, mealTypes []types.MealType, deliveryDays []types.Weekday) int64 {
	return c.Quote(planID, mealTypes, deliveryDays).TotalPrice
}

func (c *Calculator) Quote(planID string, mealTypes []types.MealType, deliveryDays []types.Weekday) *Quote {
	q := &Quote{
		PlanID:           planID,
		MealTypeCount:    len(UniqueMealTypes(mealTypes)),
		DeliveryDayCount: len(UniqueWeekdays(deliveryDays)),
		WeeksPerMonth:    WeeksPerMonth.String(),
	}
	plan := c.Plan(planID)
	if plan == nil {
		return q
	}
	q.PlanName = plan.Name
	q.PricePerMeal = plan.Price
	q.TotalPrice = MonthlyPrice(plan.Price, q.MealTypeCount, q.DeliveryDayCount)
	q.Complete = q.TotalPrice > 0
	return q
}

var Module = fx.Options(
	fx.Provide(NewCalculator),
)
