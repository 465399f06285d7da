package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natashawa225/sea-catering/pkg/config"
	"github.com/natashawa225/sea-catering/pkg/types"
)

func newCalculator() *Calculator {
	plans := append(types.DefaultPlans(), &types.Plan{ID: "odd", Name: "Odd", Price: 5})
	return NewCalculator(&config.Config{Plans: plans})
}

func TestCalculator_Compute(t *testing.T) {
	c := newCalculator()
	all := types.MealTypes
	week := types.Weekdays

	tests := []struct {
		name  string
		plan  string
		meals []types.MealType
		days  []types.Weekday
		want  int64
	}{
		{
			name:  "protein two meals three days",
			plan:  types.PlanIDProtein,
			meals: []types.MealType{types.MealTypeBreakfast, types.MealTypeDinner},
			days:  []types.Weekday{types.WeekdayMonday, types.WeekdayWednesday, types.WeekdayFriday},
			want:  1032000,
		},
		{
			name:  "diet single meal single day",
			plan:  types.PlanIDDiet,
			meals: []types.MealType{types.MealTypeLunch},
			days:  []types.Weekday{types.WeekdaySunday},
			want:  129000,
		},
		{name: "royal everything", plan: types.PlanIDRoyal, meals: all, days: week, want: 5418000},
		{
			name:  "half rounds up",
			plan:  "odd",
			meals: []types.MealType{types.MealTypeLunch},
			days:  []types.Weekday{types.WeekdayMonday},
			want:  22, // 5 × 4.3 = 21.5
		},
		{name: "no meal types", plan: types.PlanIDDiet, meals: nil, days: week, want: 0},
		{name: "no delivery days", plan: types.PlanIDDiet, meals: all, days: []types.Weekday{}, want: 0},
		{name: "unknown plan", plan: "vegan", meals: all, days: week, want: 0},
		{name: "empty plan with empty selections", plan: "", want: 0},
		{
			name:  "duplicates collapse",
			plan:  types.PlanIDProtein,
			meals: []types.MealType{types.MealTypeBreakfast, types.MealTypeBreakfast, types.MealTypeDinner},
			days:  []types.Weekday{types.WeekdayMonday, types.WeekdayWednesday, types.WeekdayFriday, types.WeekdayFriday},
			want:  1032000,
		},
		{
			name:  "values outside the enumeration are ignored",
			plan:  types.PlanIDDiet,
			meals: []types.MealType{"brunch"},
			days:  []types.Weekday{types.WeekdayMonday},
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Compute(tt.plan, tt.meals, tt.days))
		})
	}
}

func TestCalculator_Quote(t *testing.T) {
	c := newCalculator()

	q := c.Quote(types.PlanIDProtein, []types.MealType{types.MealTypeBreakfast, types.MealTypeDinner},
		[]types.Weekday{types.WeekdayMonday, types.WeekdayWednesday, types.WeekdayFriday})
	require.True(t, q.Complete)
	require.Equal(t, "Protein Plan", q.PlanName)
	require.Equal(t, int64(40000), q.PricePerMeal)
	require.Equal(t, 2, q.MealTypeCount)
	require.Equal(t, 3, q.DeliveryDayCount)
	require.Equal(t, "4.3", q.WeeksPerMonth)
	require.Equal(t, int64(1032000), q.TotalPrice)

	incomplete := c.Quote(types.PlanIDProtein, nil, []types.Weekday{types.WeekdayMonday})
	require.False(t, incomplete.Complete)
	require.Zero(t, incomplete.TotalPrice)
}

func TestMonthlyPrice_MatchesFormula(t *testing.T) {
	for _, price := range []int64{30000, 40000, 60000} {
		for meals := 1; meals <= 3; meals++ {
			for days := 1; days <= 7; days++ {
				// all catalog prices are multiples of ten so the product is exact
				want := price * int64(meals) * int64(days) * 43 / 10
				require.Equal(t, want, MonthlyPrice(price, meals, days))
			}
		}
	}
}
