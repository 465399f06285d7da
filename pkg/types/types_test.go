package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("phone", "invalid")
	require.EqualError(t, err, "phone: invalid")
	require.True(t, errors.Is(err, ErrValidation))
	require.True(t, errors.Is(fmt.Errorf("create: %w", err), ErrValidation))
	require.False(t, errors.Is(err, ErrNotFound))
	require.EqualError(t, NewValidationError("", "bad body"), "bad body")
}

func TestResult(t *testing.T) {
	require.True(t, OK(1).Available())
	require.True(t, Empty[int]().Available())
	res := Unavailable[int](ErrPersistenceUnavailable)
	require.False(t, res.Available())
	require.ErrorIs(t, res.Err, ErrPersistenceUnavailable)
}

func TestEnumsValid(t *testing.T) {
	require.True(t, MealTypeLunch.Valid())
	require.False(t, MealType("brunch").Valid())
	require.True(t, WeekdaySunday.Valid())
	require.False(t, Weekday("Monday").Valid())
	require.True(t, SubscriptionStatusPaused.Valid())
	require.False(t, SubscriptionStatus("expired").Valid())
	require.True(t, RoleAdmin.Valid())
	require.False(t, Role("owner").Valid())
}

func TestCommonFilter_Validate(t *testing.T) {
	allowed := []string{"status", "total_price"}
	cases := []struct {
		name   string
		filter *CommonFilter
		ok     bool
	}{
		{"eq", &CommonFilter{Field: "status", Operator: CommonFilterOperatorEq, Values: []any{"active"}}, true},
		{"range", &CommonFilter{Field: "total_price", Operator: CommonFilterOperatorRange, Values: []any{1, 2}}, true},
		{"nil", nil, false},
		{"unknown field", &CommonFilter{Field: "phone", Operator: CommonFilterOperatorEq, Values: []any{"x"}}, false},
		{"unknown operator", &CommonFilter{Field: "status", Operator: "like", Values: []any{"a%"}}, false},
		{"no values", &CommonFilter{Field: "status", Operator: CommonFilterOperatorIn}, false},
		{"short range", &CommonFilter{Field: "total_price", Operator: CommonFilterOperatorRange, Values: []any{1}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.filter.Validate(allowed)
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

type filterRow struct {
	ID         int
	Status     string
	TotalPrice int64
}

func TestFiltersAnd_Query(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&filterRow{}))
	require.NoError(t, db.Create([]*filterRow{
		{ID: 1, Status: "active", TotalPrice: 100},
		{ID: 2, Status: "active", TotalPrice: 300},
		{ID: 3, Status: "paused", TotalPrice: 200},
		{ID: 4, Status: "cancelled", TotalPrice: 400},
	}).Error)

	ids := func(filters FiltersAnd) []int {
		var out []int
		require.NoError(t, db.Model(&filterRow{}).Where(filters).Order("id").Pluck("id", &out).Error)
		return out
	}

	require.Equal(t, []int{1, 2, 3, 4}, ids(nil))
	require.Equal(t, []int{1, 2}, ids(FiltersAnd{{Field: "status", Operator: CommonFilterOperatorEq, Values: []any{"active"}}}))
	require.Equal(t, []int{3, 4}, ids(FiltersAnd{{Field: "status", Operator: CommonFilterOperatorNotEq, Values: []any{"active"}}}))
	require.Equal(t, []int{2, 3}, ids(FiltersAnd{{Field: "total_price", Operator: CommonFilterOperatorRange, Values: []any{200, 300}}}))
	require.Equal(t, []int{1, 3}, ids(FiltersAnd{{Field: "status", Operator: CommonFilterOperatorIn, Values: []any{"active", "paused"}}, {Field: "total_price", Operator: CommonFilterOperatorLte, Values: []any{200}}}))
	require.Equal(t, []int{4}, ids(FiltersAnd{{Field: "total_price", Operator: CommonFilterOperatorGt, Values: []any{300}}}))
}
