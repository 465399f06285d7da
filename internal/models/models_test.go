package models

import (
	"testing"

	"github.com/natashawa225/sea-catering/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestTableNames(t *testing.T) {
	require.Equal(t, "subscriptions", Subscription{}.TableName())
	require.Equal(t, "subscription_log", SubscriptionLog{}.TableName())
	require.Equal(t, "testimonials", Testimonial{}.TableName())
	require.Equal(t, "user_roles", UserRole{}.TableName())
}

func TestSubscriptionLog_IsReactivation(t *testing.T) {
	tests := []struct {
		from, to types.SubscriptionStatus
		want     bool
	}{
		{types.SubscriptionStatusPaused, types.SubscriptionStatusActive, true},
		{types.SubscriptionStatusCancelled, types.SubscriptionStatusActive, true},
		{"", types.SubscriptionStatusActive, false},
		{types.SubscriptionStatusActive, types.SubscriptionStatusPaused, false},
		{types.SubscriptionStatusPaused, types.SubscriptionStatusCancelled, false},
	}
	for _, tt := range tests {
		l := &SubscriptionLog{FromStatus: tt.from, ToStatus: tt.to}
		require.Equal(t, tt.want, l.IsReactivation(), "%s -> %s", tt.from, tt.to)
	}
}
