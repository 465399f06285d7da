package models

import (
	"time"

	"github.com/natashawa225/sea-catering/pkg/types"
)

// SubscriptionLog is the append-only history of subscription status changes.
// Creation is recorded with an empty FromStatus. Reactivation metrics are computed from it.
type SubscriptionLog struct {
	ID             string                   `gorm:"column:id;type:uuid;primary_key" json:"id"`
	SubscriptionID string                   `gorm:"column:subscription_id;type:uuid;not null;index" json:"subscription_id"`
	UserID         string                   `gorm:"column:user_id;type:varchar(64);not null" json:"user_id"`
	FromStatus     types.SubscriptionStatus `gorm:"column:from_status;type:varchar(32);not null" json:"from_status"`
	ToStatus       types.SubscriptionStatus `gorm:"column:to_status;type:varchar(32);not null" json:"to_status"`
	Actor          types.StatusActor        `gorm:"column:actor;type:varchar(32);not null" json:"actor"`
	CreatedAt      time.Time                `gorm:"index" json:"created_at"`
}

func (SubscriptionLog) TableName() string {
	return "subscription_log"
}

// IsReactivation reports a return to active from paused or cancelled.
func (l *SubscriptionLog) IsReactivation() bool {
	return l.ToStatus == types.SubscriptionStatusActive &&
		(l.FromStatus == types.SubscriptionStatusPaused || l.FromStatus == types.SubscriptionStatusCancelled)
}
