package models

import (
	"time"

	"github.com/natashawa225/sea-catering/pkg/types"
	"gorm.io/datatypes"
)

// Subscription is one customer's recurring meal order.
// PlanName, PlanPrice and TotalPrice are snapshots taken at creation; later catalog
// changes never rewrite them.
type Subscription struct {
	ID           string                              `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID       string                              `gorm:"column:user_id;type:varchar(64);not null;index:idx_subscriptions_user_created,priority:1" json:"user_id"`
	Name         string                              `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Phone        string                              `gorm:"column:phone;type:varchar(32);not null" json:"phone"`
	PlanID       string                              `gorm:"column:plan_id;type:varchar(64);not null" json:"plan_id"`
	PlanName     string                              `gorm:"column:plan_name;type:varchar(255);not null" json:"plan_name"`
	PlanPrice    int64                               `gorm:"column:plan_price;not null" json:"plan_price"`
	MealTypes    datatypes.JSONSlice[types.MealType] `gorm:"column:meal_types;not null" json:"meal_types"`
	DeliveryDays datatypes.JSONSlice[types.Weekday]  `gorm:"column:delivery_days;not null" json:"delivery_days"`
	Allergies    string                              `gorm:"column:allergies;type:text" json:"allergies"`
	TotalPrice   int64                               `gorm:"column:total_price;not null" json:"total_price"`
	Status       types.SubscriptionStatus            `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	// PauseStart and PauseEnd are calendar dates (YYYY-MM-DD), set only while paused.
	PauseStart *string `gorm:"column:pause_start;type:varchar(10)" json:"pause_start,omitempty"`
	PauseEnd   *string `gorm:"column:pause_end;type:varchar(10)" json:"pause_end,omitempty"`
	// CreatedAt is managed by GORM and records the creation time.
	CreatedAt time.Time `gorm:"index:idx_subscriptions_user_created,priority:2,sort:desc" json:"created_at"`
	// UpdatedAt is managed by GORM and advances on every status change.
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) IsActive() bool {
	return s != nil && s.Status == types.SubscriptionStatusActive
}
