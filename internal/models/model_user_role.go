package models

import (
	"time"

	"github.com/natashawa225/sea-catering/pkg/types"
)

// UserRole maps an identity provider user id to a role.
type UserRole struct {
	UserID    string     `gorm:"column:user_id;type:varchar(64);primary_key" json:"user_id"`
	Role      types.Role `gorm:"column:role;type:varchar(32);not null" json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
