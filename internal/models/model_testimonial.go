package models

import (
	"time"

	"github.com/natashawa225/sea-catering/pkg/types"
)

// Testimonial is a customer review. It has no relation to subscriptions.
type Testimonial struct {
	ID            string                  `gorm:"column:id;type:uuid;primary_key" json:"id"`
	CustomerName  string                  `gorm:"column:customer_name;type:varchar(255);not null" json:"customer_name"`
	ReviewMessage string                  `gorm:"column:review_message;type:text;not null" json:"review_message"`
	Rating        int                     `gorm:"column:rating;not null" json:"rating"`
	Status        types.TestimonialStatus `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}
