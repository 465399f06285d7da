package subscription

import (
	"regexp"
	"strings"

	"github.com/natashawa225/sea-catering/pkg/types"
)

// phonePattern accepts Indonesian mobile numbers: "08" followed by 8 to 11 digits.
var phonePattern = regexp.MustCompile(`^08[0-9]{8,11}$`)

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// CreateRequest carries the customer-entered fields of a new subscription. Status is accepted
// for compatibility with older clients and ignored.
type CreateRequest struct {
	Name         string                   `json:"name"`
	Phone        string                   `json:"phone"`
	PlanID       string                   `json:"plan_id"`
	MealTypes    []types.MealType         `json:"meal_types"`
	DeliveryDays []types.Weekday          `json:"delivery_days"`
	Allergies    string                   `json:"allergies"`
	Status       types.SubscriptionStatus `json:"status,omitempty"`
}

// normalize trims free text in place.
func (r *CreateRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.PlanID = strings.TrimSpace(r.PlanID)
	r.Allergies = strings.TrimSpace(r.Allergies)
}

// validate checks everything except the plan, which needs the catalog.
func (r *CreateRequest) validate() error {
	if r.Name == "" {
		return types.NewValidationError("name", "required")
	}
	if r.Phone == "" {
		return types.NewValidationError("phone", "required")
	}
	if !ValidPhone(r.Phone) {
		return types.NewValidationError("phone", "must be an Indonesian phone number (08xxxxxxxxx)")
	}
	if r.PlanID == "" {
		return types.NewValidationError("plan_id", "required")
	}
	if len(r.MealTypes) == 0 {
		return types.NewValidationError("meal_types", "select at least one meal type")
	}
	for _, m := range r.MealTypes {
		if !m.Valid() {
			return types.NewValidationError("meal_types", "unknown meal type "+string(m))
		}
	}
	if len(r.DeliveryDays) == 0 {
		return types.NewValidationError("delivery_days", "select at least one delivery day")
	}
	for _, d := range r.DeliveryDays {
		if !d.Valid() {
			return types.NewValidationError("delivery_days", "unknown delivery day "+string(d))
		}
	}
	return nil
}
