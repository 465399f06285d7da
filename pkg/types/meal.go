package types

// MealType is one of the meals a subscription can deliver each delivery day.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
)

var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner}

func (m MealType) Valid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner:
		return true
	}
	return false
}

// Weekday is a delivery day. Values are lower-case English day names.
type Weekday string

const (
	WeekdayMonday    Weekday = "monday"
	WeekdayTuesday   Weekday = "tuesday"
	WeekdayWednesday Weekday = "wednesday"
	WeekdayThursday  Weekday = "thursday"
	WeekdayFriday    Weekday = "friday"
	WeekdaySaturday  Weekday = "saturday"
	WeekdaySunday    Weekday = "sunday"
)

var Weekdays = []Weekday{
	WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday,
	WeekdayFriday, WeekdaySaturday, WeekdaySunday,
}

func (d Weekday) Valid() bool {
	for _, w := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// Plan is a meal plan catalog entry. The catalog is configuration, not stored data;
// subscriptions keep a snapshot of name and price at creation time.
type Plan struct {
	ID          string   `json:"id" mapstructure:"id"`
	Name        string   `json:"name" mapstructure:"name"`
	Price       int64    `json:"price" mapstructure:"price"` // per meal, IDR
	Description string   `json:"description,omitempty" mapstructure:"description"`
	Features    []string `json:"features,omitempty" mapstructure:"features"`
}

const (
	PlanIDDiet    = "diet"
	PlanIDProtein = "protein"
	PlanIDRoyal   = "royal"
)

// DefaultPlans is the catalog used when the configuration does not define one.
func DefaultPlans() []*Plan {
	return []*Plan{
		{
			ID:          PlanIDDiet,
			Name:        "Diet Plan",
			Price:       30000,
			Description: "Perfect for weight management and healthy living",
			Features:    []string{"Low calorie meals (300-500 cal)", "Balanced nutrition", "Fresh ingredients", "Portion controlled"},
		},
		{
			ID:          PlanIDProtein,
			Name:        "Protein Plan",
			Price:       40000,
			Description: "Ideal for fitness enthusiasts and muscle building",
			Features:    []string{"High protein content (35-45g)", "Post-workout meals", "Energy boosting", "Muscle building support"},
		},
		{
			ID:          PlanIDRoyal,
			Name:        "Royal Plan",
			Price:       60000,
			Description: "Premium meals with gourmet ingredients",
			Features:    []string{"Premium ingredients", "Chef-crafted recipes", "Luxury experience", "Gourmet presentation"},
		},
	}
}
