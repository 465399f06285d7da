package types

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

func (s SubscriptionStatus) Valid() bool {
	return s == SubscriptionStatusActive || s == SubscriptionStatusPaused || s == SubscriptionStatusCancelled
}

// StatusActor records who triggered a subscription status change.
type StatusActor string

const (
	StatusActorCustomer  StatusActor = "customer"
	StatusActorAdmin     StatusActor = "admin"
	StatusActorScheduler StatusActor = "scheduler"
)

type TestimonialStatus string

const (
	TestimonialStatusPending   TestimonialStatus = "pending"
	TestimonialStatusPublished TestimonialStatus = "published"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Principal is the authenticated caller as supplied by the identity provider.
type Principal struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
}
