package entity

import "time"

type Plan string

const (
	PlanFree  Plan = "free"
	PlanBasic Plan = "basic"
	PlanPro   Plan = "pro"
)

// AvailablePlans is the values accepted by set-plan, in display order.
var AvailablePlans = []Plan{PlanFree, PlanBasic, PlanPro}

func ValidPlan(p string) bool {
	for _, plan := range AvailablePlans {
		if string(plan) == p {
			return true
		}
	}
	return false
}

// User is an account identity. Token is the per-request bearer token used by
// API integrations, AdminToken the stronger token used for account
// management endpoints.
type User struct {
	UserID               string
	PasswordHash         string
	Token                string
	AdminToken           string
	Plan                 Plan
	DocumentThreshold    string
	SavedReplyThreshold  string
	TermsAgreed          bool
	OnboardingCompleted  bool
	ForwardEmail         *string
	ForwardEmailVerified bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ForwardEmailToken is a pending email-forwarding verification. The token
// travels in the verification link; the address is only activated once the
// link is visited.
type ForwardEmailToken struct {
	Token     string
	UserID    string
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (t *ForwardEmailToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// PaymentOrder is a pending or settled plan upgrade checkout.
type PaymentOrder struct {
	OrderID     string
	UserID      string
	Plan        Plan
	GrossAmount int64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
