package models

import "time"

// Claim statuses for a pet insurance subscription.
const (
	ClaimPending  = "pending"
	ClaimApproved = "approved"
	ClaimRejected = "rejected"
)

// Policy is a row in insurance_policies. Policies are global catalog
// entries managed by admins; they have no owning principal.
type Policy struct {
	ID             string  `json:"id"`
	ProviderName   string  `json:"provider_name"`
	PolicyName     string  `json:"policy_name"`
	PremiumAmount  float64 `json:"premium_amount"`
	CoverageAmount float64 `json:"coverage_amount"`
	Description    string  `json:"description,omitempty"`
}

// Subscription is a row in pet_insurance, owned transitively through its pet.
type Subscription struct {
	ID               string    `json:"id"`
	PetID            string    `json:"pet_id"`
	PolicyID         string    `json:"policy_id"`
	PolicyNumber     string    `json:"policy_number"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	ClaimStatus      string    `json:"claim_status"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
}

// SubscriptionDetail joins a subscription with its policy terms.
type SubscriptionDetail struct {
	Subscription
	Policy Policy `json:"policy"`
}

// SubscriptionOverview is the admin listing row: subscription, policy
// terms, and the insured pet with its owner's contact email.
type SubscriptionOverview struct {
	Subscription
	Policy     Policy `json:"policy"`
	PetName    string `json:"pet_name"`
	OwnerEmail string `json:"owner_email"`
}

// PremiumSchedule is one subscription's premium keyed by its end
// date, the shape the revenue analytics aggregate over.
type PremiumSchedule struct {
	EndDate time.Time
	Premium float64
}
