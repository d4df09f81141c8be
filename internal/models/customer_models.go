package models

import "time"

// Customer represents a salon client as seen by reporting.
type Customer struct {
	ID            string    `json:"id" db:"id"`
	FirstName     string    `json:"firstName" db:"first_name"`
	LastName      string    `json:"lastName" db:"last_name"`
	Email         *string   `json:"email,omitempty" db:"email"`
	VisitCount    int       `json:"visitCount" db:"visit_count"`
	TotalSpent    float64   `json:"totalSpent" db:"total_spent"`
	LoyaltyPoints int       `json:"loyaltyPoints" db:"loyalty_points"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// CustomerFilter bounds customers by creation time. A zero filter returns everyone.
type CustomerFilter struct {
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
