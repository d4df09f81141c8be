package models

// Stylist represents a salon team member who takes appointments.
type Stylist struct {
	ID        string `json:"id" db:"id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	IsActive  bool   `json:"isActive" db:"is_active"`
}

// FullName joins first and last name the way reports label stylists.
func (s Stylist) FullName() string {
	return s.FirstName + " " + s.LastName
}
