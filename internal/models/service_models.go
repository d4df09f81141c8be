package models

// Service is an entry of the salon service menu.
type Service struct {
	ID       string  `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Category string  `json:"category" db:"category"`
	Price    float64 `json:"price" db:"price"`
	Duration int     `json:"duration" db:"duration"` // minutes
	IsActive bool    `json:"isActive" db:"is_active"`
}
