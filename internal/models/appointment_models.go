package models

import "time"

// AppointmentStatus is the lifecycle state of a salon appointment.
type AppointmentStatus string

const (
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusNoShow    AppointmentStatus = "no-show"
)

// IsValidAppointmentStatus checks if the provided status string is a known AppointmentStatus.
func IsValidAppointmentStatus(status string) bool {
	switch AppointmentStatus(status) {
	case AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusConfirmed,
		AppointmentStatusPending,
		AppointmentStatusNoShow:
		return true
	default:
		return false
	}
}

// ServiceRef is the populated service of an appointment.
type ServiceRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// StylistRef is the populated stylist of an appointment.
type StylistRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// FullName joins first and last name the way reports label stylists.
func (s StylistRef) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Appointment is a read-only projection of a booked salon visit.
// Service and Stylist are nil when the reference is missing.
type Appointment struct {
	ID         string            `json:"id" db:"id"`
	DateTime   time.Time         `json:"dateTime" db:"date_time"`
	Status     AppointmentStatus `json:"status" db:"status"`
	Price      float64           `json:"price" db:"price"`
	Duration   int               `json:"duration" db:"duration"` // minutes
	Service    *ServiceRef       `json:"service,omitempty"`
	Stylist    *StylistRef       `json:"stylist,omitempty"`
	CustomerID *string           `json:"customer,omitempty" db:"customer_id"`
}

// AppointmentFilter narrows an appointment query. Nil fields are not applied;
// From and To are inclusive bounds on DateTime.
type AppointmentFilter struct {
	Status    *AppointmentStatus
	StylistID *string
	ServiceID *string
	From      *time.Time
	To        *time.Time
}
