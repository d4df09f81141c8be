package models

import "time"

// CommissionPaymentPaid is the only payment status counted as paid.
const CommissionPaymentPaid = "paid"

// Commission is a stylist payout calculated for a pay period.
type Commission struct {
	ID            string    `json:"id" db:"id"`
	StylistID     *string   `json:"stylist,omitempty" db:"stylist_id"`
	PeriodStart   time.Time `json:"periodStart" db:"period_start"`
	PeriodEnd     time.Time `json:"periodEnd" db:"period_end"`
	FinalAmount   float64   `json:"finalAmount" db:"final_amount"`
	PaymentStatus string    `json:"paymentStatus" db:"payment_status"`
}

// CommissionFilter selects commissions whose pay period lies inside [PeriodFrom, PeriodTo].
type CommissionFilter struct {
	PeriodFrom time.Time
	PeriodTo   time.Time
}
