package services

import (
	"math"
	"sort"
	"strconv"

	"salon_reports_backend/internal/models"
	"salon_reports_backend/pkg/utils"
)

const (
	appointmentGrowthAssumption = 1.1
	cancellationRateThreshold   = 15.0
)

// periodSnapshot is the reduced set of figures compared between periods.
type periodSnapshot struct {
	Revenue       float64
	Appointments  int
	NewCustomers  int
	AverageTicket float64
}

func snapshotOf(appointments []models.Appointment, newCustomers int) periodSnapshot {
	snap := periodSnapshot{Appointments: len(appointments), NewCustomers: newCustomers}
	completed := 0
	for _, apt := range appointments {
		if apt.Status == models.AppointmentStatusCompleted {
			snap.Revenue += apt.Price
			completed++
		}
	}
	if completed > 0 {
		snap.AverageTicket = snap.Revenue / float64(completed)
	}
	return snap
}

// growthRate is the percentage change from previous to current, rounded to one
// decimal. A zero baseline yields 100 when there is any current value and 0
// otherwise.
func growthRate(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return utils.RoundTo((current-previous)/previous*100, 1)
}

func buildTrendMetrics(prevRange models.DateRange, current, previous periodSnapshot) models.TrendMetrics {
	return models.TrendMetrics{
		PreviousPeriod:      prevRange,
		RevenueGrowth:       growthRate(current.Revenue, previous.Revenue),
		AppointmentGrowth:   growthRate(float64(current.Appointments), float64(previous.Appointments)),
		CustomerGrowth:      growthRate(float64(current.NewCustomers), float64(previous.NewCustomers)),
		AverageTicketGrowth: growthRate(current.AverageTicket, previous.AverageTicket),
	}
}

// projectRevenue extrapolates daily revenue one week ahead: the mean day plus
// seven times the average day-over-day slope between the first and last day.
func projectRevenue(revenueByDay map[string]float64) float64 {
	if len(revenueByDay) == 0 {
		return 0
	}
	days := make([]string, 0, len(revenueByDay))
	for day := range revenueByDay {
		days = append(days, day)
	}
	sort.Strings(days)

	sum := 0.0
	for _, day := range days {
		sum += revenueByDay[day]
	}
	n := float64(len(days))
	average := sum / n
	trend := (revenueByDay[days[len(days)-1]] - revenueByDay[days[0]]) / n
	return math.Round(average + trend*7)
}

func projectAppointments(byStatus map[string]int) int {
	total := 0
	for _, count := range byStatus {
		total += count
	}
	return int(math.Round(float64(total) * appointmentGrowthAssumption))
}

// recommendationsFor applies the fixed threshold rules in a stable order.
func recommendationsFor(trends models.TrendMetrics, cancellationRate string, inventory models.InventoryStatus) []models.Recommendation {
	recommendations := []models.Recommendation{}

	if trends.RevenueGrowth < 0 {
		recommendations = append(recommendations, models.Recommendation{
			Priority:    "high",
			Category:    "revenue",
			Title:       "Revenue Declining",
			Description: "Consider promotional campaigns or service packages to boost revenue",
			Action:      "Create service bundles or loyalty program incentives",
		})
	}

	if rate, err := strconv.ParseFloat(cancellationRate, 64); err == nil && rate > cancellationRateThreshold {
		recommendations = append(recommendations, models.Recommendation{
			Priority:    "medium",
			Category:    "operations",
			Title:       "High Cancellation Rate",
			Description: "Cancellation rate of " + cancellationRate + "% is above optimal",
			Action:      "Implement reminder system and cancellation policy",
		})
	}

	if len(inventory.LowStock) > 0 {
		recommendations = append(recommendations, models.Recommendation{
			Priority:    "medium",
			Category:    "inventory",
			Title:       "Low Inventory Items",
			Description: "Several items are running low on stock",
			Action:      "Reorder inventory items and adjust reorder points",
		})
	}
	return recommendations
}
