package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"salon_reports_backend/internal/models"
	"salon_reports_backend/pkg/utils"
)

const (
	defaultMaxStock     = 100
	peakHoursLimit      = 5
	unassignedWorkload  = "Unassigned"
	notAvailable        = "N/A"
	cancellationPenalty = 0.2
)

func analyzeInventory(items []models.InventoryItem) models.InventoryStatus {
	status := models.InventoryStatus{
		Total:      len(items),
		LowStock:   []models.LowStockItem{},
		OutOfStock: []string{},
		OverStock:  []models.OverStockItem{},
	}
	for _, item := range items {
		// An out-of-stock item is also below its minimum and is listed in both.
		if item.CurrentStock <= item.MinStock {
			status.LowStock = append(status.LowStock, models.LowStockItem{Name: item.Name, Current: item.CurrentStock, Min: item.MinStock})
		}
		if item.CurrentStock == 0 {
			status.OutOfStock = append(status.OutOfStock, item.Name)
		}
		maxStock := item.MaxStock
		if maxStock == 0 {
			maxStock = defaultMaxStock
		}
		if item.CurrentStock > maxStock {
			status.OverStock = append(status.OverStock, models.OverStockItem{Name: item.Name, Current: item.CurrentStock, Max: maxStock})
		}
		status.TotalValue += float64(item.CurrentStock) * item.UnitCost
	}
	return status
}

// summarizeCommissions splits commissions into paid and everything else.
func summarizeCommissions(commissions []models.Commission) models.CommissionSummary {
	summary := models.CommissionSummary{Total: len(commissions)}
	for _, c := range commissions {
		summary.TotalAmount += c.FinalAmount
		if c.PaymentStatus == models.CommissionPaymentPaid {
			summary.Paid++
			summary.PaidAmount += c.FinalAmount
		} else {
			summary.Pending++
			summary.PendingAmount += c.FinalAmount
		}
	}
	return summary
}

func workloadDistribution(appointments []models.Appointment) map[string]int {
	workload := map[string]int{}
	for _, apt := range appointments {
		name := unassignedWorkload
		if apt.Stylist != nil && strings.TrimSpace(apt.Stylist.FullName()) != "" {
			name = apt.Stylist.FullName()
		}
		workload[name]++
	}
	return workload
}

// peakHours returns the busiest hour buckets, ties broken by earlier hour.
func peakHours(byHour map[int]int) []models.PeakHour {
	hours := make([]models.PeakHour, 0, len(byHour))
	for hour, count := range byHour {
		hours = append(hours, models.PeakHour{
			Hour:      hour,
			Count:     count,
			TimeRange: fmt.Sprintf("%d:00 - %d:00", hour, hour+1),
		})
	}
	sort.Slice(hours, func(i, j int) bool {
		if hours[i].Count != hours[j].Count {
			return hours[i].Count > hours[j].Count
		}
		return hours[i].Hour < hours[j].Hour
	})
	if len(hours) > peakHoursLimit {
		hours = hours[:peakHoursLimit]
	}
	return hours
}

// operationalEfficiency rewards completions and penalizes cancellations, on a
// 0..100 scale.
func operationalEfficiency(appointments []models.Appointment) int {
	if len(appointments) == 0 {
		return 0
	}
	completed, cancelled := 0, 0
	for _, apt := range appointments {
		switch apt.Status {
		case models.AppointmentStatusCompleted:
			completed++
		case models.AppointmentStatusCancelled:
			cancelled++
		}
	}
	total := float64(len(appointments))
	score := math.Round(float64(completed)/total*100 - float64(cancelled)/total*100*cancellationPenalty)
	return int(math.Max(0, math.Min(100, score)))
}

func buildSummary(report *models.Report) models.ReportSummary {
	summary := models.ReportSummary{
		TotalRevenue:         report.Revenue.TotalRevenue,
		TotalAppointments:    report.Appointments.Total,
		TotalCustomers:       report.Customers.Total,
		AverageTicket:        report.Revenue.AverageTicket,
		TopPerformingStylist: notAvailable,
		MostPopularService:   notAvailable,
		KeyMetrics: models.KeyMetrics{
			RevenueGrowth:              report.Trends.RevenueGrowth,
			CustomerRetention:          utils.FormatFixed(utils.Percent(float64(report.Customers.Returning), float64(report.Customers.Total)), 1) + "%",
			AverageRating:              placeholderAverageRating,
			AverageRatingIsPlaceholder: true,
			OperationalEfficiency:      report.Operational.Efficiency,
		},
	}
	if len(report.Stylists.Performance) > 0 {
		summary.TopPerformingStylist = report.Stylists.Performance[0].Name
	}
	if report.Services.MostPopular != nil {
		summary.MostPopularService = report.Services.MostPopular.Name
	}
	return summary
}
