package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"salon_reports_backend/internal/models"
	"salon_reports_backend/pkg/utils"
)

const (
	unknownServiceLabel = "Unknown Service"
	unknownStylistLabel = "Unknown Stylist"
	unknownStatusLabel  = "unknown"
	topCustomersLimit   = 10
)

// buildRevenueMetrics aggregates completed appointments only.
func buildRevenueMetrics(completed []models.Appointment, loc *time.Location) models.RevenueMetrics {
	metrics := models.RevenueMetrics{
		AppointmentsCompleted: len(completed),
		RevenueByDay:          map[string]float64{},
		RevenueByService:      map[string]models.RevenueBucket{},
		RevenueByStylist:      map[string]models.RevenueBucket{},
	}

	for _, apt := range completed {
		metrics.TotalRevenue += apt.Price
		metrics.RevenueByDay[apt.DateTime.In(loc).Format(reportDateLayout)] += apt.Price

		serviceName := unknownServiceLabel
		if apt.Service != nil && apt.Service.Name != "" {
			serviceName = apt.Service.Name
		}
		addToBucket(metrics.RevenueByService, serviceName, apt.Price)

		stylistName := unknownStylistLabel
		if apt.Stylist != nil {
			if name := apt.Stylist.FullName(); strings.TrimSpace(name) != "" {
				stylistName = name
			}
		}
		addToBucket(metrics.RevenueByStylist, stylistName, apt.Price)
	}

	if len(completed) > 0 {
		metrics.AverageTicket = metrics.TotalRevenue / float64(len(completed))
	}
	return metrics
}

func addToBucket(buckets map[string]models.RevenueBucket, key string, revenue float64) {
	bucket := buckets[key]
	bucket.Revenue += revenue
	bucket.Count++
	buckets[key] = bucket
}

// buildAppointmentMetrics covers every in-range appointment regardless of status.
func buildAppointmentMetrics(all []models.Appointment, loc *time.Location) models.AppointmentMetrics {
	metrics := models.AppointmentMetrics{
		Total:       len(all),
		ByStatus:    map[string]int{},
		ByHour:      make(map[int]int, 24),
		ByDayOfWeek: make(map[string]int, 7),
	}
	for h := 0; h < 24; h++ {
		metrics.ByHour[h] = 0
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		metrics.ByDayOfWeek[d.String()] = 0
	}

	totalDuration := 0
	for _, apt := range all {
		status := string(apt.Status)
		if status == "" {
			status = unknownStatusLabel
		}
		metrics.ByStatus[status]++

		local := apt.DateTime.In(loc)
		metrics.ByHour[local.Hour()]++
		metrics.ByDayOfWeek[local.Weekday().String()]++
		totalDuration += apt.Duration
	}

	if len(all) > 0 {
		metrics.AverageDuration = int(math.Round(float64(totalDuration) / float64(len(all))))
	}
	total := float64(len(all))
	metrics.CancellationRate = utils.FormatFixed(utils.Percent(float64(metrics.ByStatus[string(models.AppointmentStatusCancelled)]), total), 1)
	metrics.ShowRate = utils.FormatFixed(utils.Percent(float64(metrics.ByStatus[string(models.AppointmentStatusCompleted)]), total), 1)
	return metrics
}

// buildCustomerMetrics combines the full customer list, the customers created in
// range and the in-range appointments (for visit frequency).
func buildCustomerMetrics(all, created []models.Customer, appointments []models.Appointment) models.CustomerMetrics {
	metrics := models.CustomerMetrics{
		Total:        len(all),
		New:          len(created),
		TopCustomers: []float64{},
		VisitFrequency: map[string]int{
			"1": 0, "2-5": 0, "6-10": 0, "10+": 0,
		},
		LoyaltyPointsDistribution: map[string]int{
			"0": 0, "1-50": 0, "51-100": 0, "101-200": 0, "200+": 0,
		},
	}

	totalVisits := 0
	var spends []float64
	for _, c := range all {
		if c.VisitCount > 1 {
			metrics.Returning++
		}
		totalVisits += c.VisitCount
		if c.TotalSpent > 0 {
			spends = append(spends, c.TotalSpent)
		}
		metrics.LoyaltyPointsDistribution[loyaltyBucket(c.LoyaltyPoints)]++
	}
	if len(all) > 0 {
		metrics.AverageVisits = float64(totalVisits) / float64(len(all))
	}

	if len(spends) > 0 {
		sum := 0.0
		for _, s := range spends {
			sum += s
		}
		metrics.AverageLTV = sum / float64(len(spends))

		sort.Sort(sort.Reverse(sort.Float64Slice(spends)))
		if len(spends) > topCustomersLimit {
			spends = spends[:topCustomersLimit]
		}
		metrics.TopCustomers = spends
	}

	visits := map[string]int{}
	for _, apt := range appointments {
		if apt.CustomerID != nil {
			visits[*apt.CustomerID]++
		}
	}
	for _, count := range visits {
		metrics.VisitFrequency[visitBucket(count)]++
	}
	return metrics
}

func visitBucket(count int) string {
	switch {
	case count == 1:
		return "1"
	case count <= 5:
		return "2-5"
	case count <= 10:
		return "6-10"
	default:
		return "10+"
	}
}

func loyaltyBucket(points int) string {
	switch {
	case points == 0:
		return "0"
	case points <= 50:
		return "1-50"
	case points <= 100:
		return "51-100"
	case points <= 200:
		return "101-200"
	default:
		return "200+"
	}
}
