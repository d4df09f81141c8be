package services

import (
	"sort"

	"salon_reports_backend/internal/models"
	"salon_reports_backend/pkg/utils"
)

// Ratings are not collected anywhere yet, so reports carry fixed figures and
// flag them as placeholders.
const (
	placeholderStylistRating = 4.5
	placeholderServiceRating = 4.5
	placeholderAverageRating = 4.7
)

// monthlyCapacityHours is the working time one stylist is expected to book.
const monthlyCapacityHours = 160.0

// stylistPerformance summarizes one stylist's in-range appointments. Only
// completed appointments count towards revenue.
func stylistPerformance(stylist models.Stylist, appointments []models.Appointment) models.StylistPerformance {
	perf := models.StylistPerformance{
		ID:           stylist.ID,
		Name:         stylist.FullName(),
		Appointments: len(appointments),
	}
	for _, apt := range appointments {
		if apt.Status == models.AppointmentStatusCompleted {
			perf.Completed++
			perf.Revenue += apt.Price
		}
	}
	perf.CompletionRate = utils.FormatFixed(utils.Percent(float64(perf.Completed), float64(perf.Appointments)), 1)
	return perf
}

// rankStylists orders by revenue, highest first. Equal revenue keeps the
// stylist listing order.
func rankStylists(performance []models.StylistPerformance) {
	sort.SliceStable(performance, func(i, j int) bool {
		return performance[i].Revenue > performance[j].Revenue
	})
}

// stylistUtilization maps stylist name to booked hours as a share of monthly
// capacity, counting every in-range appointment.
func stylistUtilization(stylists []models.Stylist, appointments []models.Appointment) map[string]string {
	minutes := map[string]int{}
	for _, apt := range appointments {
		if apt.Stylist != nil {
			minutes[apt.Stylist.ID] += apt.Duration
		}
	}

	rates := make(map[string]string, len(stylists))
	for _, st := range stylists {
		hours := float64(minutes[st.ID]) / 60
		rates[st.FullName()] = utils.FormatFixed(hours/monthlyCapacityHours*100, 1)
	}
	return rates
}

func stylistSatisfaction(stylists []models.Stylist) models.PlaceholderRatings {
	ratings := make(map[string]float64, len(stylists))
	for _, st := range stylists {
		ratings[st.FullName()] = placeholderStylistRating
	}
	return models.PlaceholderRatings{Placeholder: true, Ratings: ratings}
}

// buildServiceMetrics seeds a zero bucket for each active service and fills it
// from completed appointments matched by service name.
func buildServiceMetrics(services []models.Service, completed []models.Appointment) models.ServiceMetrics {
	metrics := models.ServiceMetrics{
		All:        make(map[string]models.ServiceStat, len(services)),
		ByCategory: map[string]int{},
	}

	order := make([]string, 0, len(services))
	for _, svc := range services {
		if _, dup := metrics.All[svc.Name]; !dup {
			order = append(order, svc.Name)
		}
		metrics.All[svc.Name] = models.ServiceStat{
			ID:                  svc.ID,
			Name:                svc.Name,
			AverageRating:       placeholderServiceRating,
			RatingIsPlaceholder: true,
			Category:            svc.Category,
			Price:               svc.Price,
		}
	}

	for _, apt := range completed {
		if apt.Service == nil {
			metrics.ByCategory[unknownStatusLabel]++
			continue
		}
		if stat, ok := metrics.All[apt.Service.Name]; ok {
			stat.Bookings++
			stat.Revenue += apt.Price
			metrics.All[apt.Service.Name] = stat
		}
		category := apt.Service.Category
		if category == "" {
			category = unknownStatusLabel
		}
		metrics.ByCategory[category]++
	}

	if len(order) == 0 {
		return metrics
	}
	ranked := make([]models.ServiceStat, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, metrics.All[name])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})
	most, least := ranked[0], ranked[len(ranked)-1]
	metrics.MostPopular = &most
	metrics.LeastPopular = &least
	return metrics
}
