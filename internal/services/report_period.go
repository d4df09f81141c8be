package services

import (
	"fmt"
	"strings"
	"time"

	"salon_reports_backend/internal/models"
)

const reportDateLayout = "2006-01-02"

// ResolveDateRange turns a report period into a concrete window relative to now,
// evaluated in loc. An empty period means month.
//
// startDate and endDate are only read for the custom period and accept either a
// plain date (YYYY-MM-DD) or an RFC 3339 timestamp. A plain endDate covers the
// whole of that day.
func ResolveDateRange(period, startDate, endDate string, now time.Time, loc *time.Location) (models.DateRange, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	y, m, d := now.Date()

	switch strings.TrimSpace(period) {
	case models.PeriodToday:
		start := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return models.DateRange{Start: start, End: time.Date(y, m, d, 23, 59, 59, 0, loc)}, nil
	case models.PeriodWeek:
		return models.DateRange{Start: now.AddDate(0, 0, -7), End: now}, nil
	case "", models.PeriodMonth:
		return models.DateRange{Start: time.Date(y, m, 1, 0, 0, 0, 0, loc), End: now}, nil
	case models.PeriodQuarter:
		quarterStart := time.Month((int(m)-1)/3*3 + 1)
		return models.DateRange{Start: time.Date(y, quarterStart, 1, 0, 0, 0, 0, loc), End: now}, nil
	case models.PeriodYear:
		return models.DateRange{Start: time.Date(y, time.January, 1, 0, 0, 0, 0, loc), End: now}, nil
	case models.PeriodCustom:
		return customDateRange(startDate, endDate, loc)
	default:
		return models.DateRange{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
}

func customDateRange(startDate, endDate string, loc *time.Location) (models.DateRange, error) {
	if strings.TrimSpace(startDate) == "" || strings.TrimSpace(endDate) == "" {
		return models.DateRange{}, fmt.Errorf("%w: custom period requires startDate and endDate", ErrInvalidDateRange)
	}
	start, err := parseReportDate(startDate, loc, false)
	if err != nil {
		return models.DateRange{}, err
	}
	end, err := parseReportDate(endDate, loc, true)
	if err != nil {
		return models.DateRange{}, err
	}
	if end.Before(start) {
		return models.DateRange{}, fmt.Errorf("%w: endDate %s is before startDate %s", ErrInvalidDateRange, endDate, startDate)
	}
	return models.DateRange{Start: start, End: end}, nil
}

func parseReportDate(value string, loc *time.Location, endOfDay bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(reportDateLayout, value, loc); err == nil {
		if endOfDay {
			return t.AddDate(0, 0, 1).Add(-time.Millisecond), nil
		}
		return t, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a valid date", ErrInvalidDateRange, value)
}

// previousPeriod shifts r back by its own length.
func previousPeriod(r models.DateRange) models.DateRange {
	d := r.Duration()
	return models.DateRange{Start: r.Start.Add(-d), End: r.End.Add(-d)}
}

// nextPeriod is the following calendar month for the month period and the
// window of equal length starting at r.End otherwise.
func nextPeriod(period string, r models.DateRange, loc *time.Location) models.DateRange {
	if period == models.PeriodMonth || period == "" {
		start := r.Start.In(loc)
		nextStart := time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, loc)
		return models.DateRange{Start: nextStart, End: nextStart.AddDate(0, 1, 0).Add(-time.Millisecond)}
	}
	return models.DateRange{Start: r.End, End: r.End.Add(r.Duration())}
}
