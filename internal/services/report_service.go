package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"salon_reports_backend/internal/models"
	"salon_reports_backend/internal/repositories"
	"salon_reports_backend/pkg/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// --- Custom Service Errors ---
var (
	ErrInvalidPeriod     = errors.New("invalid report period")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidReportType = errors.New("unknown report type")
)

// IsReportInputError reports whether err was caused by the request rather than
// by the store or the pipeline.
func IsReportInputError(err error) bool {
	return errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrInvalidReportType)
}

// GenerateReportRequest DTO
type GenerateReportRequest struct {
	ReportType string               `json:"reportType"`
	Filters    models.ReportFilters `json:"filters"`
}

// ReportService builds business reports from the salon records.
type ReportService interface {
	GenerateReport(ctx context.Context, req GenerateReportRequest) (*models.Report, error)
}

// ReportServiceOption customizes a ReportService.
type ReportServiceOption func(*reportService)

// WithClock replaces time.Now as the reference for period resolution.
func WithClock(now func() time.Time) ReportServiceOption {
	return func(s *reportService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone used for period boundaries and day/hour bucketing.
func WithLocation(loc *time.Location) ReportServiceOption {
	return func(s *reportService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

type reportService struct {
	repo   repositories.ReportRepository
	now    func() time.Time
	loc    *time.Location
	tracer trace.Tracer
}

// NewReportService creates a new instance of ReportService.
func NewReportService(repo repositories.ReportRepository, opts ...ReportServiceOption) ReportService {
	s := &reportService{
		repo:   repo,
		now:    time.Now,
		loc:    time.UTC,
		tracer: otel.Tracer("salon_reports_backend/internal/services"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func normalizeReportType(reportType string) (string, error) {
	reportType = strings.TrimSpace(reportType)
	if reportType == "" {
		return models.ReportTypeComprehensive, nil
	}
	for _, known := range models.ReportTypes {
		if reportType == known {
			return reportType, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidReportType, reportType)
}

// reportBuild carries the records shared between pipeline phases of one request.
type reportBuild struct {
	report       *models.Report
	dateRange    models.DateRange
	completed    []models.Appointment
	appointments []models.Appointment
	newCustomers []models.Customer
	inventory    models.InventoryStatus
}

// GenerateReport resolves the date range and fills every report section in
// order. Any failure aborts the whole report.
func (s *reportService) GenerateReport(ctx context.Context, req GenerateReportRequest) (*models.Report, error) {
	reportType, err := normalizeReportType(req.ReportType)
	if err != nil {
		return nil, err
	}
	filters := req.Filters
	if strings.TrimSpace(filters.Period) == "" {
		filters.Period = models.PeriodMonth
	}

	generatedAt := s.now()
	dateRange, err := ResolveDateRange(filters.Period, filters.StartDate, filters.EndDate, generatedAt, s.loc)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "report.generate", trace.WithAttributes(
		attribute.String("report.type", reportType),
		attribute.String("report.period", filters.Period),
	))
	defer span.End()

	b := &reportBuild{
		dateRange: dateRange,
		report: &models.Report{
			Metadata: models.ReportMetadata{
				ID:          uuid.NewString(),
				GeneratedAt: generatedAt,
				ReportType:  reportType,
				Period:      filters.Period,
				DateRange:   dateRange,
				Filters:     filters,
			},
		},
	}

	utils.LogInfo("Generating business report", map[string]interface{}{
		"report_id":   b.report.Metadata.ID,
		"report_type": reportType,
		"period":      filters.Period,
		"start":       dateRange.Start,
		"end":         dateRange.End,
	})

	phases := []struct {
		name string
		run  func(context.Context, *reportBuild) error
	}{
		{"revenue", s.revenuePhase},
		{"appointments", s.appointmentsPhase},
		{"customers", s.customersPhase},
		{"stylists", s.stylistsPhase},
		{"services", s.servicesPhase},
		{"trends", s.trendsPhase},
		{"forecast", s.forecastPhase},
		{"operational", s.operationalPhase},
	}
	for _, phase := range phases {
		if err := s.runPhase(ctx, phase.name, b, phase.run); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}
	b.report.Summary = buildSummary(b.report)

	utils.LogInfo("Business report generated", map[string]interface{}{
		"report_id":     b.report.Metadata.ID,
		"total_revenue": b.report.Summary.TotalRevenue,
		"appointments":  b.report.Summary.TotalAppointments,
	})
	return b.report, nil
}

func (s *reportService) runPhase(ctx context.Context, name string, b *reportBuild, run func(context.Context, *reportBuild) error) error {
	ctx, span := s.tracer.Start(ctx, "report."+name)
	defer span.End()

	utils.LogInfo("Report phase started", map[string]interface{}{"report_id": b.report.Metadata.ID, "phase": name})
	if err := run(ctx, b); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s metrics: %w", name, err)
	}
	return nil
}

func (s *reportService) revenuePhase(ctx context.Context, b *reportBuild) error {
	completed := models.AppointmentStatusCompleted
	filter := models.AppointmentFilter{
		Status: &completed,
		From:   &b.dateRange.Start,
		To:     &b.dateRange.End,
	}
	if stylist := strings.TrimSpace(b.report.Metadata.Filters.Stylist); stylist != "" {
		filter.StylistID = &stylist
	}
	if service := strings.TrimSpace(b.report.Metadata.Filters.Service); service != "" {
		filter.ServiceID = &service
	}

	appointments, err := s.repo.FindAppointments(ctx, filter)
	if err != nil {
		return err
	}
	b.completed = appointments
	b.report.Revenue = buildRevenueMetrics(appointments, s.loc)
	return nil
}

func (s *reportService) appointmentsPhase(ctx context.Context, b *reportBuild) error {
	appointments, err := s.repo.FindAppointments(ctx, models.AppointmentFilter{
		From: &b.dateRange.Start,
		To:   &b.dateRange.End,
	})
	if err != nil {
		return err
	}
	b.appointments = appointments
	b.report.Appointments = buildAppointmentMetrics(appointments, s.loc)
	return nil
}

func (s *reportService) customersPhase(ctx context.Context, b *reportBuild) error {
	all, err := s.repo.FindCustomers(ctx, models.CustomerFilter{})
	if err != nil {
		return err
	}
	created, err := s.repo.FindCustomers(ctx, models.CustomerFilter{
		CreatedFrom: &b.dateRange.Start,
		CreatedTo:   &b.dateRange.End,
	})
	if err != nil {
		return err
	}
	b.newCustomers = created
	b.report.Customers = buildCustomerMetrics(all, created, b.appointments)
	return nil
}

func (s *reportService) stylistsPhase(ctx context.Context, b *reportBuild) error {
	stylists, err := s.repo.FindActiveStylists(ctx)
	if err != nil {
		return err
	}

	performance, err := s.rankedStylistPerformance(ctx, stylists, b.dateRange)
	if err != nil {
		return err
	}
	b.report.Stylists = models.StylistMetrics{
		Total:                len(stylists),
		Performance:          performance,
		UtilizationRates:     stylistUtilization(stylists, b.appointments),
		CustomerSatisfaction: stylistSatisfaction(stylists),
	}
	return nil
}

// rankedStylistPerformance queries each stylist's appointments concurrently and
// ranks the results once every query has returned.
func (s *reportService) rankedStylistPerformance(ctx context.Context, stylists []models.Stylist, dateRange models.DateRange) ([]models.StylistPerformance, error) {
	performance := make([]models.StylistPerformance, len(stylists))
	g, gctx := errgroup.WithContext(ctx)
	for i := range stylists {
		i := i
		g.Go(func() error {
			stylistID := stylists[i].ID
			appointments, err := s.repo.FindAppointments(gctx, models.AppointmentFilter{
				StylistID: &stylistID,
				From:      &dateRange.Start,
				To:        &dateRange.End,
			})
			if err != nil {
				return fmt.Errorf("stylist %s: %w", stylistID, err)
			}
			utils.LogDebug("Stylist appointments loaded", map[string]interface{}{"stylist_id": stylistID, "count": len(appointments)})
			performance[i] = stylistPerformance(stylists[i], appointments)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	rankStylists(performance)
	return performance, nil
}

func (s *reportService) servicesPhase(ctx context.Context, b *reportBuild) error {
	services, err := s.repo.FindActiveServices(ctx)
	if err != nil {
		return err
	}
	b.report.Services = buildServiceMetrics(services, b.completed)
	return nil
}

func (s *reportService) trendsPhase(ctx context.Context, b *reportBuild) error {
	prevRange := previousPeriod(b.dateRange)
	appointments, err := s.repo.FindAppointments(ctx, models.AppointmentFilter{
		From: &prevRange.Start,
		To:   &prevRange.End,
	})
	if err != nil {
		return err
	}
	newCustomers, err := s.repo.FindCustomers(ctx, models.CustomerFilter{
		CreatedFrom: &prevRange.Start,
		CreatedTo:   &prevRange.End,
	})
	if err != nil {
		return err
	}

	current := periodSnapshot{
		Revenue:       b.report.Revenue.TotalRevenue,
		Appointments:  b.report.Appointments.Total,
		NewCustomers:  len(b.newCustomers),
		AverageTicket: b.report.Revenue.AverageTicket,
	}
	b.report.Trends = buildTrendMetrics(prevRange, current, snapshotOf(appointments, len(newCustomers)))
	return nil
}

// forecastPhase loads inventory ahead of the operational phase because the
// restocking recommendation depends on it.
func (s *reportService) forecastPhase(ctx context.Context, b *reportBuild) error {
	items, err := s.repo.FindInventoryItems(ctx)
	if err != nil {
		return err
	}
	b.inventory = analyzeInventory(items)

	b.report.Forecasting = models.ForecastMetrics{
		NextPeriod:            nextPeriod(b.report.Metadata.Period, b.dateRange, s.loc),
		ProjectedRevenue:      projectRevenue(b.report.Revenue.RevenueByDay),
		ProjectedAppointments: projectAppointments(b.report.Appointments.ByStatus),
		Recommendations:       recommendationsFor(b.report.Trends, b.report.Appointments.CancellationRate, b.inventory),
	}
	return nil
}

func (s *reportService) operationalPhase(ctx context.Context, b *reportBuild) error {
	commissions, err := s.repo.FindCommissions(ctx, models.CommissionFilter{
		PeriodFrom: b.dateRange.Start,
		PeriodTo:   b.dateRange.End,
	})
	if err != nil {
		return err
	}
	b.report.Operational = models.OperationalMetrics{
		InventoryStatus:      b.inventory,
		CommissionSummary:    summarizeCommissions(commissions),
		WorkloadDistribution: workloadDistribution(b.appointments),
		PeakHours:            peakHours(b.report.Appointments.ByHour),
		Efficiency:           operationalEfficiency(b.appointments),
	}
	return nil
}
