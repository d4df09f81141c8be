package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"salon_reports_backend/internal/models"
	"salon_reports_backend/internal/repositories"
	"salon_reports_backend/internal/repositories/memstore"
)

var fixtureNow = date(2025, time.March, 20, 12, 0)

func strPtr(s string) *string { return &s }

func appointment(id string, at time.Time, status models.AppointmentStatus, price float64, duration int, svc *models.ServiceRef, st *models.StylistRef, customer string) models.Appointment {
	apt := models.Appointment{ID: id, DateTime: at, Status: status, Price: price, Duration: duration, Service: svc, Stylist: st}
	if customer != "" {
		apt.CustomerID = strPtr(customer)
	}
	return apt
}

// newFixtureStore seeds a salon with activity in March 2025 and a quieter
// February used as the previous period of the month report.
func newFixtureStore() *memstore.Store {
	store := memstore.New()

	anna := &models.StylistRef{ID: "s1", FirstName: "Anna", LastName: "Smith"}
	bob := &models.StylistRef{ID: "s2", FirstName: "Bob", LastName: "Jones"}
	haircut := &models.ServiceRef{ID: "svc1", Name: "Haircut", Category: "hair"}
	coloring := &models.ServiceRef{ID: "svc2", Name: "Coloring", Category: "color"}

	store.AddStylists(
		models.Stylist{ID: "s1", FirstName: "Anna", LastName: "Smith", IsActive: true},
		models.Stylist{ID: "s2", FirstName: "Bob", LastName: "Jones", IsActive: true},
		models.Stylist{ID: "s3", FirstName: "Carl", LastName: "Gone", IsActive: false},
	)
	store.AddServices(
		models.Service{ID: "svc1", Name: "Haircut", Category: "hair", Price: 50, Duration: 60, IsActive: true},
		models.Service{ID: "svc2", Name: "Coloring", Category: "color", Price: 120, Duration: 120, IsActive: true},
		models.Service{ID: "svc3", Name: "Perm", Category: "hair", Price: 90, Duration: 90, IsActive: false},
	)
	store.AddAppointments(
		appointment("a1", date(2025, time.March, 3, 10, 0), models.AppointmentStatusCompleted, 50, 60, haircut, anna, "c1"),
		appointment("a2", date(2025, time.March, 3, 11, 0), models.AppointmentStatusCompleted, 120, 120, coloring, bob, "c2"),
		appointment("a3", date(2025, time.March, 5, 10, 0), models.AppointmentStatusCancelled, 50, 60, haircut, anna, "c1"),
		appointment("a4", date(2025, time.March, 10, 15, 0), models.AppointmentStatusCompleted, 50, 60, haircut, anna, "c1"),
		appointment("a5", date(2025, time.March, 12, 10, 0), models.AppointmentStatusPending, 120, 90, coloring, nil, "c3"),
		// after now: outside the month-to-date window
		appointment("a6", date(2025, time.March, 25, 10, 0), models.AppointmentStatusCompleted, 500, 60, haircut, anna, "c1"),
		// previous period
		appointment("p1", date(2025, time.February, 15, 10, 0), models.AppointmentStatusCompleted, 100, 60, haircut, anna, "c2"),
		appointment("p2", date(2025, time.February, 20, 10, 0), models.AppointmentStatusCompleted, 100, 60, haircut, bob, "c1"),
	)
	store.AddCustomers(
		models.Customer{ID: "c1", FirstName: "Dana", VisitCount: 5, TotalSpent: 300, LoyaltyPoints: 0, CreatedAt: date(2025, time.January, 10, 9, 0)},
		models.Customer{ID: "c2", FirstName: "Eli", VisitCount: 1, TotalSpent: 0, LoyaltyPoints: 60, CreatedAt: date(2025, time.March, 5, 9, 0)},
		models.Customer{ID: "c3", FirstName: "Fay", VisitCount: 2, TotalSpent: 150, LoyaltyPoints: 250, CreatedAt: date(2025, time.March, 15, 9, 0)},
	)
	store.AddInventoryItems(
		models.InventoryItem{ID: "i1", Name: "Shampoo", CurrentStock: 2, MinStock: 5, MaxStock: 50, UnitCost: 4},
		models.InventoryItem{ID: "i2", Name: "Gel", CurrentStock: 0, MinStock: 0, MaxStock: 20, UnitCost: 3},
		models.InventoryItem{ID: "i3", Name: "Spray", CurrentStock: 150, MinStock: 10, UnitCost: 1},
	)
	store.AddCommissions(
		models.Commission{ID: "k1", StylistID: strPtr("s1"), PeriodStart: date(2025, time.March, 1, 0, 0), PeriodEnd: date(2025, time.March, 15, 0, 0), FinalAmount: 500, PaymentStatus: "paid"},
		models.Commission{ID: "k2", StylistID: strPtr("s2"), PeriodStart: date(2025, time.March, 1, 0, 0), PeriodEnd: date(2025, time.March, 15, 0, 0), FinalAmount: 300, PaymentStatus: "pending"},
		models.Commission{ID: "k3", StylistID: strPtr("s1"), PeriodStart: date(2025, time.February, 1, 0, 0), PeriodEnd: date(2025, time.February, 28, 0, 0), FinalAmount: 900, PaymentStatus: "paid"},
	)
	return store
}

func newFixtureService(repo repositories.ReportRepository) ReportService {
	return NewReportService(repo, WithClock(func() time.Time { return fixtureNow }), WithLocation(time.UTC))
}

func generateMonthReport(t *testing.T, repo repositories.ReportRepository, filters models.ReportFilters) *models.Report {
	t.Helper()
	report, err := newFixtureService(repo).GenerateReport(context.Background(), GenerateReportRequest{Filters: filters})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	return report
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGenerateReport_Metadata(t *testing.T) {
	report := generateMonthReport(t, newFixtureStore(), models.ReportFilters{Location: "downtown"})

	meta := report.Metadata
	if meta.ID == "" {
		t.Fatalf("expected report id")
	}
	if meta.ReportType != models.ReportTypeComprehensive || meta.Period != models.PeriodMonth {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if !meta.DateRange.Start.Equal(date(2025, time.March, 1, 0, 0)) || !meta.DateRange.End.Equal(fixtureNow) {
		t.Fatalf("unexpected date range: %+v", meta.DateRange)
	}
	if meta.Filters.Location != "downtown" {
		t.Fatalf("location filter not echoed: %+v", meta.Filters)
	}
}

func TestGenerateReport_Revenue(t *testing.T) {
	rev := generateMonthReport(t, newFixtureStore(), models.ReportFilters{}).Revenue

	if rev.TotalRevenue != 220 || rev.AppointmentsCompleted != 3 {
		t.Fatalf("total = %v over %d, want 220 over 3", rev.TotalRevenue, rev.AppointmentsCompleted)
	}
	if !almostEqual(rev.AverageTicket, 220.0/3) {
		t.Fatalf("averageTicket = %v", rev.AverageTicket)
	}
	if rev.RevenueByDay["2025-03-03"] != 170 || rev.RevenueByDay["2025-03-10"] != 50 || len(rev.RevenueByDay) != 2 {
		t.Fatalf("revenueByDay = %v", rev.RevenueByDay)
	}
	if got := rev.RevenueByService["Haircut"]; got.Revenue != 100 || got.Count != 2 {
		t.Fatalf("Haircut bucket = %+v", got)
	}
	if got := rev.RevenueByStylist["Bob Jones"]; got.Revenue != 120 || got.Count != 1 {
		t.Fatalf("Bob Jones bucket = %+v", got)
	}

	sum := 0.0
	for _, b := range rev.RevenueByService {
		sum += b.Revenue
	}
	if sum != rev.TotalRevenue {
		t.Fatalf("service buckets sum to %v, total is %v", sum, rev.TotalRevenue)
	}
}

func TestGenerateReport_StylistFilterNarrowsRevenueOnly(t *testing.T) {
	report := generateMonthReport(t, newFixtureStore(), models.ReportFilters{Stylist: "s1"})

	if report.Revenue.TotalRevenue != 100 || report.Revenue.AppointmentsCompleted != 2 {
		t.Fatalf("filtered revenue = %v over %d", report.Revenue.TotalRevenue, report.Revenue.AppointmentsCompleted)
	}
	if report.Appointments.Total != 5 {
		t.Fatalf("appointment total should ignore the stylist filter, got %d", report.Appointments.Total)
	}
}

func TestGenerateReport_Appointments(t *testing.T) {
	apts := generateMonthReport(t, newFixtureStore(), models.ReportFilters{}).Appointments

	if apts.Total != 5 {
		t.Fatalf("total = %d", apts.Total)
	}
	if apts.ByStatus["completed"] != 3 || apts.ByStatus["cancelled"] != 1 || apts.ByStatus["pending"] != 1 {
		t.Fatalf("byStatus = %v", apts.ByStatus)
	}
	if len(apts.ByHour) != 24 || apts.ByHour[10] != 3 || apts.ByHour[11] != 1 || apts.ByHour[15] != 1 {
		t.Fatalf("byHour = %v", apts.ByHour)
	}
	if len(apts.ByDayOfWeek) != 7 || apts.ByDayOfWeek["Monday"] != 3 || apts.ByDayOfWeek["Wednesday"] != 2 {
		t.Fatalf("byDayOfWeek = %v", apts.ByDayOfWeek)
	}
	if apts.AverageDuration != 78 {
		t.Fatalf("averageDuration = %d", apts.AverageDuration)
	}
	if apts.CancellationRate != "20.0" || apts.ShowRate != "60.0" {
		t.Fatalf("rates = %s / %s", apts.CancellationRate, apts.ShowRate)
	}
}

func TestGenerateReport_Customers(t *testing.T) {
	cust := generateMonthReport(t, newFixtureStore(), models.ReportFilters{}).Customers

	if cust.Total != 3 || cust.New != 2 || cust.Returning != 2 {
		t.Fatalf("counts = %+v", cust)
	}
	if !almostEqual(cust.AverageVisits, 8.0/3) {
		t.Fatalf("averageVisits = %v", cust.AverageVisits)
	}
	if cust.AverageLTV != 225 {
		t.Fatalf("averageLTV = %v", cust.AverageLTV)
	}
	if len(cust.TopCustomers) != 2 || cust.TopCustomers[0] != 300 || cust.TopCustomers[1] != 150 {
		t.Fatalf("topCustomers = %v", cust.TopCustomers)
	}
	wantFreq := map[string]int{"1": 2, "2-5": 1, "6-10": 0, "10+": 0}
	for k, v := range wantFreq {
		if cust.VisitFrequency[k] != v {
			t.Fatalf("visitFrequency = %v", cust.VisitFrequency)
		}
	}
	wantLoyalty := map[string]int{"0": 1, "1-50": 0, "51-100": 1, "101-200": 0, "200+": 1}
	for k, v := range wantLoyalty {
		if cust.LoyaltyPointsDistribution[k] != v {
			t.Fatalf("loyaltyPointsDistribution = %v", cust.LoyaltyPointsDistribution)
		}
	}
}

func TestGenerateReport_Stylists(t *testing.T) {
	st := generateMonthReport(t, newFixtureStore(), models.ReportFilters{}).Stylists

	if st.Total != 2 || len(st.Performance) != 2 {
		t.Fatalf("stylists = %+v", st)
	}
	top, second := st.Performance[0], st.Performance[1]
	if top.Name != "Bob Jones" || top.Revenue != 120 || top.CompletionRate != "100.0" {
		t.Fatalf("top stylist = %+v", top)
	}
	if second.Name != "Anna Smith" || second.Revenue != 100 || second.Appointments != 3 || second.Completed != 2 || second.CompletionRate != "66.7" {
		t.Fatalf("second stylist = %+v", second)
	}
	if st.UtilizationRates["Anna Smith"] != "1.9" {
		t.Fatalf("utilization = %v", st.UtilizationRates)
	}
	if !st.CustomerSatisfaction.Placeholder || st.CustomerSatisfaction.Ratings["Bob Jones"] != placeholderStylistRating {
		t.Fatalf("satisfaction = %+v", st.CustomerSatisfaction)
	}
}

func TestGenerateReport_Services(t *testing.T) {
	svc := generateMonthReport(t, newFixtureStore(), models.ReportFilters{}).Services

	if len(svc.All) != 2 {
		t.Fatalf("expected only active services, got %v", svc.All)
	}
	if _, ok := svc.All["Perm"]; ok {
		t.Fatalf("inactive service listed")
	}
	if svc.MostPopular == nil || svc.MostPopular.Name != "Coloring" {
		t.Fatalf("mostPopular = %+v", svc.MostPopular)
	}
	if svc.LeastPopular == nil || svc.LeastPopular.Name != "Haircut" || svc.LeastPopular.Bookings != 2 {
		t.Fatalf("leastPopular = %+v", svc.LeastPopular)
	}
	if !svc.All["Haircut"].RatingIsPlaceholder {
		t.Fatalf("service rating should be flagged as placeholder")
	}
	if svc.ByCategory["hair"] != 2 || svc.ByCategory["color"] != 1 {
		t.Fatalf("byCategory = %v", svc.ByCategory)
	}
}

func TestGenerateReport_TrendsAndForecast(t *testing.T) {
	report := generateMonthReport(t, newFixtureStore(), models.ReportFilters{})

	trends := report.Trends
	if trends.RevenueGrowth != 10 || trends.AppointmentGrowth != 150 || trends.CustomerGrowth != 100 || trends.AverageTicketGrowth != -26.7 {
		t.Fatalf("trends = %+v", trends)
	}
	if trends.PreviousPeriod.Duration() != report.Metadata.DateRange.Duration() {
		t.Fatalf("previous period length mismatch: %+v", trends.PreviousPeriod)
	}

	fc := report.Forecasting
	if !fc.NextPeriod.Start.Equal(date(2025, time.April, 1, 0, 0)) {
		t.Fatalf("nextPeriod = %+v", fc.NextPeriod)
	}
	if fc.ProjectedRevenue != -310 {
		t.Fatalf("projectedRevenue = %v", fc.ProjectedRevenue)
	}
	if fc.ProjectedAppointments != 6 {
		t.Fatalf("projectedAppointments = %d", fc.ProjectedAppointments)
	}
	if len(fc.Recommendations) != 2 || fc.Recommendations[0].Category != "operations" || fc.Recommendations[1].Category != "inventory" {
		t.Fatalf("recommendations = %+v", fc.Recommendations)
	}
}

func TestGenerateReport_OperationalAndSummary(t *testing.T) {
	report := generateMonthReport(t, newFixtureStore(), models.ReportFilters{})
	ops := report.Operational

	inv := ops.InventoryStatus
	if inv.Total != 3 || len(inv.LowStock) != 2 || len(inv.OutOfStock) != 1 || len(inv.OverStock) != 1 {
		t.Fatalf("inventory = %+v", inv)
	}
	if inv.OverStock[0].Name != "Spray" || inv.OverStock[0].Max != defaultMaxStock {
		t.Fatalf("overStock = %+v", inv.OverStock)
	}
	if inv.TotalValue != 158 {
		t.Fatalf("inventory value = %v", inv.TotalValue)
	}

	cs := ops.CommissionSummary
	if cs.Total != 2 || cs.TotalAmount != 800 || cs.Paid != 1 || cs.PaidAmount != 500 || cs.Pending != 1 || cs.PendingAmount != 300 {
		t.Fatalf("commissions = %+v", cs)
	}
	if ops.WorkloadDistribution["Anna Smith"] != 3 || ops.WorkloadDistribution["Unassigned"] != 1 {
		t.Fatalf("workload = %v", ops.WorkloadDistribution)
	}
	if len(ops.PeakHours) != 5 || ops.PeakHours[0].Hour != 10 || ops.PeakHours[0].TimeRange != "10:00 - 11:00" {
		t.Fatalf("peakHours = %+v", ops.PeakHours)
	}
	if ops.Efficiency != 56 {
		t.Fatalf("efficiency = %d", ops.Efficiency)
	}

	sum := report.Summary
	if sum.TotalRevenue != 220 || sum.TotalAppointments != 5 || sum.TotalCustomers != 3 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.TopPerformingStylist != "Bob Jones" || sum.MostPopularService != "Coloring" {
		t.Fatalf("summary leaders = %+v", sum)
	}
	km := sum.KeyMetrics
	if km.RevenueGrowth != 10 || km.CustomerRetention != "66.7%" || km.OperationalEfficiency != 56 {
		t.Fatalf("keyMetrics = %+v", km)
	}
	if km.AverageRating != placeholderAverageRating || !km.AverageRatingIsPlaceholder {
		t.Fatalf("average rating should be the flagged placeholder: %+v", km)
	}
}

func TestGenerateReport_EmptyStore(t *testing.T) {
	report := generateMonthReport(t, memstore.New(), models.ReportFilters{})

	if report.Revenue.AverageTicket != 0 || report.Appointments.AverageDuration != 0 {
		t.Fatalf("expected zero averages: %+v / %+v", report.Revenue, report.Appointments)
	}
	if report.Appointments.CancellationRate != "0.0" || report.Appointments.ShowRate != "0.0" {
		t.Fatalf("rates = %s / %s", report.Appointments.CancellationRate, report.Appointments.ShowRate)
	}
	if len(report.Appointments.ByHour) != 24 || len(report.Appointments.ByDayOfWeek) != 7 {
		t.Fatalf("buckets must be complete even without data")
	}
	if report.Services.MostPopular != nil || report.Services.LeastPopular != nil {
		t.Fatalf("expected no popular services")
	}
	if report.Summary.TopPerformingStylist != "N/A" || report.Summary.MostPopularService != "N/A" {
		t.Fatalf("summary = %+v", report.Summary)
	}
	if report.Summary.KeyMetrics.CustomerRetention != "0.0%" {
		t.Fatalf("retention = %s", report.Summary.KeyMetrics.CustomerRetention)
	}
	if report.Trends.RevenueGrowth != 0 || report.Operational.Efficiency != 0 {
		t.Fatalf("expected zero growth and efficiency")
	}

	raw, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, bad := range []string{"null", "NaN", "Inf"} {
		if strings.Contains(string(raw), bad) {
			t.Fatalf("report JSON contains %s: %s", bad, raw)
		}
	}
}

func TestGenerateReport_InputErrors(t *testing.T) {
	svc := newFixtureService(memstore.New())

	_, err := svc.GenerateReport(context.Background(), GenerateReportRequest{ReportType: "weekly-digest"})
	if !errors.Is(err, ErrInvalidReportType) {
		t.Fatalf("err = %v, want ErrInvalidReportType", err)
	}

	_, err = svc.GenerateReport(context.Background(), GenerateReportRequest{Filters: models.ReportFilters{Period: "decade"}})
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("err = %v, want ErrInvalidPeriod", err)
	}

	for _, rt := range models.ReportTypes {
		if _, err := svc.GenerateReport(context.Background(), GenerateReportRequest{ReportType: rt}); err != nil {
			t.Fatalf("report type %s: %v", rt, err)
		}
	}
}

// failingRepo fails the first finder whose name matches failOn.
type failingRepo struct {
	repositories.ReportRepository
	failOn string
}

var errStoreDown = errors.New("connection refused")

func (r failingRepo) fail(op string) error {
	if r.failOn == op {
		return errors.Join(repositories.ErrDatabaseError, errStoreDown)
	}
	return nil
}

func (r failingRepo) FindAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	op := "appointments"
	if filter.StylistID != nil && filter.Status == nil {
		op = "stylist-appointments"
	}
	if err := r.fail(op); err != nil {
		return nil, err
	}
	return r.ReportRepository.FindAppointments(ctx, filter)
}

func (r failingRepo) FindActiveServices(ctx context.Context) ([]models.Service, error) {
	if err := r.fail("services"); err != nil {
		return nil, err
	}
	return r.ReportRepository.FindActiveServices(ctx)
}

func (r failingRepo) FindCommissions(ctx context.Context, filter models.CommissionFilter) ([]models.Commission, error) {
	if err := r.fail("commissions"); err != nil {
		return nil, err
	}
	return r.ReportRepository.FindCommissions(ctx, filter)
}

func TestGenerateReport_StoreFailureAbortsReport(t *testing.T) {
	for _, op := range []string{"appointments", "stylist-appointments", "services", "commissions"} {
		t.Run(op, func(t *testing.T) {
			svc := newFixtureService(failingRepo{ReportRepository: newFixtureStore(), failOn: op})
			report, err := svc.GenerateReport(context.Background(), GenerateReportRequest{})
			if err == nil {
				t.Fatalf("expected error")
			}
			if report != nil {
				t.Fatalf("partial report returned")
			}
			if !errors.Is(err, repositories.ErrDatabaseError) || IsReportInputError(err) {
				t.Fatalf("unexpected error classification: %v", err)
			}
		})
	}
}

func TestGenerateReport_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newFixtureService(newFixtureStore()).GenerateReport(ctx, GenerateReportRequest{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
