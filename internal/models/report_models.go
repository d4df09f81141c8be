package models

import "time"

// Report periods accepted in ReportFilters.Period.
const (
	PeriodToday   = "today"
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
	PeriodCustom  = "custom"
)

// Report types listed by the usage document. All of them produce the full report.
const (
	ReportTypeComprehensive = "comprehensive"
	ReportTypeRevenue       = "revenue"
	ReportTypeAppointments  = "appointments"
	ReportTypeCustomers     = "customers"
	ReportTypeStylists      = "stylists"
	ReportTypeServices      = "services"
)

// ReportTypes is the ordered list of accepted report types.
var ReportTypes = []string{
	ReportTypeComprehensive,
	ReportTypeRevenue,
	ReportTypeAppointments,
	ReportTypeCustomers,
	ReportTypeStylists,
	ReportTypeServices,
}

// ReportFilters holds the request-level filters of a business report.
type ReportFilters struct {
	Period    string `json:"period,omitempty" binding:"omitempty,oneof=today week month quarter year custom"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Stylist   string `json:"stylist,omitempty"`
	Service   string `json:"service,omitempty"`
	Location  string `json:"location,omitempty"`
}

// DateRange is an inclusive time window. Immutable for the life of one report.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns End - Start.
func (r DateRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Contains reports whether t lies within [Start, End].
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Report is the comprehensive business report returned to callers.
type Report struct {
	Metadata     ReportMetadata     `json:"metadata"`
	Summary      ReportSummary      `json:"summary"`
	Revenue      RevenueMetrics     `json:"revenue"`
	Appointments AppointmentMetrics `json:"appointments"`
	Customers    CustomerMetrics    `json:"customers"`
	Stylists     StylistMetrics     `json:"stylists"`
	Services     ServiceMetrics     `json:"services"`
	Trends       TrendMetrics       `json:"trends"`
	Forecasting  ForecastMetrics    `json:"forecasting"`
	Operational  OperationalMetrics `json:"operational"`
}

type ReportMetadata struct {
	ID          string        `json:"id"`
	GeneratedAt time.Time     `json:"generatedAt"`
	ReportType  string        `json:"reportType"`
	Period      string        `json:"period"`
	DateRange   DateRange     `json:"dateRange"`
	Filters     ReportFilters `json:"filters"`
}

// RevenueBucket accumulates revenue and appointment count for one label.
type RevenueBucket struct {
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

type RevenueMetrics struct {
	TotalRevenue          float64                  `json:"totalRevenue"`
	AverageTicket         float64                  `json:"averageTicket"`
	AppointmentsCompleted int                      `json:"appointmentsCompleted"`
	RevenueByDay          map[string]float64       `json:"revenueByDay"`
	RevenueByService      map[string]RevenueBucket `json:"revenueByService"`
	RevenueByStylist      map[string]RevenueBucket `json:"revenueByStylist"`
}

type AppointmentMetrics struct {
	Total            int            `json:"total"`
	ByStatus         map[string]int `json:"byStatus"`
	ByHour           map[int]int    `json:"byHour"`
	ByDayOfWeek      map[string]int `json:"byDayOfWeek"`
	AverageDuration  int            `json:"averageDuration"`
	CancellationRate string         `json:"cancellationRate"`
	ShowRate         string         `json:"showRate"`
}

type CustomerMetrics struct {
	Total                     int            `json:"total"`
	New                       int            `json:"new"`
	Returning                 int            `json:"returning"`
	AverageVisits             float64        `json:"averageVisits"`
	AverageLTV                float64        `json:"averageLTV"`
	TopCustomers              []float64      `json:"topCustomers"`
	VisitFrequency            map[string]int `json:"visitFrequency"`
	LoyaltyPointsDistribution map[string]int `json:"loyaltyPointsDistribution"`
}

type StylistPerformance struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Appointments   int     `json:"appointments"`
	Completed      int     `json:"completed"`
	Revenue        float64 `json:"revenue"`
	CompletionRate string  `json:"completionRate"`
}

// PlaceholderRatings carries rating figures that are not backed by a ratings
// data source. Placeholder is always true until one exists.
type PlaceholderRatings struct {
	Placeholder bool               `json:"placeholder"`
	Ratings     map[string]float64 `json:"ratings"`
}

type StylistMetrics struct {
	Total                int                  `json:"total"`
	Performance          []StylistPerformance `json:"performance"`
	UtilizationRates     map[string]string    `json:"utilizationRates"`
	CustomerSatisfaction PlaceholderRatings   `json:"customerSatisfaction"`
}

type ServiceStat struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Bookings            int     `json:"bookings"`
	Revenue             float64 `json:"revenue"`
	AverageRating       float64 `json:"averageRating"`
	RatingIsPlaceholder bool    `json:"ratingIsPlaceholder"`
	Category            string  `json:"category"`
	Price               float64 `json:"price"`
}

// ServiceMetrics reports service popularity. MostPopular and LeastPopular
// are nil (omitted) when there is no active service.
type ServiceMetrics struct {
	All          map[string]ServiceStat `json:"all"`
	MostPopular  *ServiceStat           `json:"mostPopular,omitempty"`
	LeastPopular *ServiceStat           `json:"leastPopular,omitempty"`
	ByCategory   map[string]int         `json:"byCategory"`
}

type TrendMetrics struct {
	PreviousPeriod      DateRange `json:"previousPeriod"`
	RevenueGrowth       float64   `json:"revenueGrowth"`
	AppointmentGrowth   float64   `json:"appointmentGrowth"`
	CustomerGrowth      float64   `json:"customerGrowth"`
	AverageTicketGrowth float64   `json:"averageTicketGrowth"`
}

type Recommendation struct {
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

type ForecastMetrics struct {
	NextPeriod            DateRange        `json:"nextPeriod"`
	ProjectedRevenue      float64          `json:"projectedRevenue"`
	ProjectedAppointments int              `json:"projectedAppointments"`
	Recommendations       []Recommendation `json:"recommendations"`
}

type LowStockItem struct {
	Name    string `json:"name"`
	Current int    `json:"current"`
	Min     int    `json:"min"`
}

type OverStockItem struct {
	Name    string `json:"name"`
	Current int    `json:"current"`
	Max     int    `json:"max"`
}

type InventoryStatus struct {
	Total      int             `json:"total"`
	LowStock   []LowStockItem  `json:"lowStock"`
	OutOfStock []string        `json:"outOfStock"`
	OverStock  []OverStockItem `json:"overStock"`
	TotalValue float64         `json:"totalValue"`
}

type CommissionSummary struct {
	Total         int     `json:"total"`
	TotalAmount   float64 `json:"totalAmount"`
	Paid          int     `json:"paid"`
	PaidAmount    float64 `json:"paidAmount"`
	Pending       int     `json:"pending"`
	PendingAmount float64 `json:"pendingAmount"`
}

type PeakHour struct {
	Hour      int    `json:"hour"`
	Count     int    `json:"count"`
	TimeRange string `json:"timeRange"`
}

type OperationalMetrics struct {
	InventoryStatus      InventoryStatus   `json:"inventoryStatus"`
	CommissionSummary    CommissionSummary `json:"commissionSummary"`
	WorkloadDistribution map[string]int    `json:"workloadDistribution"`
	PeakHours            []PeakHour        `json:"peakHours"`
	Efficiency           int               `json:"efficiency"`
}

type KeyMetrics struct {
	RevenueGrowth              float64 `json:"revenueGrowth"`
	CustomerRetention          string  `json:"customerRetention"`
	AverageRating              float64 `json:"averageRating"`
	AverageRatingIsPlaceholder bool    `json:"averageRatingIsPlaceholder"`
	OperationalEfficiency      int     `json:"operationalEfficiency"`
}

type ReportSummary struct {
	TotalRevenue         float64    `json:"totalRevenue"`
	TotalAppointments    int        `json:"totalAppointments"`
	TotalCustomers       int        `json:"totalCustomers"`
	AverageTicket        float64    `json:"averageTicket"`
	TopPerformingStylist string     `json:"topPerformingStylist"`
	MostPopularService   string     `json:"mostPopularService"`
	KeyMetrics           KeyMetrics `json:"keyMetrics"`
}
