package services

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"salon_reports_backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExcelContentType is the MIME type of workbooks written by WriteReportWorkbook.
const ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook sheets in tab order.
const (
	SheetSummary      = "Summary"
	SheetRevenue      = "Revenue"
	SheetAppointments = "Appointments"
	SheetStylists     = "Stylists"
	SheetServices     = "Services"
	SheetOperational  = "Operational"
)

// ReportFileName is the attachment name used for an exported report.
func ReportFileName(report *models.Report) string {
	return fmt.Sprintf("business-report-%s-%s.xlsx",
		report.Metadata.Period, report.Metadata.GeneratedAt.Format(reportDateLayout))
}

// sheetWriter appends rows to one sheet and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) append(values ...interface{}) {
	if w.err != nil {
		return
	}
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(w.sheet, cell, &values)
}

func (w *sheetWriter) blank() {
	w.row++
}

// WriteReportWorkbook renders report as an xlsx workbook with one sheet per
// report area and writes it to out.
func WriteReportWorkbook(report *models.Report, out io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("renaming default sheet: %w", err)
	}
	for _, name := range []string{SheetRevenue, SheetAppointments, SheetStylists, SheetServices, SheetOperational} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	writers := []func(*excelize.File, *models.Report) error{
		writeSummarySheet,
		writeRevenueSheet,
		writeAppointmentsSheet,
		writeStylistsSheet,
		writeServicesSheet,
		writeOperationalSheet,
	}
	for _, write := range writers {
		if err := write(f, report); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeSummarySheet(f *excelize.File, report *models.Report) error {
	w := &sheetWriter{f: f, sheet: SheetSummary}
	meta := report.Metadata
	summary := report.Summary

	w.append("Report ID", meta.ID)
	w.append("Report Type", meta.ReportType)
	w.append("Period", meta.Period)
	w.append("Start", meta.DateRange.Start.Format("2006-01-02 15:04:05"))
	w.append("End", meta.DateRange.End.Format("2006-01-02 15:04:05"))
	w.append("Generated At", meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	w.blank()
	w.append("Total Revenue", summary.TotalRevenue)
	w.append("Total Appointments", summary.TotalAppointments)
	w.append("Total Customers", summary.TotalCustomers)
	w.append("Average Ticket", summary.AverageTicket)
	w.append("Top Performing Stylist", summary.TopPerformingStylist)
	w.append("Most Popular Service", summary.MostPopularService)
	w.append("Revenue Growth %", summary.KeyMetrics.RevenueGrowth)
	w.append("Customer Retention", summary.KeyMetrics.CustomerRetention)
	w.append("Average Rating (placeholder)", summary.KeyMetrics.AverageRating)
	w.append("Operational Efficiency", summary.KeyMetrics.OperationalEfficiency)
	w.blank()
	w.append("Projected Revenue", report.Forecasting.ProjectedRevenue)
	w.append("Projected Appointments", report.Forecasting.ProjectedAppointments)
	for _, rec := range report.Forecasting.Recommendations {
		w.append("Recommendation", rec.Priority, rec.Title, rec.Action)
	}
	return w.err
}

func writeRevenueSheet(f *excelize.File, report *models.Report) error {
	w := &sheetWriter{f: f, sheet: SheetRevenue}
	rev := report.Revenue

	w.append("Day", "Revenue")
	for _, day := range sortedKeys(rev.RevenueByDay) {
		w.append(day, rev.RevenueByDay[day])
	}
	w.blank()
	w.append("Service", "Revenue", "Count")
	for _, name := range sortedKeys(rev.RevenueByService) {
		w.append(name, rev.RevenueByService[name].Revenue, rev.RevenueByService[name].Count)
	}
	w.blank()
	w.append("Stylist", "Revenue", "Count")
	for _, name := range sortedKeys(rev.RevenueByStylist) {
		w.append(name, rev.RevenueByStylist[name].Revenue, rev.RevenueByStylist[name].Count)
	}
	return w.err
}

func writeAppointmentsSheet(f *excelize.File, report *models.Report) error {
	w := &sheetWriter{f: f, sheet: SheetAppointments}
	apts := report.Appointments

	w.append("Total", apts.Total)
	w.append("Average Duration (min)", apts.AverageDuration)
	w.append("Cancellation Rate %", apts.CancellationRate)
	w.append("Show Rate %", apts.ShowRate)
	w.blank()
	w.append("Status", "Count")
	for _, status := range sortedKeys(apts.ByStatus) {
		w.append(status, apts.ByStatus[status])
	}
	w.blank()
	w.append("Hour", "Count")
	for h := 0; h < 24; h++ {
		w.append(strconv.Itoa(h)+":00", apts.ByHour[h])
	}
	return w.err
}

func writeStylistsSheet(f *excelize.File, report *models.Report) error {
	w := &sheetWriter{f: f, sheet: SheetStylists}

	w.append("Stylist", "Appointments", "Completed", "Revenue", "Completion Rate %", "Utilization %")
	for _, perf := range report.Stylists.Performance {
		w.append(perf.Name, perf.Appointments, perf.Completed, perf.Revenue, perf.CompletionRate,
			report.Stylists.UtilizationRates[perf.Name])
	}
	return w.err
}

func writeServicesSheet(f *excelize.File, report *models.Report) error {
	w := &sheetWriter{f: f, sheet: SheetServices}
	all := report.Services.All

	w.append("Service", "Category", "Price", "Bookings", "Revenue")
	for _, name := range sortedKeys(all) {
		stat := all[name]
		w.append(stat.Name, stat.Category, stat.Price, stat.Bookings, stat.Revenue)
	}
	w.blank()
	w.append("Category", "Completed Appointments")
	for _, category := range sortedKeys(report.Services.ByCategory) {
		w.append(category, report.Services.ByCategory[category])
	}
	return w.err
}

func writeOperationalSheet(f *excelize.File, report *models.Report) error {
	w := &sheetWriter{f: f, sheet: SheetOperational}
	ops := report.Operational

	w.append("Inventory Items", ops.InventoryStatus.Total)
	w.append("Inventory Value", ops.InventoryStatus.TotalValue)
	w.append("Efficiency", ops.Efficiency)
	w.blank()
	w.append("Low Stock Item", "Current", "Min")
	for _, item := range ops.InventoryStatus.LowStock {
		w.append(item.Name, item.Current, item.Min)
	}
	w.blank()
	w.append("Commissions", "Count", "Amount")
	w.append("Paid", ops.CommissionSummary.Paid, ops.CommissionSummary.PaidAmount)
	w.append("Pending", ops.CommissionSummary.Pending, ops.CommissionSummary.PendingAmount)
	w.append("Total", ops.CommissionSummary.Total, ops.CommissionSummary.TotalAmount)
	w.blank()
	w.append("Peak Hour", "Appointments")
	for _, peak := range ops.PeakHours {
		w.append(peak.TimeRange, peak.Count)
	}
	w.blank()
	w.append("Workload", "Appointments")
	for _, name := range sortedKeys(ops.WorkloadDistribution) {
		w.append(name, ops.WorkloadDistribution[name])
	}
	return w.err
}
