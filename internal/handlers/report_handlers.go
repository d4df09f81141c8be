package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"salon_reports_backend/internal/models"
	"salon_reports_backend/internal/services"
	"salon_reports_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const reportFailureMessage = "Business report generation failed"

// ReportHandler serves the comprehensive business report.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// respondReportFailure writes the report error envelope. Request errors are
// reported as 400, everything else as 500.
func respondReportFailure(c *gin.Context, status int, err error) {
	fields := map[string]interface{}{
		"request_id": c.GetString(utils.RequestIDKey),
		"status":     status,
	}
	if status >= http.StatusInternalServerError {
		utils.LogError(err, reportFailureMessage, fields)
	} else {
		utils.LogWarn(reportFailureMessage+": "+err.Error(), fields)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   reportFailureMessage,
		"details": err.Error(),
	})
}

// bindReportRequest reads the optional JSON body. An empty body selects the
// default comprehensive month-to-date report.
func bindReportRequest(c *gin.Context) (services.GenerateReportRequest, bool) {
	var req services.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondReportFailure(c, http.StatusBadRequest, err)
		return req, false
	}
	return req, true
}

func (h *ReportHandler) generate(c *gin.Context) (*models.Report, bool) {
	req, ok := bindReportRequest(c)
	if !ok {
		return nil, false
	}
	report, err := h.reportService.GenerateReport(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if services.IsReportInputError(err) {
			status = http.StatusBadRequest
		}
		respondReportFailure(c, status, err)
		return nil, false
	}
	return report, true
}

// GenerateComprehensiveReport handles POST /api/reports/comprehensive.
func (h *ReportHandler) GenerateComprehensiveReport(c *gin.Context) {
	start := time.Now()
	report, ok := h.generate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"report":        report,
		"executionTime": time.Since(start).Milliseconds(),
	})
}

// ExportComprehensiveReport handles POST /api/reports/comprehensive/export and
// returns the report as an xlsx attachment.
func (h *ReportHandler) ExportComprehensiveReport(c *gin.Context) {
	report, ok := h.generate(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := services.WriteReportWorkbook(report, &buf); err != nil {
		respondReportFailure(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+services.ReportFileName(report)+`"`)
	c.Data(http.StatusOK, services.ExcelContentType, buf.Bytes())
}

// ReportUsage handles GET /api/reports/comprehensive.
func (h *ReportHandler) ReportUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":          "Comprehensive Business Reports API",
		"description":      "POST with reportType and filters for detailed business analytics",
		"availableReports": models.ReportTypes,
		"availablePeriods": []string{
			models.PeriodToday, models.PeriodWeek, models.PeriodMonth,
			models.PeriodQuarter, models.PeriodYear, models.PeriodCustom,
		},
		"example": gin.H{
			"reportType": models.ReportTypeComprehensive,
			"filters": gin.H{
				"period":    models.PeriodMonth,
				"stylist":   "stylist-id",
				"startDate": "2025-01-01",
				"endDate":   "2025-01-31",
			},
		},
	})
}
