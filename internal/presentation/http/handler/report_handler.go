package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/daybook-api/internal/application/service"
	"github.com/sangkips/daybook-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles report and dashboard HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Report handles GET /api/reports?startDate=&endDate=
func (h *ReportHandler) Report(c *gin.Context) {
	r, err := h.reportService.ComputeReport(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, r)
}

// Summary handles GET /api/reports/summary?startDate=&endDate=
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// Export handles GET /api/reports/export?startDate=&endDate=
func (h *ReportHandler) Export(c *gin.Context) {
	start, end := c.Query("startDate"), c.Query("endDate")

	// Buffer so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.reportService.ExportReport(c.Request.Context(), start, end, &buf); err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s_%s.xlsx", start, end))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Dashboard handles GET /api/dashboard?date=
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dash, err := h.reportService.Dashboard(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dash)
}
