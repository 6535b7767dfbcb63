package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/personal_ledger/internal/core/ports/services"
	"github.com/SscSPs/personal_ledger/internal/dto"
	"github.com/SscSPs/personal_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to the aggregate reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	converter        portssvc.CurrencyConverterSvc
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService, conv portssvc.CurrencyConverterSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		converter:        conv,
	}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, conv portssvc.CurrencyConverterSvc) {
	h := newReportingHandler(reportingService, conv)

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.getDashboard)
		reports.GET("/categories", h.getCategoryBreakdown)
		reports.GET("/monthly", h.getMonthlySeries)
		reports.GET("/expense-shares", h.getExpenseShares)
		reports.GET("/snapshot", h.getSnapshot)
	}
}

// getDashboard godoc
// @Summary Dashboard totals
// @Description Total income, total expenses and net, in the base currency
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Failure 500 {object} map[string]string "Failed to compute dashboard"
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	totals, err := h.reportingService.Dashboard(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(totals))
}

// getCategoryBreakdown godoc
// @Summary Category breakdown
// @Description Income, expenses and net per category, sorted by category name
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.CategoryBreakdownResponse
// @Failure 500 {object} map[string]string "Failed to compute category breakdown"
// @Router /reports/categories [get]
func (h *reportingHandler) getCategoryBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.reportingService.Categories(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute category breakdown")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(rows, h.converter.BaseCurrency()))
}

// getMonthlySeries godoc
// @Summary Monthly trend
// @Description Income and expenses per calendar month for the trailing window, oldest month first
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.MonthlySeriesResponse
// @Failure 500 {object} map[string]string "Failed to compute monthly series"
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthlySeries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	points, err := h.reportingService.Monthly(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute monthly series")
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlySeriesResponse(points, h.converter.BaseCurrency()))
}

// getExpenseShares godoc
// @Summary Expense distribution
// @Description Each expense category's share of total expenses, largest first
// @Tags reports
// @Produce  json
// @Success 200 {array} dto.ExpenseShareResponse
// @Failure 500 {object} map[string]string "Failed to compute expense shares"
// @Router /reports/expense-shares [get]
func (h *reportingHandler) getExpenseShares(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	shares, err := h.reportingService.ExpenseShares(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute expense shares")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseShareResponses(shares))
}

// getSnapshot godoc
// @Summary Full report snapshot
// @Description Re-reads the ledger once and returns every view computed from the same data
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.SnapshotResponse
// @Failure 500 {object} map[string]string "Failed to compute report snapshot"
// @Router /reports/snapshot [get]
func (h *reportingHandler) getSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.reportingService.RefreshAll(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute report snapshot")
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotResponse(snapshot))
}
