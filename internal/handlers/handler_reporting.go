package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
	"github.com/hesabix/hesabix_backend/internal/utils"
)

// reportingHandler serves the read-only report endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(reportingService portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// registerReportingRoutes sets up the report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.dashboard)
		reports.GET("/sales-by-day", h.salesByDay)
		reports.GET("/top-products", h.topProducts)
		reports.GET("/stock-valuation", h.stockValuation)
		reports.GET("/account-balances", h.accountBalances)
	}
}

// dashboard godoc
// @Summary Dashboard summary for a period
// @Description Aggregates sales, purchases, expenses and salaries over the window plus the total of all account balances
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.DashboardSummary
// @Failure 400 {object} map[string]string "Invalid date window"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	from, to, ok := h.bindRange(c)
	if !ok {
		return
	}
	summary, err := h.reportingService.DashboardSummary(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// salesByDay godoc
// @Summary Per-day sale totals
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} domain.SalesPoint
// @Failure 400 {object} map[string]string "Invalid date window"
// @Security BearerAuth
// @Router /reports/sales-by-day [get]
func (h *reportingHandler) salesByDay(c *gin.Context) {
	from, to, ok := h.bindRange(c)
	if !ok {
		return
	}
	points, err := h.reportingService.SalesByDay(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// topProducts godoc
// @Summary Products ranked by revenue
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Param limit query int false "Result cap" default(10)
// @Success 200 {array} domain.TopProduct
// @Failure 400 {object} map[string]string "Invalid date window"
// @Security BearerAuth
// @Router /reports/top-products [get]
func (h *reportingHandler) topProducts(c *gin.Context) {
	var params dto.TopProductsParams
	if !bindQuery(c, &params) {
		return
	}
	from, to, ok := h.parseRange(c, params.From, params.To)
	if !ok {
		return
	}
	products, err := h.reportingService.TopProducts(c.Request.Context(), from, to, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// stockValuation godoc
// @Summary Remaining inventory valued at cost
// @Tags reports
// @Produce json
// @Success 200 {array} domain.StockRow
// @Security BearerAuth
// @Router /reports/stock-valuation [get]
func (h *reportingHandler) stockValuation(c *gin.Context) {
	rows, err := h.reportingService.StockValuation(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// accountBalances godoc
// @Summary Per-account currency balances
// @Description Lists every active account with its per-currency balances and base-currency current balance
// @Tags reports
// @Produce json
// @Success 200 {array} domain.AccountBalanceRow
// @Security BearerAuth
// @Router /reports/account-balances [get]
func (h *reportingHandler) accountBalances(c *gin.Context) {
	rows, err := h.reportingService.AccountBalances(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// bindRange binds and parses the shared from/to window parameters.
func (h *reportingHandler) bindRange(c *gin.Context) (time.Time, time.Time, bool) {
	var params dto.ReportRangeParams
	if !bindQuery(c, &params) {
		return time.Time{}, time.Time{}, false
	}
	return h.parseRange(c, params.From, params.To)
}

func (h *reportingHandler) parseRange(c *gin.Context, fromStr, toStr string) (time.Time, time.Time, bool) {
	from, err := utils.ParseDateOnly(fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return time.Time{}, time.Time{}, false
	}
	to, err := utils.ParseDateOnly(toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
