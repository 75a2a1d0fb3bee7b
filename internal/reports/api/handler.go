package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samudra-erp/backend/internal/ledger/domain"
	"github.com/samudra-erp/backend/internal/reports/service"
)

// ReportHandler exposes the financial statements. All endpoints are
// read-only; periods and dimensions come in as query parameters.
type ReportHandler struct {
	balanceSheet *service.BalanceSheetService
	income       *service.IncomeStatementService
	cashFlow     *service.CashFlowService
}

func NewReportHandler(balanceSheet *service.BalanceSheetService, income *service.IncomeStatementService, cashFlow *service.CashFlowService) *ReportHandler {
	return &ReportHandler{balanceSheet: balanceSheet, income: income, cashFlow: cashFlow}
}

func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/balance-sheet", h.BalanceSheet)
		reports.GET("/balance-sheet/summary", h.BalanceSheetSummary)
		reports.GET("/balance-sheet/compare", h.BalanceSheetCompare)
		reports.GET("/balance-sheet/accounts/:id/entries", h.AccountEntries)
		reports.GET("/income-statement", h.IncomeStatement)
		reports.GET("/cash-flow", h.CashFlow)
	}
}

// BalanceSheet renders the statement of financial position.
// GET /api/v1/reports/balance-sheet?as_of=2026-01-31&branch_id=2
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	asOf, ok := dateQuery(c, "as_of", time.Now())
	if !ok {
		return
	}
	branchID, ok := optionalInt64Query(c, "branch_id")
	if !ok {
		return
	}

	report, err := h.balanceSheet.Generate(c.Request.Context(), asOf, branchID)
	if err != nil {
		respondReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) BalanceSheetSummary(c *gin.Context) {
	asOf, ok := dateQuery(c, "as_of", time.Now())
	if !ok {
		return
	}
	branchID, ok := optionalInt64Query(c, "branch_id")
	if !ok {
		return
	}

	summary, err := h.balanceSheet.Summary(c.Request.Context(), asOf, branchID)
	if err != nil {
		respondReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// BalanceSheetCompare puts two statement dates side by side.
// GET /api/v1/reports/balance-sheet/compare?current=2026-01-31&previous=2025-12-31
func (h *ReportHandler) BalanceSheetCompare(c *gin.Context) {
	current, ok := dateQuery(c, "current", time.Now())
	if !ok {
		return
	}
	previous, ok := dateQuery(c, "previous", time.Time{})
	if !ok {
		return
	}
	if previous.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "previous is required"})
		return
	}
	branchID, ok := optionalInt64Query(c, "branch_id")
	if !ok {
		return
	}

	comparison, err := h.balanceSheet.ComparePeriods(c.Request.Context(), current, previous, branchID)
	if err != nil {
		respondReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}

func (h *ReportHandler) AccountEntries(c *gin.Context) {
	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}
	asOf, ok := dateQuery(c, "as_of", time.Now())
	if !ok {
		return
	}
	branchID, ok := optionalInt64Query(c, "branch_id")
	if !ok {
		return
	}

	drill, err := h.balanceSheet.AccountJournalEntries(c.Request.Context(), accountID, asOf, branchID)
	if err != nil {
		respondReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, drill)
}

// IncomeStatement renders the period result.
// GET /api/v1/reports/income-statement?start=2026-01-01&end=2026-01-31
func (h *ReportHandler) IncomeStatement(c *gin.Context) {
	now := time.Now()
	start, ok := dateQuery(c, "start", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))
	if !ok {
		return
	}
	end, ok := dateQuery(c, "end", now)
	if !ok {
		return
	}
	branchID, ok := optionalInt64Query(c, "branch_id")
	if !ok {
		return
	}

	statement, err := h.income.Generate(c.Request.Context(), start, end, branchID)
	if err != nil {
		respondReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, statement)
}

// CashFlow renders the cash-flow statement.
// GET /api/v1/reports/cash-flow?start=...&end=...&method=indirect&branches=1,2
func (h *ReportHandler) CashFlow(c *gin.Context) {
	start, ok := dateQuery(c, "start", time.Time{})
	if !ok {
		return
	}
	end, ok := dateQuery(c, "end", time.Time{})
	if !ok {
		return
	}
	branches, ok := int64ListQuery(c, "branches")
	if !ok {
		return
	}

	statement, err := h.cashFlow.Generate(c.Request.Context(), start, end, service.CashFlowOptions{
		Method:   c.Query("method"),
		Branches: branches,
	})
	if err != nil {
		respondReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, statement)
}

func dateQuery(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return parsed, true
}

func optionalInt64Query(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return nil, false
	}
	return &v, true
}

func int64ListQuery(c *gin.Context, name string) ([]int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a comma-separated list of integers"})
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

func respondReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPeriod):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
