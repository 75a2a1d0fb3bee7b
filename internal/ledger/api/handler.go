package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samudra-erp/backend/internal/ledger/domain"
	"github.com/samudra-erp/backend/internal/ledger/service"
)

// LedgerHandler exposes the posting endpoints. Each endpoint binds one
// source-document payload, hands it to the matching posting rule and returns
// the committed batch. Posting the same document again replaces its batch.
type LedgerHandler struct {
	rules    *service.PostingService
	cashBank *service.CashBankService
	calc     *service.BalanceCalculator
}

func NewLedgerHandler(rules *service.PostingService, cashBank *service.CashBankService, calc *service.BalanceCalculator) *LedgerHandler {
	return &LedgerHandler{rules: rules, cashBank: cashBank, calc: calc}
}

func (h *LedgerHandler) RegisterRoutes(r *gin.RouterGroup) {
	ledger := r.Group("/ledger")
	{
		postings := ledger.Group("/postings")
		{
			postings.POST("/invoice", h.PostInvoice)
			postings.POST("/vendor-payment", h.PostVendorPayment)
			postings.POST("/customer-receipt", h.PostCustomerReceipt)
			postings.POST("/goods-receipt", h.PostGoodsReceipt)
			postings.POST("/quality-control", h.PostQualityControl)
			postings.POST("/material-issue", h.PostMaterialIssue)
			postings.POST("/production", h.PostProduction)
			postings.POST("/cash-bank-transaction", h.PostCashBankTransaction)
			postings.POST("/cash-bank-transfer", h.PostCashBankTransfer)
		}
		ledger.GET("/accounts/:code/balance", h.AccountBalance)
	}
}

func (h *LedgerHandler) PostInvoice(c *gin.Context) {
	var req invoiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	result, err := h.rules.PostInvoice(c.Request.Context(), req.toDomain())
	if err != nil {
		respondPostingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LedgerHandler) PostVendorPayment(c *gin.Context) {
	var req vendorPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	result, err := h.rules.PostVendorPayment(c.Request.Context(), req.toDomain())
	if err != nil {
		respondPostingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LedgerHandler) PostCustomerReceipt(c *gin.Context) {
	var req customerReceiptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	result, err := h.rules.PostCustomerReceipt(c.Request.Context(), req.toDomain())
	if err != nil {
		respondPostingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LedgerHandler) PostGoodsReceipt(c *gin.Context) {
	var req goodsReceiptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	result, err := h.rules.PostGoodsReceipt(c.Request.Context(), req.toDomain())
	if err != nil {
		respondPostingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LedgerHandler) PostQualityControl(c *gin.Context) {
	var req qualityControlReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	result, err := h.rules.PostQualityControl(c.Request.Context(), req.toDomain())
	if err != nil {
		respondPostingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LedgerHandler) PostMaterialIssue(c *gin.Context) {
	var req materialIssueReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	result, err := h.rules.PostMaterialIssue(c.Request.Context(), req.toDomain())
	if err != nil {
		respondPostingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LedgerHandler) PostProduction(c *gin.Context) {
	var req productionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	result, err := h.rules.PostProductionCompletion(c.Request.Context(), req.toDomain())
	if err != nil {
		respondPostingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LedgerHandler) PostCashBankTransaction(c *gin.Context) {
	var req cashBankTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	dims := domain.Dimensions{BranchID: req.BranchID, DepartmentID: req.DepartmentID, ProjectID: req.ProjectID}
	result, err := h.cashBank.PostTransaction(c.Request.Context(), req.toDomain(), dims)
	if err != nil {
		respondPostingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LedgerHandler) PostCashBankTransfer(c *gin.Context) {
	var req cashBankTransferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	result, err := h.rules.PostCashBankTransfer(c.Request.Context(), req.toDomain())
	if err != nil {
		respondPostingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AccountBalance returns one account's signed balance.
// GET /api/v1/ledger/accounts/:code/balance?as_of=2026-01-31&branch_id=2
func (h *LedgerHandler) AccountBalance(c *gin.Context) {
	code := c.Param("code")

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}
	branchID, ok := optionalInt64Query(c, "branch_id")
	if !ok {
		return
	}

	balance, err := h.calc.BalanceByCode(c.Request.Context(), code, asOf, branchID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"account_code": code,
		"as_of":        asOf.Format("2006-01-02"),
		"balance":      balance,
	})
}

// optionalInt64Query parses an optional int64 query param; on a bad value it
// writes the 400 itself and reports ok=false.
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

func respondPostingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrUnbalancedBatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
