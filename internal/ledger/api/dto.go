package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/samudra-erp/backend/internal/ledger/domain"
)

// Request DTOs. Amounts arrive as JSON strings or numbers; decimal.Decimal
// accepts both. Each request carries the source document id so reposts hit
// the same (source_type, source_id) slot.

type dimsReq struct {
	BranchID     *int64 `json:"branch_id"`
	DepartmentID *int64 `json:"department_id"`
	ProjectID    *int64 `json:"project_id"`
}

func (d dimsReq) toDomain() domain.DocumentDims {
	return domain.DocumentDims{BranchID: d.BranchID, DepartmentID: d.DepartmentID, ProjectID: d.ProjectID}
}

type invoiceReq struct {
	dimsReq
	ID             int64           `json:"id" binding:"required"`
	Kind           string          `json:"kind" binding:"required,oneof=purchase sales"`
	Number         string          `json:"number" binding:"required"`
	Date           time.Time       `json:"date" binding:"required"`
	Subtotal       decimal.Decimal `json:"subtotal" binding:"required"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total" binding:"required"`
	InventoryCode  string          `json:"inventory_code"`
	TaxCode        string          `json:"tax_code"`
	PayableCode    string          `json:"payable_code"`
	ReceivableCode string          `json:"receivable_code"`
	RevenueCode    string          `json:"revenue_code"`
}

func (r invoiceReq) toDomain() domain.Invoice {
	return domain.Invoice{
		DocumentDims:   r.dimsReq.toDomain(),
		ID:             r.ID,
		Kind:           domain.InvoiceKind(r.Kind),
		Number:         r.Number,
		Date:           r.Date,
		Subtotal:       r.Subtotal,
		Tax:            r.Tax,
		Total:          r.Total,
		InventoryCode:  r.InventoryCode,
		TaxCode:        r.TaxCode,
		PayableCode:    r.PayableCode,
		ReceivableCode: r.ReceivableCode,
		RevenueCode:    r.RevenueCode,
	}
}

type vendorPaymentReq struct {
	dimsReq
	ID            int64           `json:"id" binding:"required"`
	Number        string          `json:"number" binding:"required"`
	Date          time.Time       `json:"date" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	BankCode      string          `json:"bank_code"`
	DepositCode   string          `json:"deposit_code"`
}

func (r vendorPaymentReq) toDomain() domain.VendorPayment {
	return domain.VendorPayment{
		DocumentDims:  r.dimsReq.toDomain(),
		ID:            r.ID,
		Number:        r.Number,
		Date:          r.Date,
		Amount:        r.Amount,
		DepositAmount: r.DepositAmount,
		BankCode:      r.BankCode,
		DepositCode:   r.DepositCode,
	}
}

type customerReceiptReq struct {
	dimsReq
	ID             int64           `json:"id" binding:"required"`
	Number         string          `json:"number" binding:"required"`
	Date           time.Time       `json:"date" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	BankCode       string          `json:"bank_code"`
	ReceivableCode string          `json:"receivable_code"`
}

func (r customerReceiptReq) toDomain() domain.CustomerReceipt {
	return domain.CustomerReceipt{
		DocumentDims:   r.dimsReq.toDomain(),
		ID:             r.ID,
		Number:         r.Number,
		Date:           r.Date,
		Amount:         r.Amount,
		BankCode:       r.BankCode,
		ReceivableCode: r.ReceivableCode,
	}
}

type goodsReceiptReq struct {
	dimsReq
	ID          int64           `json:"id" binding:"required"`
	Number      string          `json:"number" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	QtyReceived decimal.Decimal `json:"qty_received" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

func (r goodsReceiptReq) toDomain() domain.PurchaseReceiptItem {
	return domain.PurchaseReceiptItem{
		DocumentDims: r.dimsReq.toDomain(),
		ID:           r.ID,
		Number:       r.Number,
		Date:         r.Date,
		QtyReceived:  r.QtyReceived,
		UnitPrice:    r.UnitPrice,
	}
}

type qualityControlReq struct {
	dimsReq
	ID            int64           `json:"id" binding:"required"`
	Number        string          `json:"number" binding:"required"`
	Date          time.Time       `json:"date" binding:"required"`
	PassedQty     decimal.Decimal `json:"passed_qty" binding:"required"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	InventoryCode string          `json:"inventory_code"`
}

func (r qualityControlReq) toDomain() domain.QualityControl {
	return domain.QualityControl{
		DocumentDims:  r.dimsReq.toDomain(),
		ID:            r.ID,
		Number:        r.Number,
		Date:          r.Date,
		PassedQty:     r.PassedQty,
		UnitPrice:     r.UnitPrice,
		InventoryCode: r.InventoryCode,
	}
}

type materialIssueItemReq struct {
	ProductName   string          `json:"product_name"`
	Cost          decimal.Decimal `json:"cost" binding:"required"`
	InventoryCode string          `json:"inventory_code"`
}

type materialIssueReq struct {
	dimsReq
	ID     int64                  `json:"id" binding:"required"`
	Number string                 `json:"number" binding:"required"`
	Date   time.Time              `json:"date" binding:"required"`
	Kind   string                 `json:"kind" binding:"required,oneof=issue return"`
	Items  []materialIssueItemReq `json:"items" binding:"required,min=1"`
}

func (r materialIssueReq) toDomain() domain.MaterialIssue {
	items := make([]domain.MaterialIssueItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = domain.MaterialIssueItem{
			ProductName:   it.ProductName,
			Cost:          it.Cost,
			InventoryCode: it.InventoryCode,
		}
	}
	return domain.MaterialIssue{
		DocumentDims: r.dimsReq.toDomain(),
		ID:           r.ID,
		Number:       r.Number,
		Date:         r.Date,
		Kind:         domain.MaterialIssueKind(r.Kind),
		Items:        items,
	}
}

type productionReq struct {
	dimsReq
	ID                int64           `json:"id" binding:"required"`
	Number            string          `json:"number" binding:"required"`
	Date              time.Time       `json:"date" binding:"required"`
	TotalCost         decimal.Decimal `json:"total_cost" binding:"required"`
	FinishedGoodsCode string          `json:"finished_goods_code"`
	WIPCode           string          `json:"wip_code"`
}

func (r productionReq) toDomain() domain.Production {
	return domain.Production{
		DocumentDims:      r.dimsReq.toDomain(),
		ID:                r.ID,
		Number:            r.Number,
		Date:              r.Date,
		TotalCost:         r.TotalCost,
		FinishedGoodsCode: r.FinishedGoodsCode,
		WIPCode:           r.WIPCode,
	}
}

type cashBankTransactionReq struct {
	dimsReq
	ID          int64           `json:"id"`
	Number      string          `json:"number" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=cash_in cash_out bank_in bank_out"`
	AccountCode string          `json:"account_code" binding:"required"`
	OffsetCode  string          `json:"offset_code" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

func (r cashBankTransactionReq) toDomain() *domain.CashBankTransaction {
	return &domain.CashBankTransaction{
		ID:           r.ID,
		Number:       r.Number,
		Date:         r.Date,
		Type:         domain.TransactionType(r.Type),
		AccountCode:  r.AccountCode,
		OffsetCode:   r.OffsetCode,
		Amount:       r.Amount,
		Description:  r.Description,
		BranchID:     r.BranchID,
		DepartmentID: r.DepartmentID,
		ProjectID:    r.ProjectID,
	}
}

type cashBankTransferReq struct {
	dimsReq
	ID         int64           `json:"id" binding:"required"`
	Number     string          `json:"number" binding:"required"`
	Date       time.Time       `json:"date" binding:"required"`
	FromCode   string          `json:"from_code" binding:"required"`
	ToCode     string          `json:"to_code" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	OtherCosts decimal.Decimal `json:"other_costs"`
	FeeCode    string          `json:"fee_code"`
}

func (r cashBankTransferReq) toDomain() domain.CashBankTransfer {
	return domain.CashBankTransfer{
		DocumentDims: r.dimsReq.toDomain(),
		ID:           r.ID,
		Number:       r.Number,
		Date:         r.Date,
		FromCode:     r.FromCode,
		ToCode:       r.ToCode,
		Amount:       r.Amount,
		OtherCosts:   r.OtherCosts,
		FeeCode:      r.FeeCode,
	}
}
