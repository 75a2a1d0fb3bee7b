package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source documents are owned by the surrounding business modules; the ledger
// core only needs a stable (type, id), a posting date, monetary amounts and
// the fields the dimension resolver reads. They are plain values here, not
// persisted models.

// Dimensions are the branch/department/project tags stamped onto every entry
// of a batch.
type Dimensions struct {
	BranchID     *int64
	DepartmentID *int64
	ProjectID    *int64
}

// DimensionSource is anything a resolver can derive dimensions from.
type DimensionSource interface {
	BranchRef() *int64
	DepartmentRef() *int64
	ProjectRef() *int64
}

// DimensionResolver derives posting dimensions from a source document.
// It is a collaborator port: the default implementation reads the
// document's own fields, richer deployments may consult org structure.
type DimensionResolver interface {
	Resolve(src DimensionSource) Dimensions
}

// DocumentDims is embedded by every source document to satisfy
// DimensionSource.
type DocumentDims struct {
	BranchID     *int64
	DepartmentID *int64
	ProjectID    *int64
}

func (d DocumentDims) BranchRef() *int64     { return d.BranchID }
func (d DocumentDims) DepartmentRef() *int64 { return d.DepartmentID }
func (d DocumentDims) ProjectRef() *int64    { return d.ProjectID }

// InvoiceKind distinguishes the two invoice flows the posting engine handles.
type InvoiceKind string

const (
	PurchaseInvoice InvoiceKind = "purchase"
	SalesInvoice    InvoiceKind = "sales"
)

// Invoice covers both purchase invoices (vendor bills) and sales invoices.
type Invoice struct {
	DocumentDims
	ID             int64
	Kind           InvoiceKind
	Number         string
	Date           time.Time
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	InventoryCode  string // optional override, purchase only
	TaxCode        string // optional override
	PayableCode    string // optional override, purchase only
	ReceivableCode string // optional override, sales only
	RevenueCode    string // optional override, sales only
}

// VendorPayment settles accounts payable from cash/bank and/or a supplier
// deposit.
type VendorPayment struct {
	DocumentDims
	ID            int64
	Number        string
	Date          time.Time
	Amount        decimal.Decimal
	DepositAmount decimal.Decimal // portion drawn from the supplier deposit
	BankCode      string          // optional override
	DepositCode   string          // optional override
}

// CustomerReceipt settles accounts receivable into cash/bank.
type CustomerReceipt struct {
	DocumentDims
	ID             int64
	Number         string
	Date           time.Time
	Amount         decimal.Decimal
	BankCode       string // optional override
	ReceivableCode string // optional override
}

// PurchaseReceiptItem is one received line, posted when goods arrive and
// are still pending quality control.
type PurchaseReceiptItem struct {
	DocumentDims
	ID          int64
	Number      string
	Date        time.Time
	QtyReceived decimal.Decimal
	UnitPrice   decimal.Decimal
}

// QualityControl records a QC disposition; passed quantity moves value from
// the temporary procurement position into inventory.
type QualityControl struct {
	DocumentDims
	ID            int64
	Number        string
	Date          time.Time
	PassedQty     decimal.Decimal
	UnitPrice     decimal.Decimal
	InventoryCode string // optional override
}

// MaterialIssueKind is issue (to production) or return (back to stores).
type MaterialIssueKind string

const (
	IssueToProduction    MaterialIssueKind = "issue"
	ReturnFromProduction MaterialIssueKind = "return"
)

// MaterialIssueItem is one issued component with its inventory account.
type MaterialIssueItem struct {
	ProductName   string
	Cost          decimal.Decimal
	InventoryCode string // optional override per item
}

// MaterialIssue moves raw material value between stores and work in process.
type MaterialIssue struct {
	DocumentDims
	ID     int64
	Number string
	Date   time.Time
	Kind   MaterialIssueKind
	Items  []MaterialIssueItem
}

// Production is a completed manufacturing order; its accumulated WIP cost
// moves into finished goods.
type Production struct {
	DocumentDims
	ID                int64
	Number            string
	Date              time.Time
	TotalCost         decimal.Decimal
	FinishedGoodsCode string // optional override
	WIPCode           string // optional override
}

// CashBankTransfer moves money between two cash/bank accounts, optionally
// with an admin fee charged to an expense account.
type CashBankTransfer struct {
	DocumentDims
	ID         int64
	Number     string
	Date       time.Time
	FromCode   string
	ToCode     string
	Amount     decimal.Decimal
	OtherCosts decimal.Decimal
	FeeCode    string // optional override
}
