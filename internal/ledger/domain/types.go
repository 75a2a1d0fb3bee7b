package domain

// AccountType classifies an account for sign and report placement.
type AccountType string

const (
	Asset       AccountType = "Asset"
	Liability   AccountType = "Liability"
	Equity      AccountType = "Equity"
	Revenue     AccountType = "Revenue"
	Expense     AccountType = "Expense"
	ContraAsset AccountType = "Contra Asset"
)

// BalanceSign returns +1 for debit-normal accounts (Asset, Expense) and -1
// for credit-normal accounts. Contra assets carry a credit-normal sign even
// though they are displayed under assets.
func (t AccountType) BalanceSign() int {
	switch t {
	case Asset, Expense:
		return 1
	default:
		return -1
	}
}

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense, ContraAsset:
		return true
	}
	return false
}

// SourceType identifies the kind of business document a batch was posted
// from. Together with a source ID it forms the tagged reference every
// journal entry carries back to its originating document.
type SourceType string

const (
	SourceInvoice             SourceType = "invoice"
	SourceVendorPayment       SourceType = "vendor_payment"
	SourceCustomerReceipt     SourceType = "customer_receipt"
	SourcePurchaseReceiptItem SourceType = "purchase_receipt_item"
	SourceQualityControl      SourceType = "quality_control"
	SourceMaterialIssue       SourceType = "material_issue"
	SourceProduction          SourceType = "production"
	SourceCashBankTransaction SourceType = "cash_bank_transaction"
	SourceCashBankTransfer    SourceType = "cash_bank_transfer"
)

// SourceRef is the (type, id) pair keying a posting batch.
type SourceRef struct {
	Type SourceType
	ID   int64
}

// Journal types tag entries with the posting rule that created them.
const (
	JournalProcurement      = "procurement"
	JournalInventory        = "inventory"
	JournalPurchase         = "purchase"
	JournalPayment          = "payment"
	JournalSales            = "sales"
	JournalReceipt          = "receipt"
	JournalMaterialIssue    = "manufacturing_issue"
	JournalMaterialReturn   = "manufacturing_return"
	JournalCompletion       = "manufacturing_completion"
	JournalCashBank         = "cashbank"
	JournalCashBankTransfer = "transfer"
)

// TransactionType for cash book documents.
type TransactionType string

const (
	CashIn  TransactionType = "cash_in"
	CashOut TransactionType = "cash_out"
	BankIn  TransactionType = "bank_in"
	BankOut TransactionType = "bank_out"
)

// IsInflow reports whether the transaction moves money into the cash account.
func (t TransactionType) IsInflow() bool {
	return t == CashIn || t == BankIn
}

// FlowType of a configured cash-flow line item.
type FlowType string

const (
	FlowInflow  FlowType = "inflow"
	FlowOutflow FlowType = "outflow"
	FlowNet     FlowType = "net"
)
