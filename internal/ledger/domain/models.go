package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a chart-of-accounts node.
// Hierarchy is kept flat: children point at their parent by ID, so rollup
// traversal never chases embedded object graphs.
type Account struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Code           string          `gorm:"uniqueIndex;type:varchar(32);not null" json:"code"`
	Name           string          `gorm:"type:varchar(150);not null" json:"name"`
	Type           AccountType     `gorm:"type:varchar(20);not null;index" json:"type"`
	IsCurrent      bool            `gorm:"not null;default:false" json:"is_current"`
	ParentID       *int64          `gorm:"index" json:"parent_id,omitempty"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"opening_balance"`
	IsActive       bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (Account) TableName() string {
	return "chart_of_accounts"
}

// JournalEntry is one immutable ledger row. Entries are only ever written
// and deleted as whole batches keyed by (SourceType, SourceID); a correction
// is a delete-and-repost, never an update.
type JournalEntry struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID    int64           `gorm:"not null;index" json:"account_id"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
	Debit        decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"debit"`
	Credit       decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"credit"`
	Description  string          `gorm:"type:text" json:"description"`
	Reference    string          `gorm:"type:varchar(64)" json:"reference"`
	JournalType  string          `gorm:"type:varchar(40);not null" json:"journal_type"`
	SourceType   SourceType      `gorm:"type:varchar(40);not null;index:idx_journal_source" json:"source_type"`
	SourceID     int64           `gorm:"not null;index:idx_journal_source" json:"source_id"`
	BranchID     *int64          `gorm:"index" json:"branch_id,omitempty"`
	DepartmentID *int64          `json:"department_id,omitempty"`
	ProjectID    *int64          `json:"project_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`

	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}

// CashBankTransaction is the stored cash-book document. The direct cash-flow
// method reads these typed in/out records; transfers between cash accounts
// are a separate document and never appear here, which is what keeps them
// out of the period's net change.
type CashBankTransaction struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Number       string          `gorm:"uniqueIndex;type:varchar(40);not null" json:"number"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
	Type         TransactionType `gorm:"type:varchar(16);not null;index" json:"type"`
	AccountCode  string          `gorm:"type:varchar(32);not null" json:"account_code"`
	OffsetCode   string          `gorm:"type:varchar(32);not null" json:"offset_code"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Description  string          `gorm:"type:text" json:"description"`
	BranchID     *int64          `gorm:"index" json:"branch_id,omitempty"`
	DepartmentID *int64          `json:"department_id,omitempty"`
	ProjectID    *int64          `json:"project_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (CashBankTransaction) TableName() string {
	return "cash_bank_transactions"
}

// CashFlowSection is a seeded report section (operating / investing /
// financing). Read-only at runtime.
type CashFlowSection struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string         `gorm:"uniqueIndex;type:varchar(40);not null" json:"key"`
	Label     string         `gorm:"type:varchar(100);not null" json:"label"`
	SortOrder int            `gorm:"not null;default:0" json:"sort_order"`
	Items     []CashFlowItem `gorm:"foreignKey:SectionID" json:"items"`
}

func (CashFlowSection) TableName() string {
	return "cash_flow_sections"
}

// CashFlowItem is one named line inside a section. Resolver selects a
// type-specific amount resolver ("salesReceipts"); when empty the generic
// cash/bank-transaction resolver is used with the item's prefixes.
type CashFlowItem struct {
	ID        int64                `gorm:"primaryKey;autoIncrement" json:"id"`
	SectionID int64                `gorm:"not null;index" json:"section_id"`
	Key       string               `gorm:"uniqueIndex;type:varchar(60);not null" json:"key"`
	Label     string               `gorm:"type:varchar(120);not null" json:"label"`
	Type      FlowType             `gorm:"type:varchar(10);not null" json:"type"`
	Resolver  string               `gorm:"type:varchar(40)" json:"resolver"`
	SortOrder int                  `gorm:"not null;default:0" json:"sort_order"`
	Prefixes  []CashFlowItemPrefix `gorm:"foreignKey:ItemID" json:"prefixes"`
}

func (CashFlowItem) TableName() string {
	return "cash_flow_items"
}

// CashFlowItemPrefix maps an item to an account-code prefix.
type CashFlowItemPrefix struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemID int64  `gorm:"not null;index" json:"item_id"`
	Prefix string `gorm:"type:varchar(32);not null" json:"prefix"`
}

func (CashFlowItemPrefix) TableName() string {
	return "cash_flow_item_prefixes"
}

// CashFlowCashAccount designates a cash/bank account-code prefix whose
// balance makes up the report's opening and closing position.
type CashFlowCashAccount struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Prefix         string          `gorm:"type:varchar(32);not null" json:"prefix"`
	Label          string          `gorm:"type:varchar(100)" json:"label"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"opening_balance"`
}

func (CashFlowCashAccount) TableName() string {
	return "cash_flow_cash_accounts"
}
