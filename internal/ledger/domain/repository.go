package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// EntryFilter narrows ledger queries. A zero value means no restriction.
// AsOf is inclusive, Before is exclusive; Start/End bound a period when both
// are set.
type EntryFilter struct {
	BranchID    *int64
	BranchIDs   []int64
	JournalType string
	SourceType  SourceType
	AsOf        *time.Time
	Before      *time.Time
	Start       *time.Time
	End         *time.Time
}

// AccountRepository is the chart-of-accounts port.
type AccountRepository interface {
	// FindByCode resolves an account or returns ErrAccountNotFound. Posting
	// rules rely on this being strict.
	FindByCode(ctx context.Context, code string) (*Account, error)

	FindByID(ctx context.Context, id int64) (*Account, error)

	// FindByType lists active accounts of one type ordered by code.
	FindByType(ctx context.Context, t AccountType) ([]Account, error)

	// FindByCodePrefix lists active accounts whose code starts with prefix.
	FindByCodePrefix(ctx context.Context, prefix string) ([]Account, error)

	// Children returns the direct children of an account.
	Children(ctx context.Context, id int64) ([]Account, error)

	// Ancestors walks parent links up to the root, nearest first.
	Ancestors(ctx context.Context, id int64) ([]Account, error)

	Create(ctx context.Context, a *Account) error
}

// JournalRepository is the append-style ledger store port. Batch writes take
// the transaction handle so the posting engine controls atomicity.
type JournalRepository interface {
	// CreateBatch inserts all entries of one posting batch.
	CreateBatch(ctx context.Context, tx *gorm.DB, entries []JournalEntry) error

	// DeleteBySource removes every entry previously posted for a source.
	DeleteBySource(ctx context.Context, tx *gorm.DB, src SourceRef) error

	// ListByAccount returns an account's entries matching the filter,
	// ordered by date then id.
	ListByAccount(ctx context.Context, accountID int64, f EntryFilter) ([]JournalEntry, error)

	// ListByAccounts returns entries for a set of accounts.
	ListByAccounts(ctx context.Context, accountIDs []int64, f EntryFilter) ([]JournalEntry, error)

	// ListBySource returns the current batch for a source document.
	ListBySource(ctx context.Context, src SourceRef) ([]JournalEntry, error)

	// ListByCodePrefix returns entries whose account code starts with any of
	// the given prefixes.
	ListByCodePrefix(ctx context.Context, prefixes []string, f EntryFilter) ([]JournalEntry, error)
}

// CashBankTransactionRepository stores posted cash-book documents and serves
// the direct cash-flow method's typed queries.
type CashBankTransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *CashBankTransaction) error

	// ListByOffsetPrefix returns transactions of the given types within
	// [start, end] whose offset account code matches any prefix.
	ListByOffsetPrefix(ctx context.Context, prefixes []string, types []TransactionType, start, end time.Time, branches []int64) ([]CashBankTransaction, error)
}

// ReportConfigRepository reads the seeded cash-flow report layout.
type ReportConfigRepository interface {
	// Sections returns all sections with items and prefixes preloaded,
	// ordered by sort order.
	Sections(ctx context.Context) ([]CashFlowSection, error)

	// CashAccounts returns the designated cash/bank account prefixes.
	CashAccounts(ctx context.Context) ([]CashFlowCashAccount, error)
}
