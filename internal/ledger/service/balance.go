package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/samudra-erp/backend/internal/ledger/domain"
)

// AccountBalance is one account's signed position at a point in time.
type AccountBalance struct {
	Account     domain.Account  `json:"account"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
	EntryCount  int             `json:"entry_count"`
}

// BalanceCalculator aggregates ledger entries into signed balances. A
// balance reads positive when the account is in its normal position:
// asset/expense balances are debit minus credit, everything else credit
// minus debit, with the opening balance folded in.
type BalanceCalculator struct {
	accounts domain.AccountRepository
	journal  domain.JournalRepository
}

func NewBalanceCalculator(accounts domain.AccountRepository, journal domain.JournalRepository) *BalanceCalculator {
	return &BalanceCalculator{accounts: accounts, journal: journal}
}

// Balance computes one account's signed balance as of a date.
func (c *BalanceCalculator) Balance(ctx context.Context, account *domain.Account, asOf time.Time, branchID *int64) (decimal.Decimal, error) {
	entries, err := c.journal.ListByAccount(ctx, account.ID, domain.EntryFilter{AsOf: &asOf, BranchID: branchID})
	if err != nil {
		return decimal.Zero, err
	}
	bal := signedBalance(account, entries)
	return bal.Balance, nil
}

// BalanceByCode resolves the account first; missing codes surface
// ErrAccountNotFound.
func (c *BalanceCalculator) BalanceByCode(ctx context.Context, code string, asOf time.Time, branchID *int64) (decimal.Decimal, error) {
	account, err := c.accounts.FindByCode(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	return c.Balance(ctx, account, asOf, branchID)
}

// AccountBalances computes positions for every active account of a type in
// one ledger pass.
func (c *BalanceCalculator) AccountBalances(ctx context.Context, t domain.AccountType, asOf time.Time, branchID *int64) ([]AccountBalance, error) {
	accounts, err := c.accounts.FindByType(ctx, t)
	if err != nil {
		return nil, err
	}
	return c.balancesFor(ctx, accounts, asOf, branchID)
}

// RollupBalance sums an account and all of its descendants. The shipped
// reports work from leaf balances, but the hierarchy capability is part of
// the chart contract.
func (c *BalanceCalculator) RollupBalance(ctx context.Context, code string, asOf time.Time, branchID *int64) (decimal.Decimal, error) {
	root, err := c.accounts.FindByCode(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	queue := []domain.Account{*root}
	for len(queue) > 0 {
		account := queue[0]
		queue = queue[1:]

		bal, err := c.Balance(ctx, &account, asOf, branchID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(bal)

		children, err := c.accounts.Children(ctx, account.ID)
		if err != nil {
			return decimal.Zero, err
		}
		queue = append(queue, children...)
	}
	return total, nil
}

// PrefixNet sums raw debit minus credit over entries whose account code
// matches any prefix. No sign adjustment; the cash-flow helpers interpret
// the result themselves.
func (c *BalanceCalculator) PrefixNet(ctx context.Context, prefixes []string, f domain.EntryFilter) (decimal.Decimal, error) {
	entries, err := c.journal.ListByCodePrefix(ctx, prefixes, f)
	if err != nil {
		return decimal.Zero, err
	}
	net := decimal.Zero
	for _, e := range entries {
		net = net.Add(e.Debit).Sub(e.Credit)
	}
	return net, nil
}

// EntriesByPrefix returns the raw entries behind a prefix query, for
// callers that need more than the net figure.
func (c *BalanceCalculator) EntriesByPrefix(ctx context.Context, prefixes []string, f domain.EntryFilter) ([]domain.JournalEntry, error) {
	return c.journal.ListByCodePrefix(ctx, prefixes, f)
}

// TypeTotals sums raw debits and credits over all active accounts of a type.
func (c *BalanceCalculator) TypeTotals(ctx context.Context, t domain.AccountType, f domain.EntryFilter) (debit, credit decimal.Decimal, err error) {
	accounts, err := c.accounts.FindByType(ctx, t)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	ids := make([]int64, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
	}
	entries, err := c.journal.ListByAccounts(ctx, ids, f)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	return debit, credit, nil
}

func (c *BalanceCalculator) balancesFor(ctx context.Context, accounts []domain.Account, asOf time.Time, branchID *int64) ([]AccountBalance, error) {
	ids := make([]int64, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
	}
	entries, err := c.journal.ListByAccounts(ctx, ids, domain.EntryFilter{AsOf: &asOf, BranchID: branchID})
	if err != nil {
		return nil, err
	}

	byAccount := make(map[int64][]domain.JournalEntry, len(accounts))
	for _, e := range entries {
		byAccount[e.AccountID] = append(byAccount[e.AccountID], e)
	}

	balances := make([]AccountBalance, 0, len(accounts))
	for _, account := range accounts {
		balances = append(balances, signedBalance(&account, byAccount[account.ID]))
	}
	return balances, nil
}

func signedBalance(account *domain.Account, entries []domain.JournalEntry) AccountBalance {
	var debit, credit decimal.Decimal
	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}

	net := debit.Sub(credit)
	if account.Type.BalanceSign() < 0 {
		net = net.Neg()
	}

	return AccountBalance{
		Account:     *account,
		TotalDebit:  debit,
		TotalCredit: credit,
		Balance:     account.OpeningBalance.Add(net),
		EntryCount:  len(entries),
	}
}
