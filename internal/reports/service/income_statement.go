package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/samudra-erp/backend/internal/ledger/domain"
	ledger "github.com/samudra-erp/backend/internal/ledger/service"
)

// IncomeStatement breaks the period result down through the standard five
// levels: revenue, COGS, operating expenses, other income/expense, tax.
// Group membership follows the chart's code prefixes: 4 revenue, 5 COGS,
// 6 operating, 7 other, 8 non-operating expense, 9 tax.
type IncomeStatement struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`

	SalesRevenue      PeriodSection   `json:"sales_revenue"`
	COGS              PeriodSection   `json:"cogs"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	GrossProfitMargin decimal.Decimal `json:"gross_profit_margin"`

	OperatingExpenses     PeriodSection   `json:"operating_expenses"`
	OperatingProfit       decimal.Decimal `json:"operating_profit"`
	OperatingProfitMargin decimal.Decimal `json:"operating_profit_margin"`

	OtherIncome     PeriodSection   `json:"other_income"`
	OtherExpense    PeriodSection   `json:"other_expense"`
	ProfitBeforeTax decimal.Decimal `json:"profit_before_tax"`

	TaxExpense PeriodSection   `json:"tax_expense"`
	NetProfit  decimal.Decimal `json:"net_profit"`
}

// PeriodSection lists the contributing accounts with their period balances.
type PeriodSection struct {
	Accounts []PeriodAccountBalance `json:"accounts"`
	Total    decimal.Decimal        `json:"total"`
}

// PeriodAccountBalance is one account's contribution within the period,
// signed by the account's normal balance.
type PeriodAccountBalance struct {
	Account domain.Account  `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

type IncomeStatementService struct {
	accounts domain.AccountRepository
	journal  domain.JournalRepository
	calc     *ledger.BalanceCalculator
}

func NewIncomeStatementService(accounts domain.AccountRepository, journal domain.JournalRepository, calc *ledger.BalanceCalculator) *IncomeStatementService {
	return &IncomeStatementService{accounts: accounts, journal: journal, calc: calc}
}

// Generate computes the statement for [start, end].
func (s *IncomeStatementService) Generate(ctx context.Context, start, end time.Time, branchID *int64) (*IncomeStatement, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidPeriod
	}

	f := domain.EntryFilter{Start: &start, End: &end, BranchID: branchID}

	salesRevenue, err := s.prefixSection(ctx, []string{"4"}, domain.Revenue, f)
	if err != nil {
		return nil, err
	}
	cogs, err := s.prefixSection(ctx, []string{"5"}, domain.Expense, f)
	if err != nil {
		return nil, err
	}
	operating, err := s.prefixSection(ctx, []string{"6"}, domain.Expense, f)
	if err != nil {
		return nil, err
	}
	otherIncome, err := s.prefixSection(ctx, []string{"7"}, domain.Revenue, f)
	if err != nil {
		return nil, err
	}
	otherExpense, err := s.prefixSection(ctx, []string{"7", "8"}, domain.Expense, f)
	if err != nil {
		return nil, err
	}
	tax, err := s.prefixSection(ctx, []string{"9"}, domain.Expense, f)
	if err != nil {
		return nil, err
	}

	grossProfit := salesRevenue.Total.Sub(cogs.Total)
	operatingProfit := grossProfit.Sub(operating.Total)
	profitBeforeTax := operatingProfit.Add(otherIncome.Total).Sub(otherExpense.Total)
	netProfit := profitBeforeTax.Sub(tax.Total)

	hundred := decimal.NewFromInt(100)

	return &IncomeStatement{
		Start:                 start,
		End:                   end,
		SalesRevenue:          salesRevenue,
		COGS:                  cogs,
		GrossProfit:           grossProfit,
		GrossProfitMargin:     safeDiv(grossProfit.Mul(hundred), salesRevenue.Total),
		OperatingExpenses:     operating,
		OperatingProfit:       operatingProfit,
		OperatingProfitMargin: safeDiv(operatingProfit.Mul(hundred), salesRevenue.Total),
		OtherIncome:           otherIncome,
		OtherExpense:          otherExpense,
		ProfitBeforeTax:       profitBeforeTax,
		TaxExpense:            tax,
		NetProfit:             netProfit,
	}, nil
}

// NetIncome is the plain period result over every revenue and expense
// account, regardless of code prefix. The indirect cash-flow method starts
// from this figure, so it takes the same branch list as the rest of that
// statement.
func (s *IncomeStatementService) NetIncome(ctx context.Context, start, end time.Time, branches []int64) (decimal.Decimal, error) {
	if end.Before(start) {
		return decimal.Zero, domain.ErrInvalidPeriod
	}

	f := domain.EntryFilter{Start: &start, End: &end, BranchIDs: branches}

	revDebit, revCredit, err := s.calc.TypeTotals(ctx, domain.Revenue, f)
	if err != nil {
		return decimal.Zero, err
	}
	expDebit, expCredit, err := s.calc.TypeTotals(ctx, domain.Expense, f)
	if err != nil {
		return decimal.Zero, err
	}
	return revCredit.Sub(revDebit).Sub(expDebit.Sub(expCredit)), nil
}

// prefixSection sums each matching account's sign-adjusted period movement.
// Zero-balance accounts are left out of the list but a zero total is
// legitimate.
func (s *IncomeStatementService) prefixSection(ctx context.Context, prefixes []string, t domain.AccountType, f domain.EntryFilter) (PeriodSection, error) {
	var section PeriodSection

	seen := make(map[int64]bool)
	var accounts []domain.Account
	for _, prefix := range prefixes {
		matched, err := s.accounts.FindByCodePrefix(ctx, prefix)
		if err != nil {
			return section, err
		}
		for _, a := range matched {
			if a.Type == t && !seen[a.ID] {
				seen[a.ID] = true
				accounts = append(accounts, a)
			}
		}
	}

	ids := make([]int64, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
	}
	entries, err := s.journal.ListByAccounts(ctx, ids, f)
	if err != nil {
		return section, err
	}

	byAccount := make(map[int64]decimal.Decimal)
	for _, e := range entries {
		byAccount[e.AccountID] = byAccount[e.AccountID].Add(e.Debit).Sub(e.Credit)
	}

	for _, a := range accounts {
		balance := byAccount[a.ID]
		if a.Type.BalanceSign() < 0 {
			balance = balance.Neg()
		}
		section.Total = section.Total.Add(balance)
		if !balance.IsZero() {
			section.Accounts = append(section.Accounts, PeriodAccountBalance{Account: a, Balance: balance})
		}
	}
	return section, nil
}
