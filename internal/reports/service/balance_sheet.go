package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/samudra-erp/backend/internal/ledger/domain"
	ledger "github.com/samudra-erp/backend/internal/ledger/service"
)

// balanceEpsilon absorbs rounding noise when checking the accounting
// identity.
var balanceEpsilon = decimal.NewFromFloat(0.01)

// Section is one list block of the statement. Accounts with a zero balance
// are dropped from the list but still counted in Total.
type Section struct {
	Accounts []ledger.AccountBalance `json:"accounts"`
	Total    decimal.Decimal         `json:"total"`
}

// BalanceSheet is the full statement as of one date.
type BalanceSheet struct {
	AsOfDate time.Time `json:"as_of_date"`
	BranchID *int64    `json:"branch_id,omitempty"`

	CurrentAssets Section         `json:"current_assets"`
	FixedAssets   Section         `json:"fixed_assets"`
	ContraAssets  Section         `json:"contra_assets"`
	TotalAssets   decimal.Decimal `json:"total_assets"`

	CurrentLiabilities  Section         `json:"current_liabilities"`
	LongTermLiabilities Section         `json:"long_term_liabilities"`
	TotalLiabilities    decimal.Decimal `json:"total_liabilities"`

	Equity           Section         `json:"equity"`
	RetainedEarnings decimal.Decimal `json:"retained_earnings"`
	TotalEquity      decimal.Decimal `json:"total_equity"`

	TotalLiabilitiesAndEquity decimal.Decimal `json:"total_liabilities_and_equity"`
	IsBalanced                bool            `json:"is_balanced"`
	Difference                decimal.Decimal `json:"difference"`
}

// Summary carries the headline figures and ratios. Ratios degrade to zero
// when their denominator is zero; they never fail.
type Summary struct {
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
	CurrentRatio     decimal.Decimal `json:"current_ratio"`
	DebtToEquity     decimal.Decimal `json:"debt_to_equity_ratio"`
	WorkingCapital   decimal.Decimal `json:"working_capital"`
	IsBalanced       bool            `json:"is_balanced"`
}

// LineComparison is one line of a two-period comparison. Percentage is zero
// when the previous value is zero.
type LineComparison struct {
	Current    decimal.Decimal `json:"current"`
	Previous   decimal.Decimal `json:"previous"`
	Change     decimal.Decimal `json:"change"`
	Percentage decimal.Decimal `json:"percentage"`
}

// AccountDrillDown is the entry-level view behind one statement line.
type AccountDrillDown struct {
	Account     domain.Account        `json:"account"`
	Entries     []domain.JournalEntry `json:"entries"`
	TotalDebit  decimal.Decimal       `json:"total_debit"`
	TotalCredit decimal.Decimal       `json:"total_credit"`
	Balance     decimal.Decimal       `json:"balance"`
	AsOfDate    time.Time             `json:"as_of_date"`
}

// BalanceSheetService builds the statement from leaf-level account balances.
type BalanceSheetService struct {
	accounts domain.AccountRepository
	journal  domain.JournalRepository
	calc     *ledger.BalanceCalculator
}

func NewBalanceSheetService(accounts domain.AccountRepository, journal domain.JournalRepository, calc *ledger.BalanceCalculator) *BalanceSheetService {
	return &BalanceSheetService{accounts: accounts, journal: journal, calc: calc}
}

// Generate computes the statement as of asOf. A branch filter restricts the
// underlying ledger queries to that branch; nil aggregates all branches.
func (s *BalanceSheetService) Generate(ctx context.Context, asOf time.Time, branchID *int64) (*BalanceSheet, error) {
	assets, err := s.calc.AccountBalances(ctx, domain.Asset, asOf, branchID)
	if err != nil {
		return nil, err
	}
	contra, err := s.calc.AccountBalances(ctx, domain.ContraAsset, asOf, branchID)
	if err != nil {
		return nil, err
	}
	liabilities, err := s.calc.AccountBalances(ctx, domain.Liability, asOf, branchID)
	if err != nil {
		return nil, err
	}
	equity, err := s.calc.AccountBalances(ctx, domain.Equity, asOf, branchID)
	if err != nil {
		return nil, err
	}

	currentAssets, fixedAssets := partitionCurrent(assets)
	currentLiabilities, longTermLiabilities := partitionCurrent(liabilities)

	contraSection := makeSection(contra)
	equitySection := makeSection(equity)

	totalAssets := currentAssets.Total.Add(fixedAssets.Total).Sub(contraSection.Total)
	totalLiabilities := currentLiabilities.Total.Add(longTermLiabilities.Total)

	retained, err := s.retainedEarnings(ctx, asOf, branchID)
	if err != nil {
		return nil, err
	}
	totalEquity := equitySection.Total.Add(retained)

	totalLiabilitiesAndEquity := totalLiabilities.Add(totalEquity)
	difference := totalAssets.Sub(totalLiabilitiesAndEquity)

	return &BalanceSheet{
		AsOfDate:                  asOf,
		BranchID:                  branchID,
		CurrentAssets:             currentAssets,
		FixedAssets:               fixedAssets,
		ContraAssets:              contraSection,
		TotalAssets:               totalAssets,
		CurrentLiabilities:        currentLiabilities,
		LongTermLiabilities:       longTermLiabilities,
		TotalLiabilities:          totalLiabilities,
		Equity:                    equitySection,
		RetainedEarnings:          retained,
		TotalEquity:               totalEquity,
		TotalLiabilitiesAndEquity: totalLiabilitiesAndEquity,
		IsBalanced:                difference.Abs().LessThan(balanceEpsilon),
		Difference:                difference,
	}, nil
}

// Summary derives the ratio view from a full statement.
func (s *BalanceSheetService) Summary(ctx context.Context, asOf time.Time, branchID *int64) (*Summary, error) {
	sheet, err := s.Generate(ctx, asOf, branchID)
	if err != nil {
		return nil, err
	}
	return &Summary{
		TotalAssets:      sheet.TotalAssets,
		TotalLiabilities: sheet.TotalLiabilities,
		TotalEquity:      sheet.TotalEquity,
		CurrentRatio:     safeDiv(sheet.CurrentAssets.Total, sheet.CurrentLiabilities.Total),
		DebtToEquity:     safeDiv(sheet.TotalLiabilities, sheet.TotalEquity),
		WorkingCapital:   sheet.CurrentAssets.Total.Sub(sheet.CurrentLiabilities.Total),
		IsBalanced:       sheet.IsBalanced,
	}, nil
}

// ComparePeriods generates the statement for two dates and lays the totals
// side by side.
func (s *BalanceSheetService) ComparePeriods(ctx context.Context, current, previous time.Time, branchID *int64) (map[string]LineComparison, error) {
	cur, err := s.Generate(ctx, current, branchID)
	if err != nil {
		return nil, err
	}
	prev, err := s.Generate(ctx, previous, branchID)
	if err != nil {
		return nil, err
	}

	return map[string]LineComparison{
		"current_assets":               compareLine(cur.CurrentAssets.Total, prev.CurrentAssets.Total),
		"fixed_assets":                 compareLine(cur.FixedAssets.Total, prev.FixedAssets.Total),
		"total_assets":                 compareLine(cur.TotalAssets, prev.TotalAssets),
		"current_liabilities":          compareLine(cur.CurrentLiabilities.Total, prev.CurrentLiabilities.Total),
		"long_term_liabilities":        compareLine(cur.LongTermLiabilities.Total, prev.LongTermLiabilities.Total),
		"total_liabilities":            compareLine(cur.TotalLiabilities, prev.TotalLiabilities),
		"total_equity":                 compareLine(cur.TotalEquity, prev.TotalEquity),
		"total_liabilities_and_equity": compareLine(cur.TotalLiabilitiesAndEquity, prev.TotalLiabilitiesAndEquity),
	}, nil
}

// AccountJournalEntries is the drill-down behind one account line: the
// matching entries in date order plus sign-adjusted totals.
func (s *BalanceSheetService) AccountJournalEntries(ctx context.Context, accountID int64, asOf time.Time, branchID *int64) (*AccountDrillDown, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries, err := s.journal.ListByAccount(ctx, accountID, domain.EntryFilter{AsOf: &asOf, BranchID: branchID})
	if err != nil {
		return nil, err
	}

	var debit, credit decimal.Decimal
	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	balance := debit.Sub(credit)
	if account.Type.BalanceSign() < 0 {
		balance = balance.Neg()
	}

	return &AccountDrillDown{
		Account:     *account,
		Entries:     entries,
		TotalDebit:  debit,
		TotalCredit: credit,
		Balance:     balance,
		AsOfDate:    asOf,
	}, nil
}

// retainedEarnings is the cumulative revenue minus expense up to asOf, with
// no lower date bound.
func (s *BalanceSheetService) retainedEarnings(ctx context.Context, asOf time.Time, branchID *int64) (decimal.Decimal, error) {
	f := domain.EntryFilter{AsOf: &asOf, BranchID: branchID}

	revDebit, revCredit, err := s.calc.TypeTotals(ctx, domain.Revenue, f)
	if err != nil {
		return decimal.Zero, err
	}
	expDebit, expCredit, err := s.calc.TypeTotals(ctx, domain.Expense, f)
	if err != nil {
		return decimal.Zero, err
	}

	revenue := revCredit.Sub(revDebit)
	expense := expDebit.Sub(expCredit)
	return revenue.Sub(expense), nil
}

func partitionCurrent(balances []ledger.AccountBalance) (current, nonCurrent Section) {
	for _, b := range balances {
		if b.Account.IsCurrent {
			current.Total = current.Total.Add(b.Balance)
			if !b.Balance.IsZero() {
				current.Accounts = append(current.Accounts, b)
			}
		} else {
			nonCurrent.Total = nonCurrent.Total.Add(b.Balance)
			if !b.Balance.IsZero() {
				nonCurrent.Accounts = append(nonCurrent.Accounts, b)
			}
		}
	}
	return current, nonCurrent
}

func makeSection(balances []ledger.AccountBalance) Section {
	var section Section
	for _, b := range balances {
		section.Total = section.Total.Add(b.Balance)
		if !b.Balance.IsZero() {
			section.Accounts = append(section.Accounts, b)
		}
	}
	return section
}

func compareLine(current, previous decimal.Decimal) LineComparison {
	change := current.Sub(previous)
	return LineComparison{
		Current:    current,
		Previous:   previous,
		Change:     change,
		Percentage: safeDiv(change.Mul(decimal.NewFromInt(100)), previous),
	}
}

// safeDiv divides and returns zero for a zero denominator instead of
// failing.
func safeDiv(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator)
}
