package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samudra-erp/backend/internal/ledger/domain"
)

func seedCashChart(t *testing.T, env *reportEnv) {
	env.addAccount(t, "1110.01", "Petty Cash", domain.Asset, true)
	env.addAccount(t, "1110.02", "Operating Bank", domain.Asset, true)
	env.addAccount(t, "1120", "Trade Receivable", domain.Asset, true)
	env.addAccount(t, "1140", "Inventory", domain.Asset, true)
	env.addAccount(t, "1290", "Accumulated Depreciation", domain.ContraAsset, false)
	env.addAccount(t, "2110", "Accounts Payable", domain.Liability, true)
	env.addAccount(t, "4100", "Sales Revenue", domain.Revenue, false)
	env.addAccount(t, "6100", "Operating Expense", domain.Expense, false)
	env.addAccount(t, "6311", "Depreciation Expense", domain.Expense, false)
	env.addAccount(t, "8000.01", "Bank Admin Fee", domain.Expense, false)
}

// seedCashConfig lays out one operating section with a sales-receipt line
// and a generic expense-payment line, and designates the 1110 prefix as
// cash.
func seedCashConfig(t *testing.T, env *reportEnv, opening string) {
	t.Helper()
	section := &domain.CashFlowSection{Key: "operating", Label: "Operating Activities", SortOrder: 1}
	require.NoError(t, env.db.Create(section).Error)

	receipts := &domain.CashFlowItem{
		SectionID: section.ID, Key: "sales_receipts", Label: "Receipts from Customers",
		Type: domain.FlowInflow, Resolver: "salesReceipts", SortOrder: 1,
	}
	require.NoError(t, env.db.Create(receipts).Error)

	payments := &domain.CashFlowItem{
		SectionID: section.ID, Key: "expense_payments", Label: "Payments for Expenses",
		Type: domain.FlowOutflow, SortOrder: 2,
	}
	require.NoError(t, env.db.Create(payments).Error)
	require.NoError(t, env.db.Create(&domain.CashFlowItemPrefix{ItemID: payments.ID, Prefix: "6"}).Error)

	require.NoError(t, env.db.Create(&domain.CashFlowCashAccount{Prefix: "1110", Label: "Cash and Banks", OpeningBalance: d(opening)}).Error)
}

// receive posts a customer receipt into cash.
func (e *reportEnv) receive(t *testing.T, id int64, day time.Time, amount string) {
	t.Helper()
	_, err := e.rules.PostCustomerReceipt(context.Background(), domain.CustomerReceipt{
		ID: id, Number: "CR", Date: day, Amount: d(amount),
		BankCode: "1110.01", ReceivableCode: "1120",
	})
	require.NoError(t, err)
}

// spend books a typed cash-out document through the cash book.
func (e *reportEnv) spend(t *testing.T, number string, day time.Time, amount string) {
	t.Helper()
	_, err := e.cashBank.PostTransaction(context.Background(), &domain.CashBankTransaction{
		Number: number, Date: day, Type: domain.CashOut,
		AccountCode: "1110.01", OffsetCode: "6100", Amount: d(amount),
	}, domain.Dimensions{})
	require.NoError(t, err)
}

func TestCashFlowDirect(t *testing.T) {
	env := newReportEnv(t)
	seedCashChart(t, env)
	seedCashConfig(t, env, "250000")
	ctx := context.Background()

	env.receive(t, 1, date(2026, time.March, 5), "1000000")
	env.spend(t, "CB-001", date(2026, time.March, 10), "500000")

	statement, err := env.cashFlow.Generate(ctx, date(2026, time.March, 1), date(2026, time.March, 31), CashFlowOptions{})
	require.NoError(t, err)

	assert.Equal(t, MethodDirect, statement.Method)
	require.Len(t, statement.Sections, 1)

	operating := statement.Sections[0]
	require.Len(t, operating.Items, 2)
	assert.True(t, operating.Items[0].Amount.Equal(d("1000000")), "receipts: got %s", operating.Items[0].Amount)
	assert.True(t, operating.Items[1].Amount.Equal(d("-500000")), "payments: got %s", operating.Items[1].Amount)
	assert.True(t, operating.Total.Equal(d("500000")))

	assert.True(t, statement.NetChange.Equal(d("500000")))
	assert.True(t, statement.OpeningBalance.Equal(d("250000")))
	assert.True(t, statement.ClosingBalance.Equal(d("750000")))
}

func TestCashFlowOpeningIncludesPriorMovements(t *testing.T) {
	env := newReportEnv(t)
	seedCashChart(t, env)
	seedCashConfig(t, env, "250000")
	ctx := context.Background()

	// February receipt lands before the March period opens.
	env.receive(t, 1, date(2026, time.February, 20), "100000")
	env.receive(t, 2, date(2026, time.March, 5), "1000000")

	statement, err := env.cashFlow.Generate(ctx, date(2026, time.March, 1), date(2026, time.March, 31), CashFlowOptions{})
	require.NoError(t, err)

	assert.True(t, statement.OpeningBalance.Equal(d("350000")), "got %s", statement.OpeningBalance)
	assert.True(t, statement.NetChange.Equal(d("1000000")))
	assert.True(t, statement.ClosingBalance.Equal(statement.OpeningBalance.Add(statement.NetChange)))
}

func TestCashFlowIgnoresInterCashTransfers(t *testing.T) {
	env := newReportEnv(t)
	seedCashChart(t, env)
	seedCashConfig(t, env, "0")
	ctx := context.Background()

	env.receive(t, 1, date(2026, time.March, 5), "1000000")
	// Moving money between two cash accounts is not an in/out flow.
	_, err := env.rules.PostCashBankTransfer(ctx, domain.CashBankTransfer{
		ID: 1, Number: "TF-001", Date: date(2026, time.March, 12),
		FromCode: "1110.01", ToCode: "1110.02", Amount: d("300000"),
	})
	require.NoError(t, err)

	statement, err := env.cashFlow.Generate(ctx, date(2026, time.March, 1), date(2026, time.March, 31), CashFlowOptions{})
	require.NoError(t, err)
	assert.True(t, statement.NetChange.Equal(d("1000000")), "transfer must not move net change, got %s", statement.NetChange)
}

func TestCashFlowIndirect(t *testing.T) {
	env := newReportEnv(t)
	seedCashChart(t, env)
	seedCashConfig(t, env, "0")
	ctx := context.Background()

	// Revenue earned on credit, partially collected, plus depreciation.
	env.post(t, date(2026, time.March, 3), domain.JournalSales, "1120", "4100", d("1000000"))
	env.receive(t, 1, date(2026, time.March, 10), "400000")
	env.post(t, date(2026, time.March, 31), domain.JournalCashBank, "6311", "1290", d("100000"))

	statement, err := env.cashFlow.Generate(ctx, date(2026, time.March, 1), date(2026, time.March, 31), CashFlowOptions{Method: MethodIndirect})
	require.NoError(t, err)

	assert.Equal(t, MethodIndirect, statement.Method)
	require.Len(t, statement.Sections, 3)

	operating := statement.Sections[0]
	byKey := make(map[string]FlowItem)
	for _, item := range operating.Items {
		byKey[item.Key] = item
	}
	assert.True(t, byKey["net_income"].Amount.Equal(d("900000")), "got %s", byKey["net_income"].Amount)
	assert.True(t, byKey["depreciation"].Amount.Equal(d("100000")))
	assert.True(t, byKey["accounts_receivable_change"].Amount.Equal(d("-600000")), "got %s", byKey["accounts_receivable_change"].Amount)

	// Reconstructed operating flow equals the cash actually collected.
	assert.True(t, operating.Total.Equal(d("400000")), "got %s", operating.Total)

	assert.Empty(t, statement.Sections[1].Items)
	assert.Empty(t, statement.Sections[2].Items)
}

func TestCashFlowIndirectScopesNetIncomeToBranches(t *testing.T) {
	env := newReportEnv(t)
	seedCashChart(t, env)
	seedCashConfig(t, env, "0")
	ctx := context.Background()

	b := func(id int64) *int64 { return &id }
	day := date(2026, time.March, 10)
	env.postBranch(t, day, domain.JournalSales, "1120", "4100", d("500000"), b(1))
	env.postBranch(t, day, domain.JournalSales, "1120", "4100", d("300000"), b(2))
	env.postBranch(t, day, domain.JournalSales, "1120", "4100", d("200000"), b(3))

	statement, err := env.cashFlow.Generate(ctx, date(2026, time.March, 1), date(2026, time.March, 31),
		CashFlowOptions{Method: MethodIndirect, Branches: []int64{1, 2}})
	require.NoError(t, err)

	byKey := make(map[string]FlowItem)
	for _, item := range statement.Sections[0].Items {
		byKey[item.Key] = item
	}
	// Branch 3 revenue stays out of every line, so net income and the
	// receivable delta offset exactly: no cash moved.
	assert.True(t, byKey["net_income"].Amount.Equal(d("800000")), "got %s", byKey["net_income"].Amount)
	assert.True(t, byKey["accounts_receivable_change"].Amount.Equal(d("-800000")), "got %s", byKey["accounts_receivable_change"].Amount)
	assert.True(t, statement.Sections[0].Total.IsZero(), "got %s", statement.Sections[0].Total)
}

func TestCashFlowOpeningIncludesIntradayPriorEntry(t *testing.T) {
	env := newReportEnv(t)
	seedCashChart(t, env)
	seedCashConfig(t, env, "250000")
	ctx := context.Background()

	// Booked during the last day before the period, not at midnight.
	env.receive(t, 1, time.Date(2026, time.February, 28, 10, 0, 0, 0, time.UTC), "100000")

	statement, err := env.cashFlow.Generate(ctx, date(2026, time.March, 1), date(2026, time.March, 31), CashFlowOptions{})
	require.NoError(t, err)
	assert.True(t, statement.OpeningBalance.Equal(d("350000")), "got %s", statement.OpeningBalance)
	assert.True(t, statement.NetChange.IsZero())
}

func TestCashFlowUnknownMethodFallsBackToDirect(t *testing.T) {
	env := newReportEnv(t)
	seedCashChart(t, env)
	seedCashConfig(t, env, "0")

	statement, err := env.cashFlow.Generate(context.Background(), date(2026, time.March, 1), date(2026, time.March, 31), CashFlowOptions{Method: "fancy"})
	require.NoError(t, err)
	assert.Equal(t, MethodDirect, statement.Method)
}

func TestCashFlowInvalidPeriod(t *testing.T) {
	env := newReportEnv(t)
	seedCashChart(t, env)
	seedCashConfig(t, env, "0")

	_, err := env.cashFlow.Generate(context.Background(), date(2026, time.March, 31), date(2026, time.March, 1), CashFlowOptions{})
	require.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestCashFlowDefaultsPeriod(t *testing.T) {
	env := newReportEnv(t)
	seedCashChart(t, env)
	seedCashConfig(t, env, "0")

	statement, err := env.cashFlow.Generate(context.Background(), time.Time{}, time.Time{}, CashFlowOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, statement.Start.Day(), "start defaults to the first of the month")
	assert.False(t, statement.End.Before(statement.Start))
}

func TestCashFlowMissingConfiguration(t *testing.T) {
	env := newReportEnv(t)
	seedCashChart(t, env)
	ctx := context.Background()

	env.receive(t, 1, date(2026, time.March, 5), "1000000")

	// No sections and no cash accounts configured: the statement degrades
	// to empty sections and zero balances.
	statement, err := env.cashFlow.Generate(ctx, date(2026, time.March, 1), date(2026, time.March, 31), CashFlowOptions{})
	require.NoError(t, err)
	assert.Empty(t, statement.Sections)
	assert.True(t, statement.NetChange.IsZero())
	assert.True(t, statement.OpeningBalance.IsZero())
	assert.True(t, statement.ClosingBalance.IsZero())
}
